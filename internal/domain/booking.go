package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Booking is an appointment of a customer with a worker.
// No two bookings of the same worker share (Date, StartTime), and their
// [start, start+duration) intervals on the same date never overlap.
type Booking struct {
	ID        int64
	WorkerID  int64
	ServiceID *int64 // nil for legacy bookings made without a service
	Date      time.Time
	StartTime types.TimeString
	Phone     string
	Email     *string

	ReminderSentAt *time.Time
	CreatedAt      time.Time
}

// HasService returns true if the booking references a service.
func (b *Booking) HasService() bool {
	return b.ServiceID != nil
}

// StartAt returns the booking start anchored on its date in loc.
func (b *Booking) StartAt(loc *time.Location) time.Time {
	return b.StartTime.On(DateIn(b.Date, loc))
}

// IsOn returns true if the booking falls on the calendar day of date.
func (b *Booking) IsOn(date time.Time) bool {
	return SameDay(b.Date, date)
}

// HasEmail returns true if the customer left an email.
func (b *Booking) HasEmail() bool {
	return b.Email != nil && *b.Email != ""
}

// BookingsInRangeFilter selects bookings of a worker between two dates (inclusive).
type BookingsInRangeFilter struct {
	WorkerID  int64
	StartDate time.Time
	EndDate   time.Time
}
