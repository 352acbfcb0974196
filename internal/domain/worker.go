package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Worker is a staff member customers can book.
// Inactive workers are hidden from booking and availability but keep their history.
type Worker struct {
	ID                int64
	FullName          string
	Role              string
	Bio               string
	IsActive          bool
	WorkingHoursStart types.TimeString
	WorkingHoursEnd   types.TimeString
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasValidWorkingHours returns true if the working window is non-empty.
func (w *Worker) HasValidWorkingHours() bool {
	if w.WorkingHoursStart.Validate() != nil || w.WorkingHoursEnd.Validate() != nil {
		return false
	}
	return w.WorkingHoursEnd.IsAfter(w.WorkingHoursStart)
}

// WorkingWindow returns the working-hours window anchored on day.
func (w *Worker) WorkingWindow(day time.Time) (start, end time.Time) {
	return w.WorkingHoursStart.On(day), w.WorkingHoursEnd.On(day)
}
