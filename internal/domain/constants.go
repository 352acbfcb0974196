package domain

import "github.com/m04kA/SMC-SalonBooking/pkg/types"

// Scheduling constants
const (
	// SlotStepMinutes is the fixed granularity of candidate start times.
	SlotStepMinutes = 15
	// FallbackDurationMinutes is used when a booking or a request carries no service.
	FallbackDurationMinutes = 60
)

// Default working hours for newly created workers
var (
	DefaultWorkingHoursStart = types.TimeString("09:00")
	DefaultWorkingHoursEnd   = types.TimeString("18:00")
)

// Business validation constants
const (
	MaxEmailLength       = 254
	MaxWorkerNameLength  = 100
	MaxServiceNameLength = 100
)

// PhonePattern is the accepted contact phone format.
const PhonePattern = `^[0-9+\-\s]{7,20}$`

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)
