package domain

import "github.com/m04kA/SMC-SalonBooking/pkg/types"

// Slot is a candidate start time of a day together with its availability.
type Slot struct {
	StartTime types.TimeString
	Available bool
}

// CountAvailable returns the number of free slots.
func CountAvailable(slots []Slot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}
