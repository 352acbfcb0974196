package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

type AvailabilityService interface {
	GetAvailableSlots(ctx context.Context, req *availability.SlotsRequest) (*availability.SlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
