package has_conflict

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

type AvailabilityService interface {
	HasConflict(ctx context.Context, req *availability.ConflictRequest) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
