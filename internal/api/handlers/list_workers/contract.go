package list_workers

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

type AvailabilityService interface {
	ListWorkers(ctx context.Context) (*availability.WorkerListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
