package resolve_duration

import "context"

type AvailabilityService interface {
	ResolveDuration(ctx context.Context, workerID int64, serviceID *int64) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
