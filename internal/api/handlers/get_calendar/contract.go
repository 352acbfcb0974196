package get_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

type AvailabilityService interface {
	GetMonthView(ctx context.Context, req *availability.MonthRequest) (*domain.MonthView, error)
}

// TimeProvider нужен для месяца по умолчанию
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
