package cancel_booking

import (
	"context"

	cancelBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/cancel_booking"
)

type CancelBookingUseCase interface {
	Preview(ctx context.Context, token string) (*cancelBooking.Response, error)
	Cancel(ctx context.Context, token string) (*cancelBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
