package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается для неизвестной записи и для любого недействительного токена
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrBookingInPast возвращается, когда запись уже прошла
	ErrBookingInPast = errors.New("cancel_booking: cannot cancel past appointments")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
