package create_booking

import "errors"

var (
	// ErrWorkerNotFound возвращается, когда мастер не найден или неактивен
	ErrWorkerNotFound = errors.New("create_booking: worker not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrBookingInPast возвращается, когда выбранные дата и время уже прошли
	ErrBookingInPast = errors.New("create_booking: please choose a future date and time")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrOutsideWorkingHours возвращается, когда запись не помещается в рабочие часы мастера
	ErrOutsideWorkingHours = errors.New("create_booking: time is outside of worker's working hours")

	// ErrSlotNotAvailable возвращается, когда время пересекается с другой записью мастера
	ErrSlotNotAvailable = errors.New("create_booking: this time slot conflicts with an existing appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
