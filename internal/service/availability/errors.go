package availability

import "errors"

var (
	// ErrWorkerNotFound возвращается, когда мастер не найден или неактивен
	ErrWorkerNotFound = errors.New("availability: worker not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("availability: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
