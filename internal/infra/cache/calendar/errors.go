package calendar

import "errors"

var (
	// ErrCacheMiss возвращается, когда в кэше нет календаря
	ErrCacheMiss = errors.New("calendar.cache: miss")

	// ErrCache возвращается при ошибках Redis или сериализации
	ErrCache = errors.New("calendar.cache: redis error")
)
