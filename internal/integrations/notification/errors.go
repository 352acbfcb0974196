package notification

import "errors"

var (
	// ErrDisabled возвращается, когда канал доставки не настроен
	ErrDisabled = errors.New("notification: channel is disabled")

	// ErrInvalidRecipient возвращается при пустом или некорректном получателе
	ErrInvalidRecipient = errors.New("notification: invalid recipient")

	// ErrDelivery возвращается при ошибке доставки
	ErrDelivery = errors.New("notification: delivery failed")

	// ErrInvalidResponse возвращается при неожиданном ответе SMS шлюза
	ErrInvalidResponse = errors.New("notification: invalid gateway response")
)
