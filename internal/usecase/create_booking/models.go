package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	WorkerID  int64            // ID мастера
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала (например, "10:00")
	Phone     string           // Контактный телефон
	Email     *string          // Email для подтверждения (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	WorkerID        int64
	WorkerName      string
	ServiceID       int64
	ServiceName     string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Phone           string
	Email           *string

	// Ссылка отмены; пустая, если токен выпустить не удалось
	CancelToken string
	CancelURL   string

	CreatedAt time.Time
}

// Config параметры приема записей
type Config struct {
	// PublicBaseURL базовый адрес сайта для ссылки отмены
	PublicBaseURL string
	// AdvanceBookingDays на сколько дней вперед можно записаться (0 = без ограничений)
	AdvanceBookingDays int
}
