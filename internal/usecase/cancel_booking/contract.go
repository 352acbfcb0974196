package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notification"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// WorkerRepository интерфейс репозитория мастеров
type WorkerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenDecoder проверяет токен ссылки отмены
type TokenDecoder interface {
	Decode(token string) (int64, bool)
}

// Notifier отправляет письмо об отмене
type Notifier interface {
	BookingCancelled(ctx context.Context, notice notification.BookingNotice) error
}

// EventPublisher публикует доменные события
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, booking events.BookingPayload) error
}

// CalendarInvalidator сбрасывает закэшированные календари мастера
type CalendarInvalidator interface {
	InvalidateMonth(ctx context.Context, workerID int64, date time.Time) error
}

// Metrics доменные метрики
type Metrics interface {
	BookingCancelled()
	InvalidCancelToken()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
