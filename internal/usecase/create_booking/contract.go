package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notification"
)

// WorkerRepository интерфейс репозитория мастеров
type WorkerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
}

// PriceRepository интерфейс репозитория персональных настроек мастеров
type PriceRepository interface {
	ListByWorker(ctx context.Context, workerID int64) ([]*domain.WorkerServicePrice, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByWorkerAndDate(ctx context.Context, workerID int64, date time.Time) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenEncoder выпускает токен для ссылки отмены
type TokenEncoder interface {
	Encode(bookingID int64) (string, error)
}

// Notifier отправляет подтверждение клиенту
type Notifier interface {
	BookingConfirmed(ctx context.Context, notice notification.BookingNotice) error
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
	BookingCreated()
	BookingConflict(stage string)
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

// RealTimeProvider текущее время в часовом поясе салона
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
