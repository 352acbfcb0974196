package send_reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notification"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListPendingReminders(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	MarkReminderSent(ctx context.Context, id int64, sentAt time.Time) error
}

// WorkerRepository интерфейс репозитория мастеров
type WorkerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	List(ctx context.Context) ([]*domain.Service, error)
}

// Notifier отправляет напоминания
type Notifier interface {
	Reminder(ctx context.Context, notice notification.BookingNotice) ([]string, error)
}

// Metrics доменные метрики
type Metrics interface {
	ReminderSent(channel string)
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
