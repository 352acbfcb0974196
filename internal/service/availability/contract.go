package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	calendarCache "github.com/m04kA/SMC-SalonBooking/internal/infra/cache/calendar"
)

// WorkerRepository интерфейс репозитория мастеров
type WorkerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
	ListActive(ctx context.Context) ([]*domain.Worker, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
}

// PriceRepository интерфейс репозитория персональных настроек мастеров
type PriceRepository interface {
	GetByWorkerAndService(ctx context.Context, workerID, serviceID int64) (*domain.WorkerServicePrice, error)
	ListByWorker(ctx context.Context, workerID int64) ([]*domain.WorkerServicePrice, error)
}

// BookingRepository интерфейс чтения бронирований
type BookingRepository interface {
	ListByWorkerAndDate(ctx context.Context, workerID int64, date time.Time) ([]*domain.Booking, error)
	ListByWorkerInRange(ctx context.Context, filter domain.BookingsInRangeFilter) ([]*domain.Booking, error)
}

// CalendarCache кэш календарей; nil отключает кэширование
type CalendarCache interface {
	Get(ctx context.Context, key calendarCache.Key) (*domain.MonthView, error)
	Set(ctx context.Context, key calendarCache.Key, view *domain.MonthView) error
}

// Metrics доменные метрики сервиса
type Metrics interface {
	CalendarCacheLookup(hit bool)
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
