package availability

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	calendarCache "github.com/m04kA/SMC-SalonBooking/internal/infra/cache/calendar"
	priceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/price"
	serviceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/service"
	workerRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/worker"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var errDB = errors.New("connection refused")

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeStore struct {
	workers  map[int64]*domain.Worker
	services map[int64]*domain.Service
	prices   []*domain.WorkerServicePrice
	bookings []*domain.Booking

	err          error
	rangeQueries int
}

func newStore() *fakeStore {
	return &fakeStore{
		workers:  map[int64]*domain.Worker{},
		services: map[int64]*domain.Service{},
	}
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*domain.Worker, error) {
	if f.err != nil {
		return nil, f.err
	}
	w, ok := f.workers[id]
	if !ok {
		return nil, workerRepo.ErrWorkerNotFound
	}
	return w, nil
}

func (f *fakeStore) ListActive(context.Context) ([]*domain.Worker, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Worker, 0)
	for id := int64(1); id <= int64(len(f.workers)); id++ {
		if w, ok := f.workers[id]; ok && w.IsActive {
			result = append(result, w)
		}
	}
	return result, nil
}

type fakeServices struct{ *fakeStore }

func (f fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f fakeServices) List(context.Context) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0, len(f.services))
	for id := int64(1); id <= 100; id++ {
		if s, ok := f.services[id]; ok {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakePrices struct{ *fakeStore }

func (f fakePrices) GetByWorkerAndService(_ context.Context, workerID, serviceID int64) (*domain.WorkerServicePrice, error) {
	for _, p := range f.prices {
		if p.WorkerID == workerID && p.ServiceID == serviceID {
			return p, nil
		}
	}
	return nil, priceRepo.ErrPriceNotFound
}

func (f fakePrices) ListByWorker(_ context.Context, workerID int64) ([]*domain.WorkerServicePrice, error) {
	result := make([]*domain.WorkerServicePrice, 0)
	for _, p := range f.prices {
		if p.WorkerID == workerID {
			result = append(result, p)
		}
	}
	return result, nil
}

type fakeBookings struct{ *fakeStore }

func (f fakeBookings) ListByWorkerAndDate(_ context.Context, workerID int64, date time.Time) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.WorkerID == workerID && b.IsOn(date) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f fakeBookings) ListByWorkerInRange(_ context.Context, filter domain.BookingsInRangeFilter) ([]*domain.Booking, error) {
	f.rangeQueries++
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.WorkerID != filter.WorkerID {
			continue
		}
		if domain.BeforeDay(b.Date, filter.StartDate) || domain.BeforeDay(filter.EndDate, b.Date) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type memoryCache struct {
	views map[string]*domain.MonthView
	err   error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{views: map[string]*domain.MonthView{}}
}

func cacheID(key calendarCache.Key) string {
	service := "none"
	if key.ServiceID != nil {
		service = formatID(key.ServiceID)
	}
	return formatID(&key.WorkerID) + key.Month.Format(domain.MonthFormat) + service + domain.DateKey(key.Today)
}

func (c *memoryCache) Get(_ context.Context, key calendarCache.Key) (*domain.MonthView, error) {
	if c.err != nil {
		return nil, c.err
	}
	v, ok := c.views[cacheID(key)]
	if !ok {
		return nil, calendarCache.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key calendarCache.Key, view *domain.MonthView) error {
	if c.err != nil {
		return c.err
	}
	c.views[cacheID(key)] = view
	return nil
}

type lookupCounter struct{ hits, misses int }

func (c *lookupCounter) CalendarCacheLookup(hit bool) {
	if hit {
		c.hits++
		return
	}
	c.misses++
}

func newTestService(store *fakeStore, cache CalendarCache, metrics Metrics, now time.Time) *Service {
	return NewService(
		store,
		fakeServices{store},
		fakePrices{store},
		fakeBookings{store},
		cache,
		metrics,
		fixedTime{now: now},
		noopLogger{},
	)
}

func seedSalon(store *fakeStore) {
	store.workers[1] = &domain.Worker{
		ID: 1, FullName: "Maria", IsActive: true,
		WorkingHoursStart: types.MustTimeString("09:00"), WorkingHoursEnd: types.MustTimeString("18:00"),
	}
	store.workers[2] = &domain.Worker{
		ID: 2, FullName: "Ivan", IsActive: false,
		WorkingHoursStart: types.MustTimeString("09:00"), WorkingHoursEnd: types.MustTimeString("18:00"),
	}
	store.services[10] = &domain.Service{ID: 10, Name: "Haircut", DurationMinutes: 30}
	store.services[11] = &domain.Service{ID: 11, Name: "Coloring", DurationMinutes: 120}
	store.prices = []*domain.WorkerServicePrice{
		{ID: 1, WorkerID: 1, ServiceID: 10, DurationMinutes: 90},
	}
}
