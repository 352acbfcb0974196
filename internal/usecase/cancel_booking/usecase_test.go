package cancel_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/canceltoken"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/service"
	workerRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/worker"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notification"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type bookingStore struct {
	bookings  map[int64]*domain.Booking
	deleted   []int64
	getErr    error
	deleteErr error
}

func (s *bookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (s *bookingStore) Delete(_ context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(s.bookings, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type workerStore map[int64]*domain.Worker

func (s workerStore) GetByID(_ context.Context, id int64) (*domain.Worker, error) {
	w, ok := s[id]
	if !ok {
		return nil, workerRepo.ErrWorkerNotFound
	}
	return w, nil
}

type serviceStore map[int64]*domain.Service

func (s serviceStore) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := s[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type passthroughTx struct{ calls int }

func (p *passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type fakeNotifier struct{ notices []notification.BookingNotice }

func (f *fakeNotifier) BookingCancelled(_ context.Context, notice notification.BookingNotice) error {
	f.notices = append(f.notices, notice)
	return nil
}

type fakePublisher struct{ types []string }

func (f *fakePublisher) Publish(_ context.Context, eventType string, _ events.BookingPayload) error {
	f.types = append(f.types, eventType)
	return errors.New("broker unavailable")
}

type fakeCache struct{ workers []int64 }

func (f *fakeCache) InvalidateMonth(_ context.Context, workerID int64, _ time.Time) error {
	f.workers = append(f.workers, workerID)
	return nil
}

type fakeMetrics struct {
	cancelled     int
	invalidTokens int
}

func (f *fakeMetrics) BookingCancelled()   { f.cancelled++ }
func (f *fakeMetrics) InvalidCancelToken() { f.invalidTokens++ }

var salonTZ = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Sofia")
	if err != nil {
		panic(err)
	}
	return loc
}()

type fixture struct {
	uc        *UseCase
	store     *bookingStore
	codec     *canceltoken.Codec
	notifier  *fakeNotifier
	publisher *fakePublisher
	cache     *fakeCache
	metrics   *fakeMetrics
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	codec, err := canceltoken.New("test-secret")
	require.NoError(t, err)

	f := &fixture{
		store: &bookingStore{bookings: map[int64]*domain.Booking{
			// Дата из БД приходит как полночь UTC
			5: {ID: 5, WorkerID: 1, ServiceID: ptr.Ptr(int64(10)), Date: time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
				StartTime: "10:00", Phone: "0888123456", Email: ptr.Ptr("client@example.com")},
			6: {ID: 6, WorkerID: 1, Date: time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), StartTime: "15:00", Phone: "0888123456"},
		}},
		codec:     codec,
		notifier:  &fakeNotifier{},
		publisher: &fakePublisher{},
		cache:     &fakeCache{},
		metrics:   &fakeMetrics{},
	}
	f.uc = NewUseCase(
		f.store,
		workerStore{1: {ID: 1, FullName: "Maria Ivanova", IsActive: true}},
		serviceStore{10: {ID: 10, Name: "Haircut", DurationMinutes: 45}},
		&passthroughTx{},
		codec,
		Dependencies{Notifier: f.notifier, Publisher: f.publisher, Cache: f.cache, Metrics: f.metrics},
		fixedTime{now: now},
		noopLogger{},
	)
	return f
}

func (f *fixture) token(t *testing.T, id int64) string {
	t.Helper()
	token, err := f.codec.Encode(id)
	require.NoError(t, err)
	return token
}

func TestUseCase_Preview(t *testing.T) {
	f := newFixture(t, time.Date(2024, 6, 10, 12, 0, 0, 0, salonTZ))

	resp, err := f.uc.Preview(context.Background(), f.token(t, 5))
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "Maria Ivanova", resp.WorkerName)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.False(t, resp.Cancelled)
	assert.Empty(t, f.store.deleted)
}

func TestUseCase_Cancel(t *testing.T) {
	f := newFixture(t, time.Date(2024, 6, 10, 12, 0, 0, 0, salonTZ))

	resp, err := f.uc.Cancel(context.Background(), f.token(t, 5))
	require.NoError(t, err)

	assert.True(t, resp.Cancelled)
	assert.Equal(t, []int64{5}, f.store.deleted)
	assert.Equal(t, 1, f.metrics.cancelled)

	require.Len(t, f.notifier.notices, 1)
	assert.Equal(t, "2024-06-11", f.notifier.notices[0].Date)
	assert.Equal(t, "10:00", f.notifier.notices[0].Time)

	// Ошибка брокера не отменяет результат
	assert.Equal(t, []string{events.TypeBookingCancelled}, f.publisher.types)
	assert.Equal(t, []int64{1}, f.cache.workers)

	// Повторная отмена той же ссылкой
	_, err = f.uc.Cancel(context.Background(), f.token(t, 5))
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUseCase_Cancel_WithoutEmailOrService(t *testing.T) {
	f := newFixture(t, time.Date(2024, 6, 10, 12, 0, 0, 0, salonTZ))

	resp, err := f.uc.Cancel(context.Background(), f.token(t, 6))
	require.NoError(t, err)

	assert.Empty(t, resp.ServiceName)
	assert.Empty(t, f.notifier.notices)
}

func TestUseCase_InvalidTokens(t *testing.T) {
	f := newFixture(t, time.Date(2024, 6, 10, 12, 0, 0, 0, salonTZ))

	other, err := canceltoken.New("other-secret")
	require.NoError(t, err)
	forged, err := other.Encode(5)
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", forged} {
		_, err := f.uc.Preview(context.Background(), token)
		assert.ErrorIs(t, err, ErrBookingNotFound)

		_, err = f.uc.Cancel(context.Background(), token)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	}

	assert.Equal(t, 6, f.metrics.invalidTokens)
	assert.Empty(t, f.store.deleted)
}

func TestUseCase_UnknownBooking(t *testing.T) {
	f := newFixture(t, time.Date(2024, 6, 10, 12, 0, 0, 0, salonTZ))

	_, err := f.uc.Preview(context.Background(), f.token(t, 404))
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Equal(t, 0, f.metrics.invalidTokens)
}

func TestUseCase_PastBooking(t *testing.T) {
	// 10:30 11 июня: запись на 10:00 уже началась
	f := newFixture(t, time.Date(2024, 6, 11, 10, 30, 0, 0, salonTZ))

	_, err := f.uc.Preview(context.Background(), f.token(t, 5))
	assert.ErrorIs(t, err, ErrBookingInPast)

	_, err = f.uc.Cancel(context.Background(), f.token(t, 5))
	assert.ErrorIs(t, err, ErrBookingInPast)
	assert.Empty(t, f.store.deleted)
	assert.Equal(t, 0, f.metrics.cancelled)
}

func TestUseCase_StorageErrors(t *testing.T) {
	f := newFixture(t, time.Date(2024, 6, 10, 12, 0, 0, 0, salonTZ))
	f.store.deleteErr = bookingRepo.ErrExecQuery

	_, err := f.uc.Cancel(context.Background(), f.token(t, 5))
	assert.ErrorIs(t, err, ErrInternal)

	f.store.getErr = bookingRepo.ErrScanRow
	_, err = f.uc.Preview(context.Background(), f.token(t, 5))
	assert.ErrorIs(t, err, ErrInternal)
}
