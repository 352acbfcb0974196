package send_reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	workerRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/worker"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notification"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type bookingStore struct {
	bookings []*domain.Booking
	listErr  error
	marked   map[int64]time.Time
	from, to time.Time
}

func (s *bookingStore) ListPendingReminders(_ context.Context, from, to time.Time) ([]*domain.Booking, error) {
	s.from, s.to = from, to
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.bookings, nil
}

func (s *bookingStore) MarkReminderSent(_ context.Context, id int64, sentAt time.Time) error {
	if s.marked == nil {
		s.marked = map[int64]time.Time{}
	}
	s.marked[id] = sentAt
	return nil
}

type workerStore struct {
	workers map[int64]*domain.Worker
	calls   int
}

func (s *workerStore) GetByID(_ context.Context, id int64) (*domain.Worker, error) {
	s.calls++
	w, ok := s.workers[id]
	if !ok {
		return nil, workerRepo.ErrWorkerNotFound
	}
	return w, nil
}

type serviceStore []*domain.Service

func (s serviceStore) List(context.Context) ([]*domain.Service, error) { return s, nil }

type outcome struct {
	channels []string
	err      error
}

type fakeNotifier struct {
	outcomes map[int64]outcome
	notices  []notification.BookingNotice
}

func (f *fakeNotifier) Reminder(_ context.Context, notice notification.BookingNotice) ([]string, error) {
	f.notices = append(f.notices, notice)
	if o, ok := f.outcomes[notice.BookingID]; ok {
		return o.channels, o.err
	}
	return []string{notification.ChannelEmail}, nil
}

type fakeMetrics struct{ channels []string }

func (f *fakeMetrics) ReminderSent(channel string) { f.channels = append(f.channels, channel) }

var salonTZ = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Sofia")
	if err != nil {
		panic(err)
	}
	return loc
}()

func booking(id int64, date string, start string) *domain.Booking {
	d, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		panic(err)
	}
	return &domain.Booking{
		ID:        id,
		WorkerID:  1,
		ServiceID: ptr.Ptr(int64(10)),
		Date:      d,
		StartTime: types.TimeString(start),
		Phone:     "0888123456",
		Email:     ptr.Ptr("client@example.com"),
	}
}

func TestUseCase_Execute(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, salonTZ)

	noEmail := booking(3, "2024-06-11", "11:30")
	noEmail.Email = nil

	store := &bookingStore{bookings: []*domain.Booking{
		booking(1, "2024-06-10", "11:00"), // уже началась
		booking(2, "2024-06-10", "15:00"),
		noEmail,
		booking(4, "2024-06-11", "13:00"), // за пределами окна
		booking(5, "2024-06-10", "16:00"),
		booking(6, "2024-06-10", "17:00"),
	}}
	workers := &workerStore{workers: map[int64]*domain.Worker{1: {ID: 1, FullName: "Maria Ivanova"}}}
	notifier := &fakeNotifier{outcomes: map[int64]outcome{
		3: {channels: []string{notification.ChannelSMS}},
		5: {err: notification.ErrDelivery},
		6: {channels: []string{notification.ChannelSMS}, err: notification.ErrDelivery},
	}}
	metrics := &fakeMetrics{}

	uc := NewUseCase(store, workers, serviceStore{{ID: 10, Name: "Haircut"}}, notifier, metrics, 0,
		fixedTime{now: now}, noopLogger{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &Result{Checked: 6, Due: 4, Sent: 3, Failed: 1}, result)
	assert.Equal(t, now, store.from)
	assert.Equal(t, now.Add(DefaultWindow), store.to)

	assert.Len(t, store.marked, 3)
	for _, id := range []int64{2, 3, 6} {
		assert.Equal(t, now, store.marked[id], "booking %d", id)
	}
	assert.NotContains(t, store.marked, int64(5))

	require.Len(t, notifier.notices, 4)
	first := notifier.notices[0]
	assert.Equal(t, "Maria Ivanova", first.WorkerName)
	assert.Equal(t, "Haircut", first.ServiceName)
	assert.Equal(t, "2024-06-10", first.Date)
	assert.Equal(t, "15:00", first.Time)
	assert.Empty(t, notifier.notices[1].Email)

	assert.Equal(t, 1, workers.calls)
	assert.Equal(t, []string{notification.ChannelEmail, notification.ChannelSMS, notification.ChannelSMS}, metrics.channels)
}

func TestUseCase_Execute_CustomWindow(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, salonTZ)
	store := &bookingStore{bookings: []*domain.Booking{
		booking(1, "2024-06-10", "13:00"),
		booking(2, "2024-06-10", "15:00"),
	}}

	uc := NewUseCase(store, &workerStore{}, serviceStore{}, &fakeNotifier{}, nil, 2*time.Hour,
		fixedTime{now: now}, noopLogger{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Contains(t, store.marked, int64(1))
}

func TestUseCase_Execute_Empty(t *testing.T) {
	uc := NewUseCase(&bookingStore{}, &workerStore{}, serviceStore{}, &fakeNotifier{}, nil, 0,
		fixedTime{now: time.Now()}, noopLogger{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Result{}, result)
}

func TestUseCase_Execute_ListError(t *testing.T) {
	store := &bookingStore{listErr: errors.New("connection refused")}
	uc := NewUseCase(store, &workerStore{}, serviceStore{}, &fakeNotifier{}, nil, 0,
		fixedTime{now: time.Now()}, noopLogger{})

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
