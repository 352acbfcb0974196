package send_reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notification"
)

// UseCase рассылает напоминания о записях, которые начнутся в ближайшее окно
type UseCase struct {
	bookingRepo  BookingRepository
	workerRepo   WorkerRepository
	serviceRepo  ServiceRepository
	notifier     Notifier
	metrics      Metrics
	window       time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; window <= 0 заменяется на DefaultWindow
func NewUseCase(
	bookingRepo BookingRepository,
	workerRepo WorkerRepository,
	serviceRepo ServiceRepository,
	notifier Notifier,
	metrics Metrics,
	window time.Duration,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if window <= 0 {
		window = DefaultWindow
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		workerRepo:   workerRepo,
		serviceRepo:  serviceRepo,
		notifier:     notifier,
		metrics:      metrics,
		window:       window,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет один прогон рассылки.
// Ошибки отдельных записей не прерывают прогон.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()
	until := now.Add(uc.window)

	// 1. Кандидаты по датам, точное окно проверяется ниже
	bookings, err := uc.bookingRepo.ListPendingReminders(ctx, now, until)
	if err != nil {
		uc.logger.Error("SendReminders: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	result := &Result{Checked: len(bookings)}
	if len(bookings) == 0 {
		return result, nil
	}

	// 2. Справочник услуг для текстов
	serviceNames := make(map[int64]string)
	services, err := uc.serviceRepo.List(ctx)
	if err != nil {
		uc.logger.Warn("SendReminders: failed to list services, sending without names: %v", err)
	}
	for _, s := range services {
		serviceNames[s.ID] = s.Name
	}

	workerNames := make(map[int64]string)

	for _, b := range bookings {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		start := b.StartAt(now.Location())
		if start.Before(now) || start.After(until) {
			continue
		}
		result.Due++

		notice := notification.BookingNotice{
			BookingID:  b.ID,
			WorkerName: uc.workerName(ctx, workerNames, b.WorkerID),
			Date:       domain.DateKey(b.Date),
			Time:       b.StartTime.String(),
			Phone:      b.Phone,
		}
		if b.HasService() {
			notice.ServiceName = serviceNames[*b.ServiceID]
		}
		if b.HasEmail() {
			notice.Email = *b.Email
		}

		// 3. Отправляем; каналы независимы
		channels, err := uc.notifier.Reminder(ctx, notice)
		for _, ch := range channels {
			if uc.metrics != nil {
				uc.metrics.ReminderSent(ch)
			}
		}
		if err != nil && len(channels) == 0 {
			uc.logger.Warn("SendReminders: reminder for booking id=%d failed: %v", b.ID, err)
			result.Failed++
			continue
		}

		// 4. Отмечаем, чтобы не напоминать повторно
		if err := uc.bookingRepo.MarkReminderSent(ctx, b.ID, now); err != nil {
			uc.logger.Error("SendReminders: failed to mark booking id=%d: %v", b.ID, err)
			result.Failed++
			continue
		}
		result.Sent++
	}

	uc.logger.Info("SendReminders: checked=%d, due=%d, sent=%d, failed=%d",
		result.Checked, result.Due, result.Sent, result.Failed)

	return result, nil
}

func (uc *UseCase) workerName(ctx context.Context, cache map[int64]string, workerID int64) string {
	if name, ok := cache[workerID]; ok {
		return name
	}

	name := ""
	worker, err := uc.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		uc.logger.Warn("SendReminders: failed to get worker id=%d: %v", workerID, err)
	} else {
		name = worker.FullName
	}
	cache[workerID] = name
	return name
}
