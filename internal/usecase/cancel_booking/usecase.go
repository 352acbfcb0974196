package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/service"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notification"
)

// UseCase use case отмены записи по ссылке из письма
type UseCase struct {
	bookingRepo  BookingRepository
	workerRepo   WorkerRepository
	serviceRepo  ServiceRepository
	txManager    TransactionManager
	tokens       TokenDecoder
	notifier     Notifier
	publisher    EventPublisher
	cache        CalendarInvalidator
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// Dependencies побочные каналы после отмены; любой может быть nil
type Dependencies struct {
	Notifier  Notifier
	Publisher EventPublisher
	Cache     CalendarInvalidator
	Metrics   Metrics
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	workerRepo WorkerRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	tokens TokenDecoder,
	deps Dependencies,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		workerRepo:   workerRepo,
		serviceRepo:  serviceRepo,
		txManager:    txManager,
		tokens:       tokens,
		notifier:     deps.Notifier,
		publisher:    deps.Publisher,
		cache:        deps.Cache,
		metrics:      deps.Metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Preview возвращает запись, которую отменит ссылка, ничего не изменяя
func (uc *UseCase) Preview(ctx context.Context, token string) (*Response, error) {
	id, ok := uc.decode("PreviewCancellation", token)
	if !ok {
		return nil, ErrBookingNotFound
	}

	booking, err := uc.getBooking(ctx, "PreviewCancellation", id)
	if err != nil {
		return nil, err
	}

	if err := uc.ensureUpcoming(booking); err != nil {
		uc.logger.Warn("PreviewCancellation: booking id=%d already passed", id)
		return nil, err
	}

	return uc.buildResponse(ctx, booking), nil
}

// Cancel удаляет запись, на которую указывает токен.
// Ошибки уведомления, публикации и инвалидации кэша только логируются.
func (uc *UseCase) Cancel(ctx context.Context, token string) (*Response, error) {
	id, ok := uc.decode("CancelBooking", token)
	if !ok {
		return nil, ErrBookingNotFound
	}

	uc.logger.Info("CancelBooking: booking id=%d", id)

	var booking *domain.Booking

	// 1. Читаем запись с блокировкой и удаляем ее в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = uc.getBooking(txCtx, "CancelBooking", id)
		if err != nil {
			return err
		}

		// 2. Прошедшие записи не отменяются
		if err := uc.ensureUpcoming(booking); err != nil {
			uc.logger.Warn("CancelBooking: booking id=%d already passed", id)
			return err
		}

		// 3. Удаляем запись
		if err := uc.bookingRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d deleted concurrently", id)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to delete booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to delete booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d", id)
	if uc.metrics != nil {
		uc.metrics.BookingCancelled()
	}

	resp := uc.buildResponse(ctx, booking)
	resp.Cancelled = true

	uc.afterCommit(ctx, booking, resp)

	return resp, nil
}

func (uc *UseCase) decode(op, token string) (int64, bool) {
	id, ok := uc.tokens.Decode(token)
	if !ok {
		uc.logger.Warn("%s: invalid cancellation token", op)
		if uc.metrics != nil {
			uc.metrics.InvalidCancelToken()
		}
	}
	return id, ok
}

func (uc *UseCase) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("%s: failed to get booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

func (uc *UseCase) ensureUpcoming(booking *domain.Booking) error {
	now := uc.timeProvider.Now()
	if booking.StartAt(now.Location()).Before(now) {
		return ErrBookingInPast
	}
	return nil
}

// buildResponse дополняет запись именами мастера и услуги.
// Справочные данные не обязательны: при ошибке поле остается пустым.
func (uc *UseCase) buildResponse(ctx context.Context, booking *domain.Booking) *Response {
	resp := &Response{
		ID:        booking.ID,
		WorkerID:  booking.WorkerID,
		ServiceID: booking.ServiceID,
		Date:      booking.Date,
		StartTime: booking.StartTime,
	}

	if worker, err := uc.workerRepo.GetByID(ctx, booking.WorkerID); err == nil {
		resp.WorkerName = worker.FullName
	} else {
		uc.logger.Warn("CancelBooking: failed to get worker id=%d: %v", booking.WorkerID, err)
	}

	if booking.HasService() {
		service, err := uc.serviceRepo.GetByID(ctx, *booking.ServiceID)
		switch {
		case err == nil:
			resp.ServiceName = service.Name
		case errors.Is(err, serviceRepo.ErrServiceNotFound):
		default:
			uc.logger.Warn("CancelBooking: failed to get service id=%d: %v", *booking.ServiceID, err)
		}
	}

	return resp
}

func (uc *UseCase) afterCommit(ctx context.Context, booking *domain.Booking, resp *Response) {
	if uc.notifier != nil && booking.HasEmail() {
		notice := notification.BookingNotice{
			BookingID:   booking.ID,
			WorkerName:  resp.WorkerName,
			ServiceName: resp.ServiceName,
			Date:        domain.DateKey(booking.Date),
			Time:        booking.StartTime.String(),
			Email:       *booking.Email,
			Phone:       booking.Phone,
		}
		if err := uc.notifier.BookingCancelled(ctx, notice); err != nil {
			uc.logger.Warn("CancelBooking: cancellation email for booking id=%d not sent: %v", booking.ID, err)
		}
	}

	if uc.publisher != nil {
		payload := events.BookingPayload{
			BookingID: booking.ID,
			WorkerID:  booking.WorkerID,
			ServiceID: booking.ServiceID,
			Date:      domain.DateKey(booking.Date),
			StartTime: booking.StartTime.String(),
		}
		if err := uc.publisher.Publish(ctx, events.TypeBookingCancelled, payload); err != nil {
			uc.logger.Warn("CancelBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
		}
	}

	if uc.cache != nil {
		if err := uc.cache.InvalidateMonth(ctx, booking.WorkerID, booking.Date); err != nil {
			uc.logger.Warn("CancelBooking: failed to invalidate calendar cache for worker id=%d: %v", booking.WorkerID, err)
		}
	}
}
