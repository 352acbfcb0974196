package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/service"
	workerRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/worker"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notification"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	workerRepo   WorkerRepository
	serviceRepo  ServiceRepository
	priceRepo    PriceRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	tokens       TokenEncoder
	notifier     Notifier
	publisher    EventPublisher
	cache        CalendarInvalidator
	metrics      Metrics
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// Dependencies побочные каналы после фиксации записи; любой может быть nil
type Dependencies struct {
	Notifier  Notifier
	Publisher EventPublisher
	Cache     CalendarInvalidator
	Metrics   Metrics
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	workerRepo WorkerRepository,
	serviceRepo ServiceRepository,
	priceRepo PriceRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	tokens TokenEncoder,
	deps Dependencies,
	cfg Config,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		workerRepo:   workerRepo,
		serviceRepo:  serviceRepo,
		priceRepo:    priceRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		tokens:       tokens,
		notifier:     deps.Notifier,
		publisher:    deps.Publisher,
		cache:        deps.Cache,
		metrics:      deps.Metrics,
		cfg:          cfg,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции,
// уникальный индекс (worker_id, booking_date, start_time) остается последним арбитром.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: worker=%d, service=%d, date=%s, time=%s",
		req.WorkerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 2. Получаем текущее время в часовом поясе салона
	now := uc.timeProvider.Now()
	day := domain.DateIn(req.Date, now.Location())
	start := req.StartTime.On(day)

	if err := validateStart(start, now, uc.cfg.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: start validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем мастера
	worker, err := uc.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, workerRepo.ErrWorkerNotFound) {
			uc.logger.Warn("CreateBooking: worker id=%d not found", req.WorkerID)
			return nil, ErrWorkerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get worker id=%d: %v", req.WorkerID, err)
		return nil, fmt.Errorf("%w: failed to get worker: %v", ErrInternal, err)
	}
	if !worker.IsActive {
		uc.logger.Warn("CreateBooking: worker id=%d is not active", req.WorkerID)
		return nil, ErrWorkerNotFound
	}

	// 4. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Снимок каталога и персональных настроек для расчета длительностей
	resolver, err := uc.loadResolver(ctx, worker.ID)
	if err != nil {
		return nil, err
	}
	duration := resolver.Resolve(worker, service)

	// 6. Запись должна целиком помещаться в рабочие часы
	if err := validateWorkingHours(worker, start, duration); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	var created *domain.Booking

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем записи мастера на этот день с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.ListByWorkerAndDate(txCtx, worker.ID, day)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 7.2. Проверяем пересечения
		candidate := scheduling.Candidate{
			Worker:    worker,
			Date:      day,
			StartTime: req.StartTime,
			Service:   service,
		}
		if conflict := scheduling.FindConflict(resolver, candidate, existing); conflict != nil {
			uc.logger.Warn("CreateBooking: slot %s conflicts with booking id=%d", req.StartTime, conflict.ID)
			uc.conflict(metrics.ConflictStageDetector)
			return ErrSlotNotAvailable
		}

		// 7.3. Сохраняем бронирование
		created, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			WorkerID:  worker.ID,
			ServiceID: ptr.Ptr(service.ID),
			Date:      day,
			StartTime: req.StartTime,
			Phone:     req.Phone,
			Email:     req.Email,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s taken concurrently: %v", req.StartTime, err)
				uc.conflict(metrics.ConflictStageStorage)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		// Сериализационный конфликт на commit тоже означает занятый слот
		if bookingRepo.IsSlotTaken(err) {
			uc.logger.Warn("CreateBooking: transaction aborted by concurrent booking: %v", err)
			uc.conflict(metrics.ConflictStageStorage)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)
	if uc.metrics != nil {
		uc.metrics.BookingCreated()
	}

	resp := &Response{
		ID:              created.ID,
		WorkerID:        worker.ID,
		WorkerName:      worker.FullName,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		Date:            day,
		StartTime:       created.StartTime,
		DurationMinutes: duration,
		Phone:           created.Phone,
		Email:           created.Email,
		CreatedAt:       created.CreatedAt,
	}

	// 8. Ссылка отмены. Без нее запись остается действительной.
	token, err := uc.tokens.Encode(created.ID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to encode cancel token for booking id=%d: %v", created.ID, err)
	} else {
		resp.CancelToken = token
		resp.CancelURL = CancelURL(uc.cfg.PublicBaseURL, token)
	}

	// 9. Побочные эффекты выполняются после фиксации и не влияют на результат
	uc.afterCommit(ctx, resp)

	return resp, nil
}

// CancelURL собирает публичную ссылку на отмену записи
func CancelURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/cancel/" + token
}

func (uc *UseCase) loadResolver(ctx context.Context, workerID int64) (*scheduling.DurationResolver, error) {
	services, err := uc.serviceRepo.List(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	prices, err := uc.priceRepo.ListByWorker(ctx, workerID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list prices for worker id=%d: %v", workerID, err)
		return nil, fmt.Errorf("%w: failed to list prices: %v", ErrInternal, err)
	}

	return scheduling.NewDurationResolver(services, prices), nil
}

func (uc *UseCase) conflict(stage string) {
	if uc.metrics != nil {
		uc.metrics.BookingConflict(stage)
	}
}

func (uc *UseCase) afterCommit(ctx context.Context, resp *Response) {
	if uc.notifier != nil && resp.Email != nil {
		notice := notification.BookingNotice{
			BookingID:   resp.ID,
			WorkerName:  resp.WorkerName,
			ServiceName: resp.ServiceName,
			Date:        resp.Date.Format(domain.DateFormat),
			Time:        resp.StartTime.String(),
			Email:       *resp.Email,
			Phone:       resp.Phone,
			CancelURL:   resp.CancelURL,
		}
		if err := uc.notifier.BookingConfirmed(ctx, notice); err != nil {
			uc.logger.Warn("CreateBooking: confirmation for booking id=%d not sent: %v", resp.ID, err)
		}
	}

	if uc.publisher != nil {
		payload := events.BookingPayload{
			BookingID: resp.ID,
			WorkerID:  resp.WorkerID,
			ServiceID: ptr.Ptr(resp.ServiceID),
			Date:      resp.Date.Format(domain.DateFormat),
			StartTime: resp.StartTime.String(),
		}
		if err := uc.publisher.Publish(ctx, events.TypeBookingCreated, payload); err != nil {
			uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", resp.ID, err)
		}
	}

	if uc.cache != nil {
		if err := uc.cache.InvalidateMonth(ctx, resp.WorkerID, resp.Date); err != nil {
			uc.logger.Warn("CreateBooking: failed to invalidate calendar cache for worker id=%d: %v", resp.WorkerID, err)
		}
	}
}
