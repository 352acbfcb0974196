package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	calendarCache "github.com/m04kA/SMC-SalonBooking/internal/infra/cache/calendar"
	priceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/price"
	serviceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/service"
	workerRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/worker"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
)

// Service фасад движка доступности: загружает снимок данных через репозитории
// и вызывает чистые функции пакета scheduling
type Service struct {
	workerRepo   WorkerRepository
	serviceRepo  ServiceRepository
	priceRepo    PriceRepository
	bookingRepo  BookingRepository
	cache        CalendarCache
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности.
// cache и metrics могут быть nil.
func NewService(
	workerRepo WorkerRepository,
	serviceRepo ServiceRepository,
	priceRepo PriceRepository,
	bookingRepo BookingRepository,
	cache CalendarCache,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		workerRepo:   workerRepo,
		serviceRepo:  serviceRepo,
		priceRepo:    priceRepo,
		bookingRepo:  bookingRepo,
		cache:        cache,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ResolveDuration возвращает длительность услуги для мастера.
// Без услуги возвращается FallbackDurationMinutes.
func (s *Service) ResolveDuration(ctx context.Context, workerID int64, serviceID *int64) (int, error) {
	s.logger.Info("ResolveDuration: worker=%d, service=%v", workerID, formatID(serviceID))

	worker, err := s.getWorker(ctx, "ResolveDuration", workerID, false)
	if err != nil {
		return 0, err
	}

	if serviceID == nil {
		return domain.FallbackDurationMinutes, nil
	}

	service, err := s.getService(ctx, "ResolveDuration", *serviceID)
	if err != nil {
		return 0, err
	}

	// Точечная загрузка настройки для пары (мастер, услуга)
	prices := make([]*domain.WorkerServicePrice, 0, 1)
	price, err := s.priceRepo.GetByWorkerAndService(ctx, workerID, service.ID)
	switch {
	case err == nil:
		prices = append(prices, price)
	case errors.Is(err, priceRepo.ErrPriceNotFound):
	default:
		s.logger.Error("ResolveDuration: failed to get price for worker=%d service=%d: %v", workerID, service.ID, err)
		return 0, fmt.Errorf("%w: ResolveDuration - get price: %v", ErrInternal, err)
	}

	resolver := scheduling.NewDurationResolver([]*domain.Service{service}, prices)
	return resolver.Resolve(worker, service), nil
}

// HasConflict проверяет, пересекается ли предполагаемая запись с записями мастера на эту дату
func (s *Service) HasConflict(ctx context.Context, req *ConflictRequest) (bool, error) {
	if err := validateConflictRequest(req); err != nil {
		s.logger.Warn("HasConflict: validation failed: %v", err)
		return false, err
	}

	s.logger.Info("HasConflict: worker=%d, date=%s, time=%s, service=%v, exclude=%v",
		req.WorkerID, domain.DateKey(req.Date), req.StartTime, formatID(req.ServiceID), formatID(req.ExcludeBookingID))

	worker, err := s.getWorker(ctx, "HasConflict", req.WorkerID, false)
	if err != nil {
		return false, err
	}

	var service *domain.Service
	if req.ServiceID != nil {
		if service, err = s.getService(ctx, "HasConflict", *req.ServiceID); err != nil {
			return false, err
		}
	}

	resolver, err := s.loadResolver(ctx, "HasConflict", worker.ID)
	if err != nil {
		return false, err
	}

	bookings, err := s.bookingRepo.ListByWorkerAndDate(ctx, worker.ID, req.Date)
	if err != nil {
		s.logger.Error("HasConflict: failed to list bookings: %v", err)
		return false, fmt.Errorf("%w: HasConflict - list bookings: %v", ErrInternal, err)
	}

	conflict := scheduling.FindConflict(resolver, scheduling.Candidate{
		Worker:           worker,
		Date:             req.Date,
		StartTime:        req.StartTime,
		Service:          service,
		ExcludeBookingID: req.ExcludeBookingID,
	}, bookings)

	if conflict != nil {
		s.logger.Info("HasConflict: candidate overlaps booking id=%d", conflict.ID)
		return true, nil
	}
	return false, nil
}

// GetAvailableSlots возвращает слоты мастера на дату.
// Прошедшая дата, некорректные рабочие часы или слишком длинная услуга
// дают пустой список, а не ошибку.
func (s *Service) GetAvailableSlots(ctx context.Context, req *SlotsRequest) (*SlotsResponse, error) {
	if err := validateSlotsRequest(req); err != nil {
		s.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	s.logger.Info("GetAvailableSlots: worker=%d, date=%s, service=%v",
		req.WorkerID, domain.DateKey(req.Date), formatID(req.ServiceID))

	now := s.timeProvider.Now()

	worker, err := s.getWorker(ctx, "GetAvailableSlots", req.WorkerID, true)
	if err != nil {
		return nil, err
	}

	var service *domain.Service
	if req.ServiceID != nil {
		if service, err = s.getService(ctx, "GetAvailableSlots", *req.ServiceID); err != nil {
			return nil, err
		}
	}

	resolver, err := s.loadResolver(ctx, "GetAvailableSlots", worker.ID)
	if err != nil {
		return nil, err
	}
	duration := resolver.Resolve(worker, service)

	response := &SlotsResponse{
		WorkerID:        worker.ID,
		Date:            domain.DateKey(req.Date),
		ServiceID:       req.ServiceID,
		DurationMinutes: duration,
		Slots:           []SlotResponse{},
	}

	if domain.BeforeDay(req.Date, now) {
		s.logger.Info("GetAvailableSlots: date %s is in the past", domain.DateKey(req.Date))
		return response, nil
	}

	bookings, err := s.bookingRepo.ListByWorkerAndDate(ctx, worker.ID, req.Date)
	if err != nil {
		s.logger.Error("GetAvailableSlots: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: GetAvailableSlots - list bookings: %v", ErrInternal, err)
	}

	slots := scheduling.GenerateSlots(resolver, scheduling.DaySchedule{
		Worker:          worker,
		Day:             req.Date,
		DurationMinutes: duration,
		Bookings:        bookings,
		Now:             now,
	})
	response.Slots = fromSlots(slots)

	s.logger.Info("GetAvailableSlots: %d slots, %d available", len(slots), domain.CountAvailable(slots))
	return response, nil
}

// GetMonthView строит календарь месяца. Без мастера все будущие дни idle;
// услуга, которую мастер не оказывает, считается не выбранной.
func (s *Service) GetMonthView(ctx context.Context, req *MonthRequest) (*domain.MonthView, error) {
	if err := validateMonthRequest(req); err != nil {
		s.logger.Warn("GetMonthView: validation failed: %v", err)
		return nil, err
	}

	s.logger.Info("GetMonthView: month=%04d-%02d, worker=%v, service=%v",
		req.Year, int(req.Month), formatID(req.WorkerID), formatID(req.ServiceID))

	now := s.timeProvider.Now()
	monthReq := scheduling.MonthRequest{Year: req.Year, Month: req.Month, Now: now}

	if req.WorkerID == nil {
		return scheduling.BuildMonthView(nil, monthReq), nil
	}

	worker, err := s.getWorker(ctx, "GetMonthView", *req.WorkerID, true)
	if err != nil {
		return nil, err
	}
	monthReq.Worker = worker

	services, prices, err := s.loadSnapshot(ctx, "GetMonthView", worker.ID)
	if err != nil {
		return nil, err
	}

	var selectedID *int64
	if req.ServiceID != nil {
		if offered, ok := domain.FindOffered(domain.OfferedServices(services, prices), *req.ServiceID); ok {
			monthReq.Service = offered.Service
			selectedID = &offered.Service.ID
		} else {
			s.logger.Info("GetMonthView: service id=%d is not offered by worker id=%d", *req.ServiceID, worker.ID)
		}
	}

	monthStart := time.Date(req.Year, req.Month, 1, 0, 0, 0, 0, now.Location())
	cacheKey := calendarCache.Key{
		WorkerID:  worker.ID,
		Month:     monthStart,
		ServiceID: selectedID,
		Today:     domain.DateIn(now, now.Location()),
	}

	// Сегодняшние слоты зависят от текущего времени, текущий месяц не кэшируем
	cacheable := req.Year != now.Year() || req.Month != now.Month()
	if cacheable {
		if view := s.cachedView(ctx, cacheKey); view != nil {
			return view, nil
		}
	}

	bookings, err := s.bookingRepo.ListByWorkerInRange(ctx, domain.BookingsInRangeFilter{
		WorkerID:  worker.ID,
		StartDate: monthStart,
		EndDate:   monthStart.AddDate(0, 1, -1),
	})
	if err != nil {
		s.logger.Error("GetMonthView: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: GetMonthView - list bookings: %v", ErrInternal, err)
	}
	monthReq.Bookings = bookings

	view := scheduling.BuildMonthView(scheduling.NewDurationResolver(services, prices), monthReq)

	if cacheable {
		s.storeView(ctx, cacheKey, view)
	}

	return view, nil
}

// ListWorkers возвращает активных мастеров с услугами и ценами
func (s *Service) ListWorkers(ctx context.Context) (*WorkerListResponse, error) {
	s.logger.Info("ListWorkers: fetching active workers")

	workers, err := s.workerRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListWorkers: failed to list workers: %v", err)
		return nil, fmt.Errorf("%w: ListWorkers - list workers: %v", ErrInternal, err)
	}

	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListWorkers: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: ListWorkers - list services: %v", ErrInternal, err)
	}

	response := &WorkerListResponse{Workers: make([]WorkerResponse, 0, len(workers))}
	for _, w := range workers {
		prices, err := s.priceRepo.ListByWorker(ctx, w.ID)
		if err != nil {
			s.logger.Error("ListWorkers: failed to list prices for worker=%d: %v", w.ID, err)
			return nil, fmt.Errorf("%w: ListWorkers - list prices: %v", ErrInternal, err)
		}
		response.Workers = append(response.Workers, fromWorker(w, domain.OfferedServices(services, prices)))
	}

	s.logger.Info("ListWorkers: found %d workers", len(response.Workers))
	return response, nil
}

func (s *Service) getWorker(ctx context.Context, op string, id int64, activeOnly bool) (*domain.Worker, error) {
	worker, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, workerRepo.ErrWorkerNotFound) {
			s.logger.Warn("%s: worker id=%d not found", op, id)
			return nil, ErrWorkerNotFound
		}
		s.logger.Error("%s: failed to get worker id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get worker: %v", ErrInternal, op, err)
	}

	if activeOnly && !worker.IsActive {
		s.logger.Warn("%s: worker id=%d is inactive", op, id)
		return nil, ErrWorkerNotFound
	}

	return worker, nil
}

func (s *Service) getService(ctx context.Context, op string, id int64) (*domain.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: failed to get service id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get service: %v", ErrInternal, op, err)
	}
	return service, nil
}

// loadSnapshot загружает каталог услуг и настройки мастера одним снимком
func (s *Service) loadSnapshot(ctx context.Context, op string, workerID int64) ([]*domain.Service, []*domain.WorkerServicePrice, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("%s: failed to list services: %v", op, err)
		return nil, nil, fmt.Errorf("%w: %s - list services: %v", ErrInternal, op, err)
	}

	prices, err := s.priceRepo.ListByWorker(ctx, workerID)
	if err != nil {
		s.logger.Error("%s: failed to list prices for worker=%d: %v", op, workerID, err)
		return nil, nil, fmt.Errorf("%w: %s - list prices: %v", ErrInternal, op, err)
	}

	return services, prices, nil
}

func (s *Service) loadResolver(ctx context.Context, op string, workerID int64) (*scheduling.DurationResolver, error) {
	services, prices, err := s.loadSnapshot(ctx, op, workerID)
	if err != nil {
		return nil, err
	}
	return scheduling.NewDurationResolver(services, prices), nil
}

// cachedView ошибки кэша не прерывают запрос
func (s *Service) cachedView(ctx context.Context, key calendarCache.Key) *domain.MonthView {
	if s.cache == nil {
		return nil
	}

	view, err := s.cache.Get(ctx, key)
	if err != nil && !errors.Is(err, calendarCache.ErrCacheMiss) {
		s.logger.Warn("GetMonthView: calendar cache unavailable: %v", err)
	}
	if s.metrics != nil {
		s.metrics.CalendarCacheLookup(err == nil)
	}
	if err != nil {
		return nil
	}
	return view
}

func (s *Service) storeView(ctx context.Context, key calendarCache.Key, view *domain.MonthView) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, view); err != nil {
		s.logger.Warn("GetMonthView: failed to cache calendar: %v", err)
	}
}

func formatID(id *int64) string {
	if id == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *id)
}
