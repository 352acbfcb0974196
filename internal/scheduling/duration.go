package scheduling

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

type workerServiceKey struct {
	workerID  int64
	serviceID int64
}

// DurationResolver определяет длительность записи для пары (мастер, услуга).
// Работает по неизменяемому снимку каталога услуг и персональных настроек мастеров,
// сам в хранилище не ходит.
type DurationResolver struct {
	services  map[int64]*domain.Service
	overrides map[workerServiceKey]int
}

// NewDurationResolver собирает резолвер из снимка услуг и персональных цен.
// Записи цен с неположительной длительностью игнорируются.
func NewDurationResolver(services []*domain.Service, prices []*domain.WorkerServicePrice) *DurationResolver {
	r := &DurationResolver{
		services:  make(map[int64]*domain.Service, len(services)),
		overrides: make(map[workerServiceKey]int, len(prices)),
	}

	for _, s := range services {
		if s != nil {
			r.services[s.ID] = s
		}
	}

	for _, p := range prices {
		if p == nil || p.DurationMinutes <= 0 {
			continue
		}
		r.overrides[workerServiceKey{workerID: p.WorkerID, serviceID: p.ServiceID}] = p.DurationMinutes
	}

	return r
}

// Resolve возвращает длительность услуги для мастера в минутах:
// персональная настройка мастера, иначе длительность услуги по умолчанию,
// иначе (запись без услуги) FallbackDurationMinutes.
func (r *DurationResolver) Resolve(worker *domain.Worker, service *domain.Service) int {
	if service == nil {
		return domain.FallbackDurationMinutes
	}

	if worker != nil {
		if minutes, ok := r.override(worker.ID, service.ID); ok {
			return minutes
		}
	}

	if service.DurationMinutes <= 0 {
		return domain.FallbackDurationMinutes
	}
	return service.DurationMinutes
}

// ResolveBooking возвращает длительность существующей записи по ее собственной услуге
func (r *DurationResolver) ResolveBooking(b *domain.Booking) int {
	if b == nil || b.ServiceID == nil {
		return domain.FallbackDurationMinutes
	}

	if minutes, ok := r.override(b.WorkerID, *b.ServiceID); ok {
		return minutes
	}

	// Услуги нет в снимке каталога: считаем как запись без услуги
	service := r.service(*b.ServiceID)
	if service == nil {
		return domain.FallbackDurationMinutes
	}
	return r.Resolve(nil, service)
}

// Service возвращает услугу из снимка или nil
func (r *DurationResolver) Service(id int64) *domain.Service {
	return r.service(id)
}

func (r *DurationResolver) service(id int64) *domain.Service {
	if r == nil {
		return nil
	}
	return r.services[id]
}

func (r *DurationResolver) override(workerID, serviceID int64) (int, bool) {
	if r == nil {
		return 0, false
	}
	minutes, ok := r.overrides[workerServiceKey{workerID: workerID, serviceID: serviceID}]
	return minutes, ok
}
