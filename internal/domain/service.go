package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is an offered treatment with a default duration.
type Service struct {
	ID              int64
	Name            string
	Description     string
	DurationMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// WorkerServicePrice is a per-(worker, service) override holding the price and
// the authoritative duration for that pair. At most one exists per pair.
type WorkerServicePrice struct {
	ID              int64
	WorkerID        int64
	ServiceID       int64
	Price           decimal.Decimal
	DurationMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OfferedService is a service as offered by a particular worker.
// Price is nil when the worker has no override for the service.
type OfferedService struct {
	Service         *Service
	Price           *decimal.Decimal
	DurationMinutes int
}

// OfferedServices returns the services a worker offers: those with a price
// record, or the whole catalogue when the worker has none configured.
// Order follows the catalogue.
func OfferedServices(catalogue []*Service, prices []*WorkerServicePrice) []OfferedService {
	byService := make(map[int64]*WorkerServicePrice, len(prices))
	for _, p := range prices {
		if p != nil {
			byService[p.ServiceID] = p
		}
	}

	offered := make([]OfferedService, 0, len(catalogue))
	for _, s := range catalogue {
		if s == nil {
			continue
		}

		p, ok := byService[s.ID]
		switch {
		case ok:
			price := p.Price
			duration := s.DurationMinutes
			if p.DurationMinutes > 0 {
				duration = p.DurationMinutes
			}
			offered = append(offered, OfferedService{Service: s, Price: &price, DurationMinutes: duration})
		case len(byService) == 0:
			offered = append(offered, OfferedService{Service: s, DurationMinutes: s.DurationMinutes})
		}
	}

	return offered
}

// FindOffered returns the offered entry for serviceID.
func FindOffered(offered []OfferedService, serviceID int64) (OfferedService, bool) {
	for _, o := range offered {
		if o.Service.ID == serviceID {
			return o, true
		}
	}
	return OfferedService{}, false
}
