package availability

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ConflictRequest проверка пересечения предполагаемой записи с существующими
type ConflictRequest struct {
	WorkerID         int64
	Date             time.Time
	StartTime        types.TimeString
	ServiceID        *int64
	ExcludeBookingID *int64
}

// SlotsRequest запрос слотов мастера на день
type SlotsRequest struct {
	WorkerID  int64
	Date      time.Time
	ServiceID *int64
}

// SlotResponse слот в ответе
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// SlotsResponse слоты мастера на день
type SlotsResponse struct {
	WorkerID        int64          `json:"workerId"`
	Date            string         `json:"date"`
	ServiceID       *int64         `json:"serviceId,omitempty"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// MonthRequest запрос календаря на месяц; мастер и услуга не обязательны
type MonthRequest struct {
	WorkerID  *int64
	Year      int
	Month     time.Month
	ServiceID *int64
}

// OfferedServiceResponse услуга в карточке мастера
type OfferedServiceResponse struct {
	ServiceID       int64            `json:"serviceId"`
	Name            string           `json:"name"`
	DurationMinutes int              `json:"durationMinutes"`
	Price           *decimal.Decimal `json:"price,omitempty"`
}

// WorkerResponse карточка мастера в прайс-листе
type WorkerResponse struct {
	ID                int64                    `json:"id"`
	FullName          string                   `json:"fullName"`
	Role              string                   `json:"role,omitempty"`
	Bio               string                   `json:"bio,omitempty"`
	WorkingHoursStart string                   `json:"workingHoursStart"`
	WorkingHoursEnd   string                   `json:"workingHoursEnd"`
	Services          []OfferedServiceResponse `json:"services"`
}

// WorkerListResponse список активных мастеров
type WorkerListResponse struct {
	Workers []WorkerResponse `json:"workers"`
}

func fromSlots(slots []domain.Slot) []SlotResponse {
	result := make([]SlotResponse, len(slots))
	for i, s := range slots {
		result[i] = SlotResponse{Time: s.StartTime.String(), Available: s.Available}
	}
	return result
}

func fromWorker(w *domain.Worker, offered []domain.OfferedService) WorkerResponse {
	services := make([]OfferedServiceResponse, len(offered))
	for i, o := range offered {
		services[i] = OfferedServiceResponse{
			ServiceID:       o.Service.ID,
			Name:            o.Service.Name,
			DurationMinutes: o.DurationMinutes,
			Price:           o.Price,
		}
	}

	return WorkerResponse{
		ID:                w.ID,
		FullName:          w.FullName,
		Role:              w.Role,
		Bio:               w.Bio,
		WorkingHoursStart: w.WorkingHoursStart.String(),
		WorkingHoursEnd:   w.WorkingHoursEnd.String(),
		Services:          services,
	}
}
