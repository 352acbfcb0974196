package cancel_booking

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	cancelBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/cancel_booking"
)

// CancellationResponse HTTP response model
type CancellationResponse struct {
	ID          int64  `json:"id"`
	WorkerID    int64  `json:"workerId"`
	WorkerName  string `json:"workerName"`
	ServiceID   *int64 `json:"serviceId,omitempty"`
	ServiceName string `json:"serviceName,omitempty"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	Cancelled   bool   `json:"cancelled"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancellationResponse {
	return &CancellationResponse{
		ID:          resp.ID,
		WorkerID:    resp.WorkerID,
		WorkerName:  resp.WorkerName,
		ServiceID:   resp.ServiceID,
		ServiceName: resp.ServiceName,
		Date:        domain.DateKey(resp.Date),
		StartTime:   resp.StartTime.String(),
		Cancelled:   resp.Cancelled,
	}
}
