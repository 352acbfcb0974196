package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	WorkerID  int64   `json:"workerId"`
	ServiceID int64   `json:"serviceId"`
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "10:00"
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	WorkerID        int64   `json:"workerId"`
	WorkerName      string  `json:"workerName"`
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Phone           string  `json:"phone"`
	Email           *string `json:"email,omitempty"`
	CancelURL       string  `json:"cancelUrl,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		WorkerID:  r.WorkerID,
		ServiceID: r.ServiceID,
		Date:      date,
		StartTime: start,
		Phone:     r.Phone,
		Email:     r.Email,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		WorkerID:        resp.WorkerID,
		WorkerName:      resp.WorkerName,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Phone:           resp.Phone,
		Email:           resp.Email,
		CancelURL:       resp.CancelURL,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
