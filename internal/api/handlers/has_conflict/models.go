package has_conflict

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ConflictResponse HTTP response model
type ConflictResponse struct {
	WorkerID    int64  `json:"workerId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	HasConflict bool   `json:"hasConflict"`
}

// ToServiceRequest создает запрос к сервису из query параметров
func ToServiceRequest(workerID int64, date, startTime string, loc *time.Location) (*availability.ConflictRequest, error) {
	day, err := handlers.ParseDate(date, loc)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return nil, err
	}

	return &availability.ConflictRequest{
		WorkerID:  workerID,
		Date:      day,
		StartTime: start,
	}, nil
}
