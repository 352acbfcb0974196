package availability

import (
	"fmt"
	"time"
)

const (
	minYear = 1970
	maxYear = 9999
)

func validateConflictRequest(req *ConflictRequest) error {
	if req == nil || req.WorkerID <= 0 {
		return fmt.Errorf("%w: worker id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func validateSlotsRequest(req *SlotsRequest) error {
	if req == nil || req.WorkerID <= 0 {
		return fmt.Errorf("%w: worker id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

func validateMonthRequest(req *MonthRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if req.Year < minYear || req.Year > maxYear {
		return fmt.Errorf("%w: year %d is out of range", ErrInvalidInput, req.Year)
	}
	if req.Month < time.January || req.Month > time.December {
		return fmt.Errorf("%w: month %d is out of range", ErrInvalidInput, req.Month)
	}
	return nil
}
