package create_booking

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var phoneRegexp = regexp.MustCompile(domain.PhonePattern)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.WorkerID <= 0 {
		return fmt.Errorf("%w: workerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if !phoneRegexp.MatchString(req.Phone) {
		return fmt.Errorf("%w: enter a valid phone number", ErrInvalidInput)
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			req.Email = nil
			return nil
		}
		if len(email) > domain.MaxEmailLength {
			return fmt.Errorf("%w: email is too long", ErrInvalidInput)
		}
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email {
			return fmt.Errorf("%w: enter a valid email address", ErrInvalidInput)
		}
		req.Email = &email
	}

	return nil
}

// validateStart проверяет, что запись в будущем и не дальше advanceBookingDays
func validateStart(start, now time.Time, advanceBookingDays int) error {
	if start.Before(now) {
		return ErrBookingInPast
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := domain.DateIn(now, now.Location()).AddDate(0, 0, advanceBookingDays)
	if domain.DateIn(start, now.Location()).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateWorkingHours проверяет, что запись целиком помещается в рабочие часы мастера
func validateWorkingHours(worker *domain.Worker, start time.Time, durationMinutes int) error {
	windowStart, windowEnd := worker.WorkingWindow(start)
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	if start.Before(windowStart) || end.After(windowEnd) {
		return fmt.Errorf("%w: %s-%s", ErrOutsideWorkingHours, worker.WorkingHoursStart, worker.WorkingHoursEnd)
	}
	return nil
}
