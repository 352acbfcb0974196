package create_booking

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidDate         = "invalid date format, expected YYYY-MM-DD"
	msgInvalidTime         = "invalid start time format, expected HH:MM"
	msgSlotNotAvailable    = "this time slot conflicts with an existing appointment"
	msgWorkerNotFound      = "worker not found"
	msgServiceNotFound     = "service not found"
	msgBookingInPast       = "please choose a future date and time"
	msgDateTooFar          = "date is too far in the future"
	msgOutsideWorkingHours = "time is outside of the worker's working hours"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: worker_id=%d, date=%s, time=%s", req.WorkerID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrWorkerNotFound):
			h.logger.Warn("POST /bookings - Worker not found: worker_id=%d", req.WorkerID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrBookingInPast):
			handlers.RespondBadRequest(w, msgBookingInPast)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrInvalidInput):
			// Сообщение валидации безопасно показывать клиенту
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), createBooking.ErrInvalidInput.Error()+": "))

		default:
			h.logger.Error("POST /bookings - Failed to create booking: worker_id=%d, error=%v", req.WorkerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, worker_id=%d", result.ID, result.WorkerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
