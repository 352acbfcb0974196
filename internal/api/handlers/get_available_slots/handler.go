package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

const (
	msgInvalidWorkerID  = "invalid worker id"
	msgInvalidServiceID = "invalid service id"
	msgMissingDate      = "date is required"
	msgInvalidDate      = "invalid date format, expected YYYY-MM-DD"
	msgWorkerNotFound   = "worker not found"
	msgServiceNotFound  = "service not found"
)

type Handler struct {
	service  AvailabilityService
	location *time.Location
	logger   Logger
}

func NewHandler(service AvailabilityService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/workers/{workerId}/available-slots
// Query params: date (required, YYYY-MM-DD), serviceId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем workerId из URL
	workerID, err := handlers.ParseID(mux.Vars(r)["workerId"])
	if err != nil {
		h.logger.Warn("GET /workers/{id}/available-slots - Invalid worker ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	query := r.URL.Query()

	serviceID, err := handlers.ParseOptionalID(query.Get("serviceId"))
	if err != nil {
		h.logger.Warn("GET /workers/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /workers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := handlers.ParseDate(dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /workers/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetAvailableSlots(r.Context(), &availability.SlotsRequest{
		WorkerID:  workerID,
		Date:      date,
		ServiceID: serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrWorkerNotFound):
			h.logger.Warn("GET /workers/{id}/available-slots - Worker not found: worker_id=%d", workerID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, availability.ErrServiceNotFound):
			h.logger.Warn("GET /workers/{id}/available-slots - Service not found: worker_id=%d", workerID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /workers/{id}/available-slots - Failed to get slots: worker_id=%d, error=%v", workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /workers/{id}/available-slots - Slots retrieved successfully: worker_id=%d, slots_count=%d",
		workerID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
