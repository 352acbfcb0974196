package resolve_duration

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

const (
	msgInvalidWorkerID  = "invalid worker id"
	msgInvalidServiceID = "invalid service id"
	msgWorkerNotFound   = "worker not found"
	msgServiceNotFound  = "service not found"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/workers/{workerId}/duration
// Query params: serviceId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workerID, err := handlers.ParseID(mux.Vars(r)["workerId"])
	if err != nil {
		h.logger.Warn("GET /workers/{id}/duration - Invalid worker ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	serviceID, err := handlers.ParseOptionalID(r.URL.Query().Get("serviceId"))
	if err != nil {
		h.logger.Warn("GET /workers/{id}/duration - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	duration, err := h.service.ResolveDuration(r.Context(), workerID, serviceID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrWorkerNotFound):
			h.logger.Warn("GET /workers/{id}/duration - Worker not found: worker_id=%d", workerID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, availability.ErrServiceNotFound):
			h.logger.Warn("GET /workers/{id}/duration - Service not found: worker_id=%d", workerID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /workers/{id}/duration - Failed to resolve duration: worker_id=%d, error=%v", workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &DurationResponse{
		WorkerID:        workerID,
		ServiceID:       serviceID,
		DurationMinutes: duration,
	})
}
