package has_conflict

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

const (
	msgInvalidWorkerID  = "invalid worker id"
	msgInvalidServiceID = "invalid service id"
	msgInvalidExcludeID = "invalid excludeBookingId"
	msgInvalidDateTime  = "invalid date or time, expected YYYY-MM-DD and HH:MM"
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

// Handle GET /api/v1/workers/{workerId}/conflicts
// Query params: date, time (required), serviceId, excludeBookingId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workerID, err := handlers.ParseID(mux.Vars(r)["workerId"])
	if err != nil {
		h.logger.Warn("GET /workers/{id}/conflicts - Invalid worker ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	query := r.URL.Query()

	req, err := ToServiceRequest(workerID, query.Get("date"), query.Get("time"), h.location)
	if err != nil {
		h.logger.Warn("GET /workers/{id}/conflicts - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	if req.ServiceID, err = handlers.ParseOptionalID(query.Get("serviceId")); err != nil {
		h.logger.Warn("GET /workers/{id}/conflicts - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if req.ExcludeBookingID, err = handlers.ParseOptionalID(query.Get("excludeBookingId")); err != nil {
		h.logger.Warn("GET /workers/{id}/conflicts - Invalid exclude ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExcludeID)
		return
	}

	conflict, err := h.service.HasConflict(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrWorkerNotFound):
			h.logger.Warn("GET /workers/{id}/conflicts - Worker not found: worker_id=%d", workerID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, availability.ErrServiceNotFound):
			h.logger.Warn("GET /workers/{id}/conflicts - Service not found: worker_id=%d", workerID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDateTime)

		default:
			h.logger.Error("GET /workers/{id}/conflicts - Failed to check conflict: worker_id=%d, error=%v", workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &ConflictResponse{
		WorkerID:    workerID,
		Date:        req.Date.Format(domain.DateFormat),
		Time:        req.StartTime.String(),
		HasConflict: conflict,
	})
}
