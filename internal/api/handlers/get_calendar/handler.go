package get_calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

const (
	msgInvalidMonth     = "invalid month, expected YYYY-MM"
	msgInvalidWorkerID  = "invalid worker id"
	msgInvalidServiceID = "invalid service id"
	msgWorkerNotFound   = "worker not found"
)

type Handler struct {
	service      AvailabilityService
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(service AvailabilityService, timeProvider TimeProvider, logger Logger) *Handler {
	return &Handler{
		service:      service,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Handle GET /api/v1/calendar
// Query params: month (YYYY-MM, по умолчанию текущий), workerId, serviceId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	month := h.timeProvider.Now()
	if raw := query.Get("month"); raw != "" {
		parsed, err := time.Parse(domain.MonthFormat, raw)
		if err != nil {
			h.logger.Warn("GET /calendar - Invalid month: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
		month = parsed
	}

	workerID, err := handlers.ParseOptionalID(query.Get("workerId"))
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid worker ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	serviceID, err := handlers.ParseOptionalID(query.Get("serviceId"))
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	view, err := h.service.GetMonthView(r.Context(), &availability.MonthRequest{
		WorkerID:  workerID,
		Year:      month.Year(),
		Month:     month.Month(),
		ServiceID: serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrWorkerNotFound):
			h.logger.Warn("GET /calendar - Worker not found: worker_id=%d", *workerID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /calendar - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /calendar - Failed to build calendar: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromMonthView(view, workerID, serviceID))
}
