package list_workers

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
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

// Handle GET /api/v1/workers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListWorkers(r.Context())
	if err != nil {
		h.logger.Error("GET /workers - Failed to list workers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /workers - Workers retrieved successfully: count=%d", len(result.Workers))
	handlers.RespondJSON(w, http.StatusOK, result)
}
