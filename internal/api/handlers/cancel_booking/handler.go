package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	cancelBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/cancel_booking"
)

const (
	msgBookingNotFound = "booking not found or link is invalid"
	msgBookingInPast   = "cannot cancel past appointments"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandlePreview GET /api/v1/cancellations/{token}
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Preview(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		h.respondError(w, "GET /cancellations/{token}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleCancel POST /api/v1/cancellations/{token}
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Cancel(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		h.respondError(w, "POST /cancellations/{token}", err)
		return
	}

	h.logger.Info("POST /cancellations/{token} - Booking cancelled successfully: booking_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, cancelBooking.ErrBookingNotFound):
		// Недействительный токен и отсутствующая запись неразличимы для клиента
		h.logger.Warn("%s - Booking not found", route)
		handlers.RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, cancelBooking.ErrBookingInPast):
		h.logger.Warn("%s - Booking already passed", route)
		handlers.RespondBadRequest(w, msgBookingInPast)

	default:
		h.logger.Error("%s - Failed to process cancellation: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
