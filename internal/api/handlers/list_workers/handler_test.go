package list_workers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type stubService struct {
	resp *availability.WorkerListResponse
	err  error
}

func (s stubService) ListWorkers(context.Context) (*availability.WorkerListResponse, error) {
	return s.resp, s.err
}

func TestHandler(t *testing.T) {
	price := decimal.RequireFromString("35.50")
	h := NewHandler(stubService{resp: &availability.WorkerListResponse{Workers: []availability.WorkerResponse{{
		ID:                1,
		FullName:          "Maria Ivanova",
		WorkingHoursStart: "09:00",
		WorkingHoursEnd:   "18:00",
		Services: []availability.OfferedServiceResponse{
			{ServiceID: 10, Name: "Haircut", DurationMinutes: 45, Price: &price},
		},
	}}}}, noopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/workers", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"workers":[{"id":1,"fullName":"Maria Ivanova","workingHoursStart":"09:00","workingHoursEnd":"18:00",
		"services":[{"serviceId":10,"name":"Haircut","durationMinutes":45,"price":"35.5"}]}]}`, rec.Body.String())
}

func TestHandler_Error(t *testing.T) {
	h := NewHandler(stubService{err: availability.ErrInternal}, noopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/workers", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
