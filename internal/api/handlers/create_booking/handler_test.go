package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))
	return rec
}

func TestHandler_Created(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Sofia")
	require.NoError(t, err)

	uc := &stubUseCase{resp: &createBooking.Response{
		ID:              42,
		WorkerID:        1,
		WorkerName:      "Maria Ivanova",
		ServiceID:       10,
		ServiceName:     "Haircut",
		Date:            time.Date(2024, 6, 11, 0, 0, 0, 0, loc),
		StartTime:       "10:00",
		DurationMinutes: 45,
		Phone:           "0888123456",
		CancelURL:       "https://salon.example/cancel/tok",
		CreatedAt:       time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
	}}
	h := NewHandler(uc, loc, noopLogger{})

	rec := post(h, `{"workerId":1,"serviceId":10,"date":"2024-06-11","startTime":"10:00","phone":"0888123456"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"id":42,"workerId":1,"workerName":"Maria Ivanova","serviceId":10,"serviceName":"Haircut",
		"date":"2024-06-11","startTime":"10:00","durationMinutes":45,"phone":"0888123456",
		"cancelUrl":"https://salon.example/cancel/tok","createdAt":"2024-06-10T08:00:00Z"
	}`, rec.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, loc), uc.got.Date)
	assert.Nil(t, uc.got.Email)
}

func TestHandler_BadRequests(t *testing.T) {
	h := NewHandler(&stubUseCase{}, time.UTC, noopLogger{})

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{name: "not json", body: `phone=1`, msg: msgInvalidRequestBody},
		{name: "unknown field", body: `{"workerId":1,"notes":"x"}`, msg: msgInvalidRequestBody},
		{name: "bad date", body: `{"workerId":1,"serviceId":1,"date":"11/06/2024","startTime":"10:00"}`, msg: msgInvalidDate},
		{name: "bad time", body: `{"workerId":1,"serviceId":1,"date":"2024-06-11","startTime":"ten"}`, msg: msgInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.msg)
		})
	}
}

func TestHandler_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: createBooking.ErrSlotNotAvailable, status: http.StatusConflict},
		{err: createBooking.ErrWorkerNotFound, status: http.StatusNotFound},
		{err: createBooking.ErrServiceNotFound, status: http.StatusNotFound},
		{err: createBooking.ErrBookingInPast, status: http.StatusBadRequest},
		{err: createBooking.ErrDateTooFarInFuture, status: http.StatusBadRequest},
		{err: fmt.Errorf("%w: 09:00-18:00", createBooking.ErrOutsideWorkingHours), status: http.StatusBadRequest},
		{err: fmt.Errorf("%w: enter a valid phone number", createBooking.ErrInvalidInput), status: http.StatusBadRequest},
		{err: createBooking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, time.UTC, noopLogger{})
			rec := post(h, `{"workerId":1,"serviceId":10,"date":"2024-06-11","startTime":"10:00","phone":"0888123456"}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandler_ValidationMessageIsShown(t *testing.T) {
	h := NewHandler(&stubUseCase{err: fmt.Errorf("%w: enter a valid phone number", createBooking.ErrInvalidInput)}, time.UTC, noopLogger{})

	rec := post(h, `{"workerId":1,"serviceId":10,"date":"2024-06-11","startTime":"10:00","phone":"x"}`)
	assert.JSONEq(t, `{"error":"enter a valid phone number"}`, rec.Body.String())
}
