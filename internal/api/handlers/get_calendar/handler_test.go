package get_calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type stubService struct {
	got *availability.MonthRequest
	err error
}

func (s *stubService) GetMonthView(_ context.Context, req *availability.MonthRequest) (*domain.MonthView, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	first := time.Date(req.Year, req.Month, 1, 0, 0, 0, 0, time.UTC)
	return &domain.MonthView{
		Month: first,
		Today: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Weeks: [][]domain.CalendarDay{{
			{Date: first.AddDate(0, 0, -1), InMonth: false, Status: domain.DayStatusPast},
			{Date: first, InMonth: true, Status: domain.DayStatusAvailable, IsToday: false},
		}},
		PrevMonth: first.AddDate(0, -1, 0),
		NextMonth: first.AddDate(0, 1, 0),
	}, nil
}

func get(h *Handler, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calendar?"+query, nil))
	return rec
}

func TestHandler_Calendar(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, fixedTime{now: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)}, noopLogger{})

	rec := get(h, "month=2025-01&workerId=1&serviceId=10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"month":"2025-01","today":"2024-06-10","workerId":1,"serviceId":10,
		"weeks":[[
			{"date":"2024-12-31","day":31,"inMonth":false,"status":"past","isToday":false},
			{"date":"2025-01-01","day":1,"inMonth":true,"status":"available","isToday":false}
		]],
		"prevMonth":"2024-12","nextMonth":"2025-02"
	}`, rec.Body.String())

	assert.Equal(t, 2025, svc.got.Year)
	assert.Equal(t, time.January, svc.got.Month)
}

func TestHandler_DefaultsToCurrentMonth(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, fixedTime{now: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)}, noopLogger{})

	rec := get(h, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2024, svc.got.Year)
	assert.Equal(t, time.June, svc.got.Month)
	assert.Nil(t, svc.got.WorkerID)
}

func TestHandler_Errors(t *testing.T) {
	now := fixedTime{now: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)}

	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{name: "bad month", query: "month=2024-13", status: http.StatusBadRequest},
		{name: "bad worker", query: "workerId=-1", status: http.StatusBadRequest},
		{name: "bad service", query: "serviceId=abc", status: http.StatusBadRequest},
		{name: "unknown worker", query: "workerId=9", err: availability.ErrWorkerNotFound, status: http.StatusNotFound},
		{name: "storage", query: "workerId=1", err: availability.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{err: tt.err}, now, noopLogger{})
			assert.Equal(t, tt.status, get(h, tt.query).Code)
		})
	}
}
