package get_calendar

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CalendarDay ячейка сетки
type CalendarDay struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	InMonth bool   `json:"inMonth"`
	Status  string `json:"status"`
	IsToday bool   `json:"isToday"`
}

// CalendarResponse HTTP response model
type CalendarResponse struct {
	Month     string          `json:"month"`
	Today     string          `json:"today"`
	WorkerID  *int64          `json:"workerId,omitempty"`
	ServiceID *int64          `json:"serviceId,omitempty"`
	Weeks     [][]CalendarDay `json:"weeks"`
	PrevMonth string          `json:"prevMonth"`
	NextMonth string          `json:"nextMonth"`
}

// FromMonthView конвертирует сетку месяца в HTTP response
func FromMonthView(view *domain.MonthView, workerID, serviceID *int64) *CalendarResponse {
	weeks := make([][]CalendarDay, len(view.Weeks))
	for i, week := range view.Weeks {
		weeks[i] = make([]CalendarDay, len(week))
		for j, day := range week {
			weeks[i][j] = CalendarDay{
				Date:    day.Date.Format(domain.DateFormat),
				Day:     day.Date.Day(),
				InMonth: day.InMonth,
				Status:  string(day.Status),
				IsToday: day.IsToday,
			}
		}
	}

	return &CalendarResponse{
		Month:     view.Month.Format(domain.MonthFormat),
		Today:     view.Today.Format(domain.DateFormat),
		WorkerID:  workerID,
		ServiceID: serviceID,
		Weeks:     weeks,
		PrevMonth: view.PrevMonth.Format(domain.MonthFormat),
		NextMonth: view.NextMonth.Format(domain.MonthFormat),
	}
}
