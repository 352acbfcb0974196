package domain

import "time"

// DayStatus is the availability status of a calendar day.
type DayStatus string

const (
	DayStatusPast      DayStatus = "past"
	DayStatusAvailable DayStatus = "available"
	DayStatusFull      DayStatus = "full"
	DayStatusIdle      DayStatus = "idle"
)

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date    time.Time `json:"date"`
	InMonth bool      `json:"inMonth"`
	Status  DayStatus `json:"status"`
	IsToday bool      `json:"isToday"`
}

// MonthView is a week-major month grid (Monday first) including the leading
// and trailing days of the adjacent months.
type MonthView struct {
	Month     time.Time       `json:"month"` // first day of the month
	Today     time.Time       `json:"today"`
	Weeks     [][]CalendarDay `json:"weeks"`
	PrevMonth time.Time       `json:"prevMonth"`
	NextMonth time.Time       `json:"nextMonth"`
}

// Days returns all cells in grid order.
func (v *MonthView) Days() []CalendarDay {
	days := make([]CalendarDay, 0, len(v.Weeks)*7)
	for _, week := range v.Weeks {
		days = append(days, week...)
	}
	return days
}

// Day returns the cell for date, if the grid contains it.
func (v *MonthView) Day(date time.Time) (CalendarDay, bool) {
	for _, week := range v.Weeks {
		for _, day := range week {
			if SameDay(day.Date, date) {
				return day, true
			}
		}
	}
	return CalendarDay{}, false
}
