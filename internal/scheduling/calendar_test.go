package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func TestBuildMonthView_Grid(t *testing.T) {
	view := BuildMonthView(NewDurationResolver(nil, nil), MonthRequest{
		Year:  2024,
		Month: time.June,
		Now:   at(2024, 6, 10, 9, 40),
	})

	// Июнь 2024 начинается в субботу и заканчивается в воскресенье
	require.Len(t, view.Weeks, 5)
	for _, week := range view.Weeks {
		require.Len(t, week, 7)
		assert.Equal(t, time.Monday, week[0].Date.Weekday())
	}

	first := view.Weeks[0][0]
	assert.Equal(t, day(2024, 5, 27), first.Date)
	assert.False(t, first.InMonth)

	last := view.Weeks[4][6]
	assert.Equal(t, day(2024, 6, 30), last.Date)
	assert.True(t, last.InMonth)

	assert.Equal(t, day(2024, 6, 1), view.Month)
	assert.Equal(t, day(2024, 5, 1), view.PrevMonth)
	assert.Equal(t, day(2024, 7, 1), view.NextMonth)
}

func TestBuildMonthView_StatusWithoutSelection(t *testing.T) {
	view := BuildMonthView(NewDurationResolver(nil, nil), MonthRequest{
		Worker: newWorker(1, "09:00", "18:00"),
		Year:   2024,
		Month:  time.June,
		Now:    at(2024, 6, 10, 9, 40),
	})

	for _, d := range view.Days() {
		if d.Date.Before(day(2024, 6, 10)) {
			assert.Equal(t, domain.DayStatusPast, d.Status, d.Date)
			continue
		}
		assert.Equal(t, domain.DayStatusIdle, d.Status, d.Date)
	}
}

func TestBuildMonthView_Statuses(t *testing.T) {
	worker := newWorker(1, "09:00", "11:00")
	service := newService(10, 60)
	resolver := NewDurationResolver([]*domain.Service{service}, nil)

	full := day(2024, 6, 20)
	bookings := []*domain.Booking{
		newBooking(1, 1, idPtr(10), full, "09:00"),
		newBooking(2, 1, idPtr(10), full, "10:00"),
		newBooking(3, 1, idPtr(10), day(2024, 6, 21), "09:00"),
		// Прошедший день с полной доступностью все равно past
		newBooking(4, 1, idPtr(10), day(2024, 6, 3), "09:00"),
	}

	view := BuildMonthView(resolver, MonthRequest{
		Worker:   worker,
		Service:  service,
		Year:     2024,
		Month:    time.June,
		Bookings: bookings,
		Now:      at(2024, 6, 10, 9, 40),
	})

	tests := []struct {
		date time.Time
		want domain.DayStatus
	}{
		{date: day(2024, 5, 31), want: domain.DayStatusPast},
		{date: day(2024, 6, 3), want: domain.DayStatusPast},
		{date: day(2024, 6, 9), want: domain.DayStatusPast},
		{date: day(2024, 6, 10), want: domain.DayStatusAvailable},
		{date: day(2024, 6, 20), want: domain.DayStatusFull},
		{date: day(2024, 6, 21), want: domain.DayStatusAvailable},
		{date: day(2024, 6, 30), want: domain.DayStatusAvailable},
	}

	for _, tt := range tests {
		cell, ok := view.Day(tt.date)
		require.True(t, ok, tt.date)
		assert.Equal(t, tt.want, cell.Status, tt.date)
	}

	todayCell, ok := view.Day(day(2024, 6, 10))
	require.True(t, ok)
	assert.True(t, todayCell.IsToday)

	todayCount := 0
	for _, d := range view.Days() {
		if d.IsToday {
			todayCount++
		}
	}
	assert.Equal(t, 1, todayCount)
}

func TestBuildMonthView_TodayFullyElapsed(t *testing.T) {
	worker := newWorker(1, "09:00", "11:00")
	service := newService(10, 60)

	view := BuildMonthView(NewDurationResolver([]*domain.Service{service}, nil), MonthRequest{
		Worker:  worker,
		Service: service,
		Year:    2024,
		Month:   time.June,
		Now:     at(2024, 6, 10, 12, 0),
	})

	cell, ok := view.Day(day(2024, 6, 10))
	require.True(t, ok)
	assert.Equal(t, domain.DayStatusFull, cell.Status)
	assert.True(t, cell.IsToday)
}

func TestBuildMonthView_TrailingDaysAreIdle(t *testing.T) {
	worker := newWorker(1, "09:00", "18:00")
	service := newService(10, 30)

	view := BuildMonthView(NewDurationResolver([]*domain.Service{service}, nil), MonthRequest{
		Worker:  worker,
		Service: service,
		Year:    2024,
		Month:   time.May,
		Now:     at(2024, 5, 2, 8, 0),
	})

	cell, ok := view.Day(day(2024, 6, 2))
	require.True(t, ok)
	assert.False(t, cell.InMonth)
	assert.Equal(t, domain.DayStatusIdle, cell.Status)
}

func TestBuildMonthView_YearRollover(t *testing.T) {
	resolver := NewDurationResolver(nil, nil)
	now := at(2024, 6, 10, 9, 0)

	december := BuildMonthView(resolver, MonthRequest{Year: 2024, Month: time.December, Now: now})
	assert.Equal(t, day(2024, 11, 1), december.PrevMonth)
	assert.Equal(t, day(2025, 1, 1), december.NextMonth)

	january := BuildMonthView(resolver, MonthRequest{Year: 2025, Month: time.January, Now: now})
	assert.Equal(t, day(2024, 12, 1), january.PrevMonth)
	assert.Equal(t, day(2025, 2, 1), january.NextMonth)

	// Февраль 2021 ровно 4 недели с понедельника по воскресенье
	february := BuildMonthView(resolver, MonthRequest{Year: 2021, Month: time.February, Now: now})
	assert.Len(t, february.Weeks, 4)
}
