package scheduling

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const daysPerWeek = 7

// MonthRequest входные данные для построения календаря на месяц
type MonthRequest struct {
	Worker  *domain.Worker  // nil - мастер не выбран
	Service *domain.Service // nil - услуга не выбрана
	Year    int
	Month   time.Month

	// Bookings записи мастера за месяц, могут содержать и другие даты
	Bookings []*domain.Booking

	// Now текущее время в часовом поясе салона, из него берется "сегодня"
	Now time.Time
}

// BuildMonthView строит сетку месяца по неделям (с понедельника), включая
// дни соседних месяцев в первой и последней неделе.
//
// Статус дня определяется в порядке приоритета:
//  1. дата раньше сегодняшней - past;
//  2. не выбран мастер или услуга, либо день из соседнего месяца - idle;
//  3. есть хотя бы один свободный слот - available, иначе full.
func BuildMonthView(resolver *DurationResolver, req MonthRequest) *domain.MonthView {
	loc := req.Now.Location()
	today := domain.DateIn(req.Now, loc)
	monthStart := time.Date(req.Year, req.Month, 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, -1)

	// Раскладываем записи по дням один раз на весь месяц
	bookingsByDay := make(map[string][]*domain.Booking)
	for _, b := range req.Bookings {
		if b == nil {
			continue
		}
		key := domain.DateKey(b.Date)
		bookingsByDay[key] = append(bookingsByDay[key], b)
	}

	duration := 0
	selected := req.Worker != nil && req.Service != nil
	if selected {
		duration = resolver.Resolve(req.Worker, req.Service)
	}

	gridStart := monthStart.AddDate(0, 0, -mondayOffset(monthStart))
	gridEnd := monthEnd.AddDate(0, 0, daysPerWeek-1-mondayOffset(monthEnd))

	weeks := make([][]domain.CalendarDay, 0, 6)
	for weekStart := gridStart; !weekStart.After(gridEnd); weekStart = weekStart.AddDate(0, 0, daysPerWeek) {
		week := make([]domain.CalendarDay, 0, daysPerWeek)

		for i := 0; i < daysPerWeek; i++ {
			day := weekStart.AddDate(0, 0, i)
			inMonth := day.Month() == req.Month && day.Year() == req.Year

			var status domain.DayStatus
			switch {
			case day.Before(today):
				status = domain.DayStatusPast
			case !selected || !inMonth:
				status = domain.DayStatusIdle
			default:
				schedule := DaySchedule{
					Worker:          req.Worker,
					Day:             day,
					DurationMinutes: duration,
					Bookings:        bookingsByDay[domain.DateKey(day)],
					Now:             req.Now,
				}
				status = domain.DayStatusFull
				if HasAvailableSlot(resolver, schedule) {
					status = domain.DayStatusAvailable
				}
			}

			week = append(week, domain.CalendarDay{
				Date:    day,
				InMonth: inMonth,
				Status:  status,
				IsToday: day.Equal(today),
			})
		}

		weeks = append(weeks, week)
	}

	return &domain.MonthView{
		Month:     monthStart,
		Today:     today,
		Weeks:     weeks,
		PrevMonth: monthStart.AddDate(0, -1, 0),
		NextMonth: monthStart.AddDate(0, 1, 0),
	}
}

// mondayOffset количество дней от понедельника недели, в которую попадает t
func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % daysPerWeek
}
