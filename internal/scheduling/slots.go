package scheduling

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// DaySchedule входные данные генератора слотов на один день
type DaySchedule struct {
	Worker          *domain.Worker
	Day             time.Time
	DurationMinutes int
	Bookings        []*domain.Booking // записи мастера на этот день
	Now             time.Time         // текущее время в часовом поясе салона
}

// Slots перечисляет возможные начала записи с шагом SlotStepMinutes от начала
// рабочего дня мастера до последнего времени, при котором услуга успевает закончиться.
// Для сегодняшнего дня слоты, закончившиеся к моменту Now, не выдаются вовсе.
// Последовательность конечная и может перебираться повторно.
func Slots(resolver *DurationResolver, s DaySchedule) iter.Seq[domain.Slot] {
	return func(yield func(domain.Slot) bool) {
		if s.Worker == nil || s.DurationMinutes <= 0 {
			return
		}

		day := time.Date(s.Day.Year(), s.Day.Month(), s.Day.Day(), 0, 0, 0, 0, dayLocation(s))
		windowStart, windowEnd := s.Worker.WorkingWindow(day)

		// Некорректные рабочие часы
		if !windowEnd.After(windowStart) {
			return
		}

		duration := time.Duration(s.DurationMinutes) * time.Minute
		lastStart := windowEnd.Add(-duration)

		// Услуга не помещается в рабочий день
		if lastStart.Before(windowStart) {
			return
		}

		busy := make([]Interval, 0, len(s.Bookings))
		for _, b := range s.Bookings {
			if b == nil || b.WorkerID != s.Worker.ID || !b.IsOn(day) {
				continue
			}
			busy = append(busy, BookingInterval(resolver, day, b))
		}

		isToday := domain.SameDay(day, s.Now)
		step := time.Duration(domain.SlotStepMinutes) * time.Minute

		for start := windowStart; !start.After(lastStart); start = start.Add(step) {
			candidate := Interval{Start: start, End: start.Add(duration)}

			// Прошедшие слоты сегодняшнего дня пропускаем
			if isToday && !candidate.End.After(s.Now) {
				continue
			}

			slot := domain.Slot{
				StartTime: types.NewTimeString(start),
				Available: !overlapsAny(candidate, busy),
			}
			if !yield(slot) {
				return
			}
		}
	}
}

// GenerateSlots материализует Slots в срез. Пустой результат - не ошибка.
func GenerateSlots(resolver *DurationResolver, s DaySchedule) []domain.Slot {
	slots := make([]domain.Slot, 0)
	for slot := range Slots(resolver, s) {
		slots = append(slots, slot)
	}
	return slots
}

// HasAvailableSlot true, если в дне есть хотя бы один свободный слот
func HasAvailableSlot(resolver *DurationResolver, s DaySchedule) bool {
	for slot := range Slots(resolver, s) {
		if slot.Available {
			return true
		}
	}
	return false
}

func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// dayLocation день и текущее время сравниваются в часовом поясе Now
func dayLocation(s DaySchedule) *time.Location {
	if !s.Now.IsZero() {
		return s.Now.Location()
	}
	return s.Day.Location()
}
