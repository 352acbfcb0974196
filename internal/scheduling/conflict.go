package scheduling

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Interval полуоткрытый интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет пересечение полуоткрытых интервалов.
// Интервалы, которые только касаются границами, не пересекаются.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Candidate предполагаемая запись, которую проверяют на конфликт
type Candidate struct {
	Worker    *domain.Worker
	Date      time.Time
	StartTime types.TimeString
	Service   *domain.Service // nil - запись без услуги

	// ExcludeBookingID исключает запись из проверки (перенос существующей записи)
	ExcludeBookingID *int64
}

// CandidateInterval возвращает интервал кандидата, привязанный к его дате
func CandidateInterval(resolver *DurationResolver, c Candidate) Interval {
	return newInterval(c.Date, c.StartTime, resolver.Resolve(c.Worker, c.Service))
}

// BookingInterval возвращает интервал существующей записи на день day
func BookingInterval(resolver *DurationResolver, day time.Time, b *domain.Booking) Interval {
	return newInterval(day, b.StartTime, resolver.ResolveBooking(b))
}

// FindConflict возвращает первую запись мастера в ту же дату, интервал которой
// пересекается с интервалом кандидата, или nil.
// existing должен содержать все записи мастера на эту дату; чужие мастера
// и другие даты пропускаются.
func FindConflict(resolver *DurationResolver, c Candidate, existing []*domain.Booking) *domain.Booking {
	if c.Worker == nil {
		return nil
	}

	candidate := CandidateInterval(resolver, c)

	for _, b := range existing {
		if b == nil || b.WorkerID != c.Worker.ID || !b.IsOn(c.Date) {
			continue
		}
		if c.ExcludeBookingID != nil && b.ID == *c.ExcludeBookingID {
			continue
		}

		if candidate.Overlaps(BookingInterval(resolver, c.Date, b)) {
			return b
		}
	}

	return nil
}

// HasConflict true, если кандидат пересекается хотя бы с одной записью мастера
func HasConflict(resolver *DurationResolver, c Candidate, existing []*domain.Booking) bool {
	return FindConflict(resolver, c, existing) != nil
}

func newInterval(day time.Time, start types.TimeString, durationMinutes int) Interval {
	from := start.On(day)
	return Interval{Start: from, End: from.Add(time.Duration(durationMinutes) * time.Minute)}
}
