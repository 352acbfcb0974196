package domain

import "time"

// DateIn returns the calendar date of t (year, month, day) as midnight in loc.
// Dates read from storage carry no meaningful zone, only the calendar day matters.
func DateIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = t.Location()
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameDay compares calendar days ignoring time and zone.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// BeforeDay returns true if the calendar day of a is strictly before the one of b.
func BeforeDay(a, b time.Time) bool {
	return DateIn(a, time.UTC).Before(DateIn(b, time.UTC))
}

// DateKey formats the calendar day as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}
