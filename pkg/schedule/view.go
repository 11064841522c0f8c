package schedule

import (
	"fmt"
	"time"
)

// View is a calendar display granularity.
type View string

const (
	ViewDay    View = "day"
	ViewWeek   View = "week"
	ViewMonth  View = "month"
	ViewYear   View = "year"
	ViewAgenda View = "agenda"
)

func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewDay, ViewWeek, ViewMonth, ViewYear, ViewAgenda:
		return View(s), nil
	default:
		return "", fmt.Errorf("%w: unknown view %q", ErrValidation, s)
	}
}

// Direction moves a date forward or backward by one view unit.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// RangeForView returns the half-open display window [start, end) for the view
// containing date. The agenda view shows the calendar month around the date.
func RangeForView(date time.Time, view View, weekStart time.Weekday) (time.Time, time.Time) {
	switch view {
	case ViewDay:
		start := startOfDay(date)
		return start, start.AddDate(0, 0, 1)
	case ViewWeek:
		start := startOfWeek(date, weekStart)
		return start, start.AddDate(0, 0, 7)
	case ViewYear:
		start := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
		return start, start.AddDate(1, 0, 0)
	default: // month and agenda
		start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
		return start, start.AddDate(0, 1, 0)
	}
}

// Navigate moves date by exactly one unit of the view. Month and year steps
// clamp the day-of-month so navigating from Jan 31 lands on Feb 28/29, never
// on an overflowed date.
func Navigate(date time.Time, view View, dir Direction) time.Time {
	switch view {
	case ViewDay:
		return date.AddDate(0, 0, int(dir))
	case ViewWeek:
		return date.AddDate(0, 0, 7*int(dir))
	case ViewYear:
		return addMonthsClamped(date, 12*int(dir))
	default: // month and agenda
		return addMonthsClamped(date, int(dir))
	}
}

// CountEventsInRange counts events intersecting the display window of the view.
func CountEventsInRange(events []Event, date time.Time, view View, weekStart time.Weekday) int {
	from, to := RangeForView(date, view, weekStart)
	count := 0
	for _, e := range events {
		if e.Intersects(from, to) {
			count++
		}
	}
	return count
}

// addMonthsClamped advances t by a number of calendar months, clamping the
// day-of-month to the last valid day of the target month. time.AddDate would
// normalize Jan 31 + 1 month into early March instead.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	m := int(month) - 1 + months
	y := year + m/12
	m = m % 12
	if m < 0 {
		m += 12
		y--
	}
	targetMonth := time.Month(m + 1)
	if last := daysInMonth(y, targetMonth); day > last {
		day = last
	}
	return time.Date(y, targetMonth, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	day := startOfDay(t)
	diff := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -diff)
}
