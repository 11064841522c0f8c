package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseView(t *testing.T) {
	for _, s := range []string{"day", "week", "month", "year", "agenda"} {
		v, err := ParseView(s)
		require.NoError(t, err)
		assert.Equal(t, View(s), v)
	}

	_, err := ParseView("fortnight")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRangeForView(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		view      View
		weekStart time.Weekday
		wantFrom  time.Time
		wantTo    time.Time
	}{
		{
			name:     "day covers midnight to midnight",
			date:     time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC),
			view:     ViewDay,
			wantFrom: date(2024, time.March, 15),
			wantTo:   date(2024, time.March, 16),
		},
		{
			name:      "week starting monday",
			date:      date(2024, time.March, 15), // a Friday
			view:      ViewWeek,
			weekStart: time.Monday,
			wantFrom:  date(2024, time.March, 11),
			wantTo:    date(2024, time.March, 18),
		},
		{
			name:      "week starting sunday",
			date:      date(2024, time.March, 15),
			view:      ViewWeek,
			weekStart: time.Sunday,
			wantFrom:  date(2024, time.March, 10),
			wantTo:    date(2024, time.March, 17),
		},
		{
			name:      "week start on the week start day itself",
			date:      date(2024, time.March, 11), // a Monday
			view:      ViewWeek,
			weekStart: time.Monday,
			wantFrom:  date(2024, time.March, 11),
			wantTo:    date(2024, time.March, 18),
		},
		{
			name:     "month",
			date:     date(2024, time.February, 15),
			view:     ViewMonth,
			wantFrom: date(2024, time.February, 1),
			wantTo:   date(2024, time.March, 1),
		},
		{
			name:     "year",
			date:     date(2024, time.June, 10),
			view:     ViewYear,
			wantFrom: date(2024, time.January, 1),
			wantTo:   date(2025, time.January, 1),
		},
		{
			name:     "agenda shows the calendar month",
			date:     date(2024, time.February, 15),
			view:     ViewAgenda,
			wantFrom: date(2024, time.February, 1),
			wantTo:   date(2024, time.March, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := RangeForView(tt.date, tt.view, tt.weekStart)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		view View
		dir  Direction
		want time.Time
	}{
		{"day forward", date(2024, time.March, 15), ViewDay, Forward, date(2024, time.March, 16)},
		{"day backward across month boundary", date(2024, time.March, 1), ViewDay, Backward, date(2024, time.February, 29)},
		{"week forward", date(2024, time.March, 15), ViewWeek, Forward, date(2024, time.March, 22)},
		{"week backward", date(2024, time.March, 15), ViewWeek, Backward, date(2024, time.March, 8)},
		{"month forward", date(2024, time.March, 15), ViewMonth, Forward, date(2024, time.April, 15)},
		{"month forward clamps jan 31 to leap feb 29", date(2024, time.January, 31), ViewMonth, Forward, date(2024, time.February, 29)},
		{"month forward clamps jan 31 to feb 28", date(2023, time.January, 31), ViewMonth, Forward, date(2023, time.February, 28)},
		{"month backward clamps mar 31 to feb 29", date(2024, time.March, 31), ViewMonth, Backward, date(2024, time.February, 29)},
		{"month forward across year boundary", date(2024, time.December, 15), ViewMonth, Forward, date(2025, time.January, 15)},
		{"agenda navigates like month", date(2024, time.January, 31), ViewAgenda, Forward, date(2024, time.February, 29)},
		{"year forward clamps leap day", date(2024, time.February, 29), ViewYear, Forward, date(2025, time.February, 28)},
		{"year backward", date(2024, time.June, 10), ViewYear, Backward, date(2023, time.June, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Navigate(tt.date, tt.view, tt.dir))
		})
	}
}

func TestNavigatePreservesTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.January, 31, 9, 45, 30, 0, time.UTC)

	got := Navigate(start, ViewMonth, Forward)

	assert.Equal(t, date(2024, time.February, 29).Day(), got.Day())
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 45, got.Minute())
	assert.Equal(t, 30, got.Second())
}

func TestCountEventsInRange(t *testing.T) {
	events := []Event{
		{Start: time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC), End: time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)},
		{Start: time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC), End: time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC)},
		{Start: time.Date(2024, time.April, 2, 9, 0, 0, 0, time.UTC), End: time.Date(2024, time.April, 2, 10, 0, 0, 0, time.UTC)},
		// spans the month boundary, counts for both months
		{Start: time.Date(2024, time.March, 31, 22, 0, 0, 0, time.UTC), End: time.Date(2024, time.April, 1, 2, 0, 0, 0, time.UTC)},
	}

	assert.Equal(t, 3, CountEventsInRange(events, date(2024, time.March, 15), ViewMonth, time.Monday))
	assert.Equal(t, 2, CountEventsInRange(events, date(2024, time.April, 15), ViewMonth, time.Monday))
	assert.Equal(t, 1, CountEventsInRange(events, date(2024, time.March, 10), ViewDay, time.Monday))
	assert.Equal(t, 4, CountEventsInRange(events, date(2024, time.June, 1), ViewYear, time.Monday))
}

func TestIntersectsIsHalfOpen(t *testing.T) {
	event := Event{
		Start: time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC),
	}

	// An event ending exactly at the window start does not intersect it.
	assert.False(t, event.Intersects(time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC), time.Date(2024, time.March, 10, 11, 0, 0, 0, time.UTC)))
	// An event starting exactly at the window end does not intersect it.
	assert.False(t, event.Intersects(time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC), time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)))
	assert.True(t, event.Intersects(time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC), time.Date(2024, time.March, 10, 9, 45, 0, 0, time.UTC)))
}

func TestDurationMinutes(t *testing.T) {
	event := Event{
		Start: time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 10, 10, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, 90, event.DurationMinutes())
}
