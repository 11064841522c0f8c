package schedule

import (
	"fmt"
)

// Cadence is the repetition unit for recurring events.
type Cadence string

const (
	CadenceDaily   Cadence = "daily"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
)

// MaxRepetitions bounds a single recurrence batch.
const MaxRepetitions = 100

func ParseCadence(s string) (Cadence, error) {
	switch Cadence(s) {
	case CadenceDaily, CadenceWeekly, CadenceMonthly:
		return Cadence(s), nil
	default:
		return "", fmt.Errorf("%w: unknown cadence %q", ErrValidation, s)
	}
}

// Expand produces the drafts for a recurrence series: occurrence k starts one
// cadence period after occurrence k-1 and keeps the template's wall-clock
// time-of-day and duration. Monthly steps clamp the day-of-month to the last
// valid day of the target month (Jan 31 -> Feb 28/29), they never skip a month.
// Expand is pure; persisting the result is the caller's responsibility.
func Expand(template EventDraft, cadence Cadence, repetitions int) ([]EventDraft, error) {
	if err := template.Validate(); err != nil {
		return nil, err
	}
	if repetitions < 1 || repetitions > MaxRepetitions {
		return nil, fmt.Errorf("%w: repetitions must be between 1 and %d", ErrValidation, MaxRepetitions)
	}
	if _, err := ParseCadence(string(cadence)); err != nil {
		return nil, err
	}

	duration := template.End.Sub(template.Start)
	drafts := make([]EventDraft, 0, repetitions)
	for k := 0; k < repetitions; k++ {
		start := template.Start
		switch cadence {
		case CadenceDaily:
			start = start.AddDate(0, 0, k)
		case CadenceWeekly:
			start = start.AddDate(0, 0, 7*k)
		case CadenceMonthly:
			start = addMonthsClamped(start, k)
		}

		draft := template
		draft.Start = start
		draft.End = start.Add(duration)
		draft.Assignees = append([]int(nil), template.Assignees...)
		drafts = append(drafts, draft)
	}
	return drafts, nil
}
