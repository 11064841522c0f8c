package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrValidation marks drafts rejected before any store access.
var ErrValidation = errors.New("invalid event")

// Event is one scheduled occurrence on a lab's calendar. StatusID and
// InstrumentID are 0 when the event carries no status or instrument. Color is
// an override; when empty the display color comes from the event type.
type Event struct {
	UID          uuid.UUID
	LabID        int
	Title        string
	Description  string
	Start        time.Time
	End          time.Time
	TypeID       int
	StatusID     int
	InstrumentID int
	Color        string
	CreatedBy    int
	UpdatedAt    time.Time
	Assignees    []int
}

// EventDraft is an event before the store has assigned identity and timestamps.
type EventDraft struct {
	Title        string
	Description  string
	Start        time.Time
	End          time.Time
	TypeID       int
	StatusID     int
	InstrumentID int
	Color        string
	Assignees    []int
}

// Validate checks the draft invariants shared by single and recurring creates.
func (d EventDraft) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if d.Start.IsZero() || d.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrValidation)
	}
	if !d.End.After(d.Start) {
		return fmt.Errorf("%w: end must be after start", ErrValidation)
	}
	if d.TypeID <= 0 {
		return fmt.Errorf("%w: event type is required", ErrValidation)
	}
	return nil
}

// DurationMinutes returns the event length in whole minutes. Layout code uses
// it to pick compact vs. full rendering.
func (e Event) DurationMinutes() int {
	return int(e.End.Sub(e.Start) / time.Minute)
}

// Intersects reports whether the event overlaps the half-open window [from, to).
func (e Event) Intersects(from, to time.Time) bool {
	return e.Start.Before(to) && e.End.After(from)
}
