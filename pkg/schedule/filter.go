package schedule

import "time"

type selectionKind int

const (
	selectAll selectionKind = iota
	selectNone
	selectOne
)

// Selection is a tagged filter value for one dimension: every value, no value,
// or one specific id. It replaces stringly-typed "all"/"none" sentinels.
type Selection struct {
	kind selectionKind
	id   int
}

func SelectAll() Selection { return Selection{kind: selectAll} }

func SelectNone() Selection { return Selection{kind: selectNone} }

func SelectOnly(id int) Selection { return Selection{kind: selectOne, id: id} }

// Matches reports whether a referenced id passes the selection. Id 0 means the
// event holds no reference for this dimension.
func (s Selection) Matches(id int) bool {
	switch s.kind {
	case selectNone:
		return id == 0
	case selectOne:
		return id == s.id
	default:
		return true
	}
}

// FilterState is the per-session set of viewing constraints. It is owned by
// the calendar session and never triggers store access by itself.
type FilterState struct {
	Date       time.Time
	View       View
	WeekStart  time.Weekday
	Member     Selection
	Type       Selection
	Instrument Selection
	Status     Selection
}

// NewFilterState returns a state with all dimensions unconstrained.
func NewFilterState(date time.Time, view View, weekStart time.Weekday) FilterState {
	return FilterState{
		Date:       date,
		View:       view,
		WeekStart:  weekStart,
		Member:     SelectAll(),
		Type:       SelectAll(),
		Instrument: SelectAll(),
		Status:     SelectAll(),
	}
}

// Visible returns the events passing every active dimension and intersecting
// the view's display window. It is a pure function and preserves input order,
// so equal inputs always produce equal outputs.
func Visible(events []Event, f FilterState) []Event {
	from, to := RangeForView(f.Date, f.View, f.WeekStart)

	visible := make([]Event, 0, len(events))
	for _, e := range events {
		if !e.Intersects(from, to) {
			continue
		}
		if !f.Type.Matches(e.TypeID) {
			continue
		}
		if !f.Instrument.Matches(e.InstrumentID) {
			continue
		}
		if !f.Status.Matches(e.StatusID) {
			continue
		}
		if !memberMatches(e, f.Member) {
			continue
		}
		visible = append(visible, e)
	}
	return visible
}

// memberMatches applies the member dimension against the assignee set: a
// specific member matches when assigned to the event, None matches only
// unassigned events.
func memberMatches(e Event, s Selection) bool {
	switch s.kind {
	case selectNone:
		return len(e.Assignees) == 0
	case selectOne:
		for _, id := range e.Assignees {
			if id == s.id {
				return true
			}
		}
		return false
	default:
		return true
	}
}
