package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionState is the lifecycle state of a calendar session.
type SessionState string

const (
	SessionIdle     SessionState = "idle"
	SessionLoading  SessionState = "loading"
	SessionMutating SessionState = "mutating"
	SessionError    SessionState = "error"
)

// ErrSessionBusy is returned when a mutation is requested while another
// operation is still in flight. Callers repeat the action; nothing is queued.
var ErrSessionBusy = errors.New("another calendar operation is in flight")

// EventStore is the session's boundary to the store of record. One attempt per
// call; no caching, no retries.
type EventStore interface {
	FetchRange(ctx context.Context, from, to time.Time) ([]Event, error)
	Create(ctx context.Context, draft EventDraft) (Event, error)
	CreateBatch(ctx context.Context, drafts []EventDraft) ([]Event, error)
	Delete(ctx context.Context, uid uuid.UUID) error
}

// Session holds the in-memory mirror of the lab's events for the loaded range
// and is the single point of mutation for one calendar view. Mutations are
// applied to the working set only after the store confirms them, so a failed
// operation never diverges local from remote state. Overlapping operations are
// rejected with ErrSessionBusy; superseded range loads are discarded by
// sequence number.
type Session struct {
	store EventStore

	mu      sync.Mutex
	state   SessionState
	lastErr string
	working []Event
	filter  FilterState
	loadSeq uint64
}

func NewSession(store EventStore, filter FilterState) *Session {
	return &Session{
		store:  store,
		state:  SessionIdle,
		filter: filter,
	}
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the message recorded by the last failed operation, empty after
// any success.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) Filter() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// WorkingSet returns a copy of the mirrored events, unfiltered.
func (s *Session) WorkingSet() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.working...)
}

// Visible returns the filtered view of the working set. Purely local; never
// touches the store.
func (s *Session) Visible() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Visible(s.working, s.filter)
}

// LoadRange fetches the events for the view containing date and replaces the
// working set. A load issued while an earlier one is still in flight
// supersedes it: whichever response belongs to the latest issued load wins,
// regardless of arrival order.
func (s *Session) LoadRange(ctx context.Context, date time.Time, view View) error {
	s.mu.Lock()
	if s.state == SessionMutating {
		s.mu.Unlock()
		return ErrSessionBusy
	}
	s.loadSeq++
	seq := s.loadSeq
	s.state = SessionLoading
	s.filter.Date = date
	s.filter.View = view
	from, to := RangeForView(date, view, s.filter.WeekStart)
	s.mu.Unlock()

	events, err := s.store.FetchRange(ctx, from, to)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		// A newer load was issued meanwhile; this response is stale.
		return nil
	}
	if err != nil {
		s.state = SessionError
		s.lastErr = err.Error()
		return err
	}
	s.working = events
	s.state = SessionIdle
	s.lastErr = ""
	return nil
}

// AddEvent validates the draft, persists it, and appends the confirmed event
// to the working set.
func (s *Session) AddEvent(ctx context.Context, draft EventDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	if err := s.beginMutation(); err != nil {
		return err
	}

	event, err := s.store.Create(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = SessionError
		s.lastErr = err.Error()
		return err
	}
	s.working = append(s.working, event)
	s.state = SessionIdle
	s.lastErr = ""
	return nil
}

// AddRecurringEvents expands the template locally and persists the whole
// series in one batch. The working set gains either every occurrence or none:
// a short result from the store counts as a failed attempt.
func (s *Session) AddRecurringEvents(ctx context.Context, template EventDraft, cadence Cadence, repetitions int) error {
	drafts, err := Expand(template, cadence, repetitions)
	if err != nil {
		return err
	}
	if err := s.beginMutation(); err != nil {
		return err
	}

	events, err := s.store.CreateBatch(ctx, drafts)
	if err == nil && len(events) != len(drafts) {
		err = fmt.Errorf("recurrence batch incomplete: requested %d occurrences, store confirmed %d", len(drafts), len(events))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = SessionError
		s.lastErr = err.Error()
		return err
	}
	s.working = append(s.working, events...)
	s.state = SessionIdle
	s.lastErr = ""
	return nil
}

// RemoveEvent deletes by identifier. Removing an id that is not present is a
// no-op success, both locally and at the store.
func (s *Session) RemoveEvent(ctx context.Context, uid uuid.UUID) error {
	if err := s.beginMutation(); err != nil {
		return err
	}

	err := s.store.Delete(ctx, uid)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = SessionError
		s.lastErr = err.Error()
		return err
	}
	for i, e := range s.working {
		if e.UID == uid {
			s.working = append(s.working[:i], s.working[i+1:]...)
			break
		}
	}
	s.state = SessionIdle
	s.lastErr = ""
	return nil
}

// Filter setters are synchronous and purely local: they never trigger a store
// fetch. Only date-range changes (LoadRange) do.

func (s *Session) SetMemberFilter(sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Member = sel
}

func (s *Session) SetTypeFilter(sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Type = sel
}

func (s *Session) SetInstrumentFilter(sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Instrument = sel
}

func (s *Session) SetStatusFilter(sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Status = sel
}

func (s *Session) beginMutation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SessionLoading || s.state == SessionMutating {
		return ErrSessionBusy
	}
	s.state = SessionMutating
	return nil
}

// ServiceStore adapts the schedule service to the EventStore boundary so a
// session can run in-process against the store of record.
type ServiceStore struct {
	service *Service
}

func NewServiceStore(service *Service) *ServiceStore {
	return &ServiceStore{service: service}
}

func (s *ServiceStore) FetchRange(ctx context.Context, from, to time.Time) ([]Event, error) {
	return s.service.GetEvents(ctx, from, to)
}

func (s *ServiceStore) Create(ctx context.Context, draft EventDraft) (Event, error) {
	return s.service.AddEvent(ctx, draft)
}

func (s *ServiceStore) CreateBatch(ctx context.Context, drafts []EventDraft) ([]Event, error) {
	return s.service.AddEventBatch(ctx, drafts)
}

func (s *ServiceStore) Delete(ctx context.Context, uid uuid.UUID) error {
	return s.service.DeleteEvent(ctx, uid)
}
