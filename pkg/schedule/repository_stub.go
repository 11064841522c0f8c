package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RepositoryStub is an in-memory Repository for service and session tests.
type RepositoryStub struct {
	mu       sync.RWMutex
	items    map[uuid.UUID]Event
	order    []uuid.UUID // creation order, keeps listings stable
	failWith error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items: make(map[uuid.UUID]Event),
	}
}

// SetFailWith makes every following store operation fail with err. Pass nil to
// restore normal behavior.
func (r *RepositoryStub) SetFailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = err
}

func (r *RepositoryStub) StoreEvent(ctx context.Context, labId, createdBy int, draft EventDraft) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return Event{}, r.failWith
	}
	return r.store(labId, createdBy, draft), nil
}

func (r *RepositoryStub) StoreEvents(ctx context.Context, labId, createdBy int, drafts []EventDraft) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// All-or-nothing, like the transactional implementation.
	if r.failWith != nil {
		return nil, r.failWith
	}

	events := make([]Event, 0, len(drafts))
	for _, draft := range drafts {
		events = append(events, r.store(labId, createdBy, draft))
	}
	return events, nil
}

func (r *RepositoryStub) store(labId, createdBy int, draft EventDraft) Event {
	event := Event{
		UID:          uuid.New(),
		LabID:        labId,
		Title:        draft.Title,
		Description:  draft.Description,
		Start:        draft.Start,
		End:          draft.End,
		TypeID:       draft.TypeID,
		StatusID:     draft.StatusID,
		InstrumentID: draft.InstrumentID,
		Color:        draft.Color,
		CreatedBy:    createdBy,
		UpdatedAt:    time.Now(),
		Assignees:    append([]int(nil), draft.Assignees...),
	}
	r.items[event.UID] = event
	r.order = append(r.order, event.UID)
	return event
}

func (r *RepositoryStub) GetEvents(ctx context.Context, labId int, from, to time.Time) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Event, 0, len(r.items))
	for _, uid := range r.order {
		event, ok := r.items[uid]
		if !ok || event.LabID != labId {
			continue
		}
		if event.Intersects(from, to) {
			result = append(result, event)
		}
	}

	// Sort by start time (simple swap sort for small slices)
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[i].Start.After(result[j].Start) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}

	return result, nil
}

func (r *RepositoryStub) UpdateEvent(ctx context.Context, event Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return Event{}, r.failWith
	}

	existing, ok := r.items[event.UID]
	if !ok || existing.LabID != event.LabID {
		return Event{}, ErrEventNotFound
	}

	event.UpdatedAt = time.Now()
	r.items[event.UID] = event
	return event, nil
}

func (r *RepositoryStub) DeleteEvent(ctx context.Context, labId int, uid uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return false, r.failWith
	}

	event, ok := r.items[uid]
	if !ok || event.LabID != labId {
		return false, nil
	}

	delete(r.items, uid)
	for i, id := range r.order {
		if id == uid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}
