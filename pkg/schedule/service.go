package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labhive/labhive/internal/event_bus"
	"github.com/labhive/labhive/pkg/member"
	log "github.com/sirupsen/logrus"
)

// Service owns all calendar event mutations for the current member's lab.
// Drafts are validated before any store access; a failed store never leaves
// partial state behind (batches are transactional in the repository).
type Service struct {
	repo Repository
	bus  *event_bus.EventBus
}

func NewService(repo Repository, bus *event_bus.EventBus) *Service {
	return &Service{repo: repo, bus: bus}
}

func (s *Service) AddEvent(ctx context.Context, draft EventDraft) (Event, error) {
	if err := draft.Validate(); err != nil {
		return Event{}, err
	}

	m, err := member.Current(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current member: %w", err)
	}

	event, err := s.repo.StoreEvent(ctx, m.LabID, m.ID, draft)
	if err != nil {
		return Event{}, fmt.Errorf("failed to store event: %w", err)
	}

	s.publishChange(ctx, event_bus.ScheduleEventCreated, event)
	return event, nil
}

// AddEventBatch persists pre-expanded drafts as one atomic unit. Either every
// draft is stored or none is.
func (s *Service) AddEventBatch(ctx context.Context, drafts []EventDraft) ([]Event, error) {
	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrValidation)
	}
	for _, draft := range drafts {
		if err := draft.Validate(); err != nil {
			return nil, err
		}
	}

	m, err := member.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current member: %w", err)
	}

	events, err := s.repo.StoreEvents(ctx, m.LabID, m.ID, drafts)
	if err != nil {
		return nil, fmt.Errorf("failed to store event batch: %w", err)
	}
	return events, nil
}

// AddRecurringEvents expands the template by the cadence and persists all
// occurrences atomically. Each occurrence is an independent event afterwards;
// no series linkage is retained.
func (s *Service) AddRecurringEvents(ctx context.Context, template EventDraft, cadence Cadence, repetitions int) ([]Event, error) {
	drafts, err := Expand(template, cadence, repetitions)
	if err != nil {
		return nil, err
	}

	events, err := s.AddEventBatch(ctx, drafts)
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ScheduleEventBatchCreated, event_bus.ScheduleBatchCreated{
			LabID:       events[0].LabID,
			Title:       template.Title,
			Cadence:     string(cadence),
			Occurrences: len(events),
		}))
		if err != nil {
			log.Warnf("failed to publish batch created event: %v", err)
		}
	}
	return events, nil
}

func (s *Service) GetEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	labId, err := member.CurrentLabID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current member: %w", err)
	}
	return s.repo.GetEvents(ctx, labId, from, to)
}

func (s *Service) ModifyEvent(ctx context.Context, event Event) (Event, error) {
	draft := EventDraft{
		Title:  event.Title,
		Start:  event.Start,
		End:    event.End,
		TypeID: event.TypeID,
	}
	if err := draft.Validate(); err != nil {
		return Event{}, err
	}

	labId, err := member.CurrentLabID(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current member: %w", err)
	}
	event.LabID = labId

	updated, err := s.repo.UpdateEvent(ctx, event)
	if err != nil {
		return Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	return updated, nil
}

// DeleteEvent is idempotent: deleting an id the lab no longer holds is a
// success, not an error.
func (s *Service) DeleteEvent(ctx context.Context, uid uuid.UUID) error {
	m, err := member.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current member: %w", err)
	}

	deleted, err := s.repo.DeleteEvent(ctx, m.LabID, uid)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !deleted {
		log.Debugf("event %s already absent, delete treated as success", uid)
		return nil
	}

	s.publishChange(ctx, event_bus.ScheduleEventDeleted, Event{UID: uid, LabID: m.LabID})
	return nil
}

func (s *Service) publishChange(ctx context.Context, eventType event_bus.EventType, event Event) {
	if s.bus == nil {
		return
	}
	err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.ScheduleEventChange{
		EventUID: event.UID.String(),
		LabID:    event.LabID,
		Title:    event.Title,
		Start:    event.Start,
		End:      event.End,
	}))
	if err != nil {
		log.Warnf("failed to publish %s: %v", eventType, err)
	}
}
