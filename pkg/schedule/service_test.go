package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labhive/labhive/internal/event_bus"
	"github.com/labhive/labhive/pkg/member"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceContext(labId, memberId int) context.Context {
	return member.WithMember(context.Background(), member.Member{
		ID:          memberId,
		UID:         "alice",
		DisplayName: "Alice",
		LabID:       labId,
	})
}

func serviceDraft(title string) EventDraft {
	return EventDraft{
		Title:  title,
		Start:  time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC),
		End:    time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC),
		TypeID: 1,
	}
}

func TestServiceAddEvent(t *testing.T) {
	repo := NewRepositoryStub()
	service := NewService(repo, nil)
	ctx := serviceContext(1, 42)

	event, err := service.AddEvent(ctx, serviceDraft("Calibration"))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.UID)
	assert.Equal(t, 1, event.LabID)
	assert.Equal(t, 42, event.CreatedBy)

	events, err := repo.GetEvents(ctx, 1, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestServiceAddEventRejectsInvalidDraftBeforeStore(t *testing.T) {
	repo := NewRepositoryStub()
	repo.SetFailWith(errors.New("store must not be reached"))
	service := NewService(repo, nil)

	tests := []struct {
		name  string
		draft EventDraft
	}{
		{"missing title", EventDraft{Start: time.Now(), End: time.Now().Add(time.Hour), TypeID: 1}},
		{"end before start", EventDraft{Title: "x", Start: time.Now(), End: time.Now().Add(-time.Hour), TypeID: 1}},
		{"end equals start", func() EventDraft {
			at := time.Now()
			return EventDraft{Title: "x", Start: at, End: at, TypeID: 1}
		}()},
		{"missing type", EventDraft{Title: "x", Start: time.Now(), End: time.Now().Add(time.Hour)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AddEvent(serviceContext(1, 42), tt.draft)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestServiceAddEventRequiresMember(t *testing.T) {
	service := NewService(NewRepositoryStub(), nil)

	_, err := service.AddEvent(context.Background(), serviceDraft("Calibration"))

	assert.ErrorIs(t, err, member.ErrNoMember)
}

func TestServiceAddEventPublishesCreated(t *testing.T) {
	repo := NewRepositoryStub()
	bus := event_bus.NewEventBus()
	service := NewService(repo, bus)

	var published []event_bus.ScheduleEventChange
	event_bus.SubscribeTyped[event_bus.ScheduleEventChange](bus, event_bus.ScheduleEventCreated,
		func(e event_bus.EventT[event_bus.ScheduleEventChange]) error {
			published = append(published, e.Data)
			return nil
		})

	event, err := service.AddEvent(serviceContext(1, 42), serviceDraft("Calibration"))

	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, event.UID.String(), published[0].EventUID)
	assert.Equal(t, "Calibration", published[0].Title)
}

func TestServiceAddRecurringEvents(t *testing.T) {
	repo := NewRepositoryStub()
	bus := event_bus.NewEventBus()
	service := NewService(repo, bus)
	ctx := serviceContext(1, 42)

	var batches []event_bus.ScheduleBatchCreated
	event_bus.SubscribeTyped[event_bus.ScheduleBatchCreated](bus, event_bus.ScheduleEventBatchCreated,
		func(e event_bus.EventT[event_bus.ScheduleBatchCreated]) error {
			batches = append(batches, e.Data)
			return nil
		})

	template := EventDraft{
		Title:  "Sync",
		Start:  time.Date(2024, time.January, 31, 10, 0, 0, 0, time.UTC),
		End:    time.Date(2024, time.January, 31, 11, 0, 0, 0, time.UTC),
		TypeID: 1,
	}

	events, err := service.AddRecurringEvents(ctx, template, CadenceMonthly, 3)

	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, time.Date(2024, time.February, 29, 10, 0, 0, 0, time.UTC), events[1].Start)

	require.Len(t, batches, 1)
	assert.Equal(t, "monthly", batches[0].Cadence)
	assert.Equal(t, 3, batches[0].Occurrences)

	stored, err := repo.GetEvents(ctx, 1, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestServiceAddRecurringEventsStoreFailureStoresNothing(t *testing.T) {
	repo := NewRepositoryStub()
	storeErr := errors.New("disk full")
	repo.SetFailWith(storeErr)
	service := NewService(repo, nil)
	ctx := serviceContext(1, 42)

	_, err := service.AddRecurringEvents(ctx, serviceDraft("Sync"), CadenceDaily, 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)

	repo.SetFailWith(nil)
	stored, err := repo.GetEvents(ctx, 1, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestServiceAddRecurringEventsRejectsBadCadence(t *testing.T) {
	service := NewService(NewRepositoryStub(), nil)

	_, err := service.AddRecurringEvents(serviceContext(1, 42), serviceDraft("Sync"), Cadence("yearly"), 3)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestServiceAddEventBatchRejectsEmptyBatch(t *testing.T) {
	service := NewService(NewRepositoryStub(), nil)

	_, err := service.AddEventBatch(serviceContext(1, 42), nil)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestServiceModifyEvent(t *testing.T) {
	repo := NewRepositoryStub()
	service := NewService(repo, nil)
	ctx := serviceContext(1, 42)

	event, err := service.AddEvent(ctx, serviceDraft("before"))
	require.NoError(t, err)

	event.Title = "after"
	updated, err := service.ModifyEvent(ctx, event)

	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, event.UID, updated.UID)
}

func TestServiceModifyMissingEvent(t *testing.T) {
	service := NewService(NewRepositoryStub(), nil)

	missing := Event{
		UID:    uuid.New(),
		Title:  "ghost",
		Start:  time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC),
		End:    time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC),
		TypeID: 1,
	}

	_, err := service.ModifyEvent(serviceContext(1, 42), missing)

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestServiceDeleteEventIsIdempotent(t *testing.T) {
	repo := NewRepositoryStub()
	bus := event_bus.NewEventBus()
	service := NewService(repo, bus)
	ctx := serviceContext(1, 42)

	var deletions int
	event_bus.SubscribeTyped[event_bus.ScheduleEventChange](bus, event_bus.ScheduleEventDeleted,
		func(e event_bus.EventT[event_bus.ScheduleEventChange]) error {
			deletions++
			return nil
		})

	event, err := service.AddEvent(ctx, serviceDraft("to delete"))
	require.NoError(t, err)

	require.NoError(t, service.DeleteEvent(ctx, event.UID))
	assert.Equal(t, 1, deletions)

	// Second delete of the same id succeeds without a notification.
	require.NoError(t, service.DeleteEvent(ctx, event.UID))
	assert.Equal(t, 1, deletions)

	// Deleting an id that never existed is also a success.
	require.NoError(t, service.DeleteEvent(ctx, uuid.New()))
}

func TestServiceDeleteEventPropagatesStoreFailure(t *testing.T) {
	repo := NewRepositoryStub()
	storeErr := errors.New("connection reset")
	repo.SetFailWith(storeErr)
	service := NewService(repo, nil)

	err := service.DeleteEvent(serviceContext(1, 42), uuid.New())

	assert.ErrorIs(t, err, storeErr)
}

func TestServiceGetEventsScopedToCurrentLab(t *testing.T) {
	repo := NewRepositoryStub()
	service := NewService(repo, nil)

	_, err := service.AddEvent(serviceContext(1, 42), serviceDraft("lab one"))
	require.NoError(t, err)
	_, err = service.AddEvent(serviceContext(2, 43), serviceDraft("lab two"))
	require.NoError(t, err)

	events, err := service.GetEvents(serviceContext(1, 42),
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "lab one", events[0].Title)
}
