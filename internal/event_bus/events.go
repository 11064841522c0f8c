package event_bus

import "time"

const (
	ScheduleEventCreated      EventType = "schedule.event.created"
	ScheduleEventBatchCreated EventType = "schedule.event.batch_created"
	ScheduleEventDeleted      EventType = "schedule.event.deleted"
)

// ScheduleEventChange describes a single persisted calendar event mutation.
type ScheduleEventChange struct {
	EventUID string
	LabID    int
	Title    string
	Start    time.Time
	End      time.Time
}

// ScheduleBatchCreated describes a recurrence batch that was persisted atomically.
type ScheduleBatchCreated struct {
	LabID       int
	Title       string
	Cadence     string
	Occurrences int
}
