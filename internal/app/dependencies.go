package app

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/labhive/labhive/internal/config"
	"github.com/labhive/labhive/internal/event_bus"
	"github.com/labhive/labhive/internal/utils"
	"github.com/labhive/labhive/pkg/eventstatus"
	"github.com/labhive/labhive/pkg/eventtype"
	"github.com/labhive/labhive/pkg/instrument"
	"github.com/labhive/labhive/pkg/member"
	"github.com/labhive/labhive/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	MemberService member.Service
	MemberHandler *member.Handler

	EventTypeRepo    eventtype.Repository
	EventTypeHandler *eventtype.Handler

	InstrumentRepo    instrument.Repository
	InstrumentHandler *instrument.Handler

	EventStatusRepo    eventstatus.Repository
	EventStatusHandler *eventstatus.Handler

	ScheduleRepo    schedule.Repository
	ScheduleService *schedule.Service
	ScheduleHandler *schedule.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	subscribeAuditLog(deps.Bus)

	deps.MemberService = member.NewService(member.NewRepository(db))
	deps.MemberHandler = member.NewHandler(deps.MemberService)

	deps.EventTypeRepo = eventtype.NewRepository(db)
	deps.EventTypeHandler = eventtype.NewHandler(deps.EventTypeRepo)

	deps.InstrumentRepo = instrument.NewRepository(db)
	deps.InstrumentHandler = instrument.NewHandler(deps.InstrumentRepo)

	deps.EventStatusRepo = eventstatus.NewRepository(db)
	deps.EventStatusHandler = eventstatus.NewHandler(deps.EventStatusRepo)

	deps.ScheduleRepo = schedule.NewRepository(db)
	deps.ScheduleService = schedule.NewService(deps.ScheduleRepo, deps.Bus)
	typeProvider := func(ctx context.Context, labId int) ([]eventtype.EventType, error) {
		return deps.EventTypeRepo.List(ctx, labId)
	}
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService, typeProvider, weekStart(cfg.Calendar))

	deps.Clock = &utils.SystemClock{}

	return deps
}

func weekStart(cfg config.Calendar) time.Weekday {
	switch strings.ToLower(cfg.WeekStart) {
	case "sunday":
		return time.Sunday
	case "monday", "":
		return time.Monday
	default:
		log.Warnf("unknown week start %q, falling back to monday", cfg.WeekStart)
		return time.Monday
	}
}

// subscribeAuditLog records calendar mutations in the application log.
func subscribeAuditLog(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped[event_bus.ScheduleEventChange](bus, event_bus.ScheduleEventCreated,
		func(e event_bus.EventT[event_bus.ScheduleEventChange]) error {
			log.Infof("calendar event created: lab=%d uid=%s title=%q", e.Data.LabID, e.Data.EventUID, e.Data.Title)
			return nil
		})
	event_bus.SubscribeTyped[event_bus.ScheduleEventChange](bus, event_bus.ScheduleEventDeleted,
		func(e event_bus.EventT[event_bus.ScheduleEventChange]) error {
			log.Infof("calendar event deleted: lab=%d uid=%s", e.Data.LabID, e.Data.EventUID)
			return nil
		})
	event_bus.SubscribeTyped[event_bus.ScheduleBatchCreated](bus, event_bus.ScheduleEventBatchCreated,
		func(e event_bus.EventT[event_bus.ScheduleBatchCreated]) error {
			log.Infof("recurrence series created: lab=%d title=%q cadence=%s occurrences=%d",
				e.Data.LabID, e.Data.Title, e.Data.Cadence, e.Data.Occurrences)
			return nil
		})
}
