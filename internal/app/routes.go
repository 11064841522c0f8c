package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Members
	r.HandleFunc("/api/member/current", deps.MemberHandler.CurrentMember).Methods("GET")
	r.HandleFunc("/api/member", deps.MemberHandler.ListLabMembers).Methods("GET")

	// Reference catalogs (loaded once per session, static afterwards)
	r.HandleFunc("/api/event-type", deps.EventTypeHandler.List).Methods("GET")
	r.HandleFunc("/api/event-type", deps.EventTypeHandler.Create).Methods("POST")
	r.HandleFunc("/api/instrument", deps.InstrumentHandler.List).Methods("GET")
	r.HandleFunc("/api/instrument", deps.InstrumentHandler.Create).Methods("POST")
	r.HandleFunc("/api/event-status", deps.EventStatusHandler.List).Methods("GET")
	r.HandleFunc("/api/event-status", deps.EventStatusHandler.Create).Methods("POST")

	// Calendar
	r.HandleFunc("/api/calendar/event", deps.ScheduleHandler.GetEvents).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/calendar/event/view", deps.ScheduleHandler.GetEventsForView).Queries("date", "{date}", "view", "{view}").Methods("GET")
	r.HandleFunc("/api/calendar/event", deps.ScheduleHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/event/recurring", deps.ScheduleHandler.CreateRecurringEvents).Methods("POST")
	r.HandleFunc("/api/calendar/event/{eventUid}", deps.ScheduleHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/calendar/event/{eventUid}", deps.ScheduleHandler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/calendar/export.ics", deps.ScheduleHandler.ExportICS).Queries("from", "{from}", "to", "{to}").Methods("GET")
}
