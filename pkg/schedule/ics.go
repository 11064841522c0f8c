package schedule

import (
	ics "github.com/arran4/golang-ical"
)

// RenderICS serializes events as an iCalendar document so lab calendars can be
// subscribed to from external clients.
func RenderICS(events []Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//labhive//calendar//EN")

	for _, e := range events {
		vevent := cal.AddEvent(e.UID.String())
		vevent.SetSummary(e.Title)
		if e.Description != "" {
			vevent.SetDescription(e.Description)
		}
		vevent.SetStartAt(e.Start)
		vevent.SetEndAt(e.End)
		vevent.SetDtStampTime(e.UpdatedAt)
	}

	return cal.Serialize()
}
