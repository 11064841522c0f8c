package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/labhive/labhive/internal/rest"
	"github.com/labhive/labhive/pkg/eventtype"
	"github.com/labhive/labhive/pkg/member"
	log "github.com/sirupsen/logrus"
)

// TypeProvider supplies the lab's event types so display colors can be
// resolved without coupling the handler to the catalog repository.
type TypeProvider func(ctx context.Context, labId int) ([]eventtype.EventType, error)

type Handler struct {
	service   *Service
	types     TypeProvider
	weekStart time.Weekday
}

type EventDTO struct {
	UID          string    `json:"uid"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	TypeID       int       `json:"typeId"`
	StatusID     int       `json:"statusId,omitempty"`
	InstrumentID int       `json:"instrumentId,omitempty"`
	Color        string    `json:"color,omitempty"`
	CreatedBy    int       `json:"createdBy,omitempty"`
	Assignees    []int     `json:"assignees"`
}

type RecurringEventDTO struct {
	EventDTO
	Cadence     string `json:"cadence"`
	Repetitions int    `json:"repetitions"`
}

func NewHandler(service *Service, types TypeProvider, weekStart time.Weekday) *Handler {
	return &Handler{service: service, types: types, weekStart: weekStart}
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	from, ok := parseTimeParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := parseTimeParam(w, r, "to")
	if !ok {
		return
	}

	events, err := h.service.GetEvents(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.writeEvents(w, r, http.StatusOK, events)
}

// GetEventsForView resolves the display window for a view containing a date
// and returns the events intersecting it.
func (h *Handler) GetEventsForView(w http.ResponseWriter, r *http.Request) {
	date, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("date"), time.Local)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
		return
	}
	view, err := ParseView(r.URL.Query().Get("view"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid view", "'view' must be one of day, week, month, year, agenda")
		return
	}

	from, to := RangeForView(date, view, h.weekStart)
	events, err := h.service.GetEvents(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.writeEvents(w, r, http.StatusOK, events)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	event, err := h.service.AddEvent(r.Context(), dtoToDraft(dto))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.writeEvent(w, r, http.StatusCreated, event)
}

// CreateRecurringEvents persists a whole recurrence series. The response
// carries every created occurrence, or an error and no occurrences at all.
func (h *Handler) CreateRecurringEvents(w http.ResponseWriter, r *http.Request) {
	var dto RecurringEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cadence, err := ParseCadence(dto.Cadence)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cadence", "'cadence' must be one of daily, weekly, monthly")
		return
	}

	events, err := h.service.AddRecurringEvents(r.Context(), dtoToDraft(dto.EventDTO), cadence, dto.Repetitions)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.writeEvents(w, r, http.StatusCreated, events)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(mux.Vars(r)["eventUid"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event uid", "")
		return
	}

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	event := dtoToEvent(dto)
	event.UID = uid
	updated, err := h.service.ModifyEvent(r.Context(), event)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.writeEvent(w, r, http.StatusOK, updated)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(mux.Vars(r)["eventUid"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event uid", "")
		return
	}

	if err := h.service.DeleteEvent(r.Context(), uid); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportICS serializes the requested range as an iCalendar document.
func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	from, ok := parseTimeParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := parseTimeParam(w, r, "to")
	if !ok {
		return
	}

	events, err := h.service.GetEvents(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(RenderICS(events))); err != nil {
		log.Errorf("failed to write ICS response: %v", err)
	}
}

func (h *Handler) writeEvents(w http.ResponseWriter, r *http.Request, status int, events []Event) {
	colors := h.typeColors(r.Context())

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e, colors))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) writeEvent(w http.ResponseWriter, r *http.Request, status int, event Event) {
	colors := h.typeColors(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(eventToDTO(event, colors)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// typeColors resolves event type colors for the current lab. Color fallback is
// cosmetic; lookup failures degrade to the stored override only.
func (h *Handler) typeColors(ctx context.Context) map[int]string {
	colors := map[int]string{}
	if h.types == nil {
		return colors
	}
	labId, err := member.CurrentLabID(ctx)
	if err != nil {
		return colors
	}
	types, err := h.types(ctx, labId)
	if err != nil {
		log.Warnf("failed to resolve event type colors: %v", err)
		return colors
	}
	for _, t := range types {
		colors[t.ID] = t.Color
	}
	return colors
}

func parseTimeParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	value := r.URL.Query().Get(name)
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name+" (date) format", "'"+name+"' must be in RFC3339 format")
		return time.Time{}, false
	}
	return t, true
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		writeError(w, http.StatusBadRequest, "Invalid event", err.Error())
	case errors.Is(err, member.ErrNoMember):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrEventNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func eventToDTO(e Event, typeColors map[int]string) EventDTO {
	color := e.Color
	if color == "" {
		color = typeColors[e.TypeID]
	}
	assignees := e.Assignees
	if assignees == nil {
		assignees = []int{}
	}
	return EventDTO{
		UID:          e.UID.String(),
		Title:        e.Title,
		Description:  e.Description,
		Start:        e.Start,
		End:          e.End,
		TypeID:       e.TypeID,
		StatusID:     e.StatusID,
		InstrumentID: e.InstrumentID,
		Color:        color,
		CreatedBy:    e.CreatedBy,
		Assignees:    assignees,
	}
}

func dtoToDraft(dto EventDTO) EventDraft {
	return EventDraft{
		Title:        dto.Title,
		Description:  dto.Description,
		Start:        dto.Start,
		End:          dto.End,
		TypeID:       dto.TypeID,
		StatusID:     dto.StatusID,
		InstrumentID: dto.InstrumentID,
		Color:        dto.Color,
		Assignees:    dto.Assignees,
	}
}

func dtoToEvent(dto EventDTO) Event {
	return Event{
		Title:        dto.Title,
		Description:  dto.Description,
		Start:        dto.Start,
		End:          dto.End,
		TypeID:       dto.TypeID,
		StatusID:     dto.StatusID,
		InstrumentID: dto.InstrumentID,
		Color:        dto.Color,
		Assignees:    dto.Assignees,
	}
}
