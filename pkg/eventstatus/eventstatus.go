package eventstatus

// EventStatus is a named status with a display color and an optional
// description, referenced by calendar events.
type EventStatus struct {
	ID          int
	Name        string
	Color       string
	Description string
}
