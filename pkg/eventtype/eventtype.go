package eventtype

// EventType is a named event category with a display color. Events reference
// types; a type's lifetime is independent of any event.
type EventType struct {
	ID    int
	Name  string
	Color string
}
