package instrument

// Instrument is a bookable physical resource. An event reserves at most one
// instrument; mutual exclusivity between overlapping reservations is not
// enforced by the system.
type Instrument struct {
	ID   int
	Name string
}
