package order

import "time"

// Status is the lifecycle state of an order. The names are the German
// customer-facing labels and double as the persisted representation.
type Status string

const (
	StatusPaid      Status = "Bezahlt"
	StatusConfirmed Status = "Bestätigt"
	StatusAssembly  Status = "Wird zusammengestellt"
	StatusShipped   Status = "Versandt"
	StatusDelivered Status = "Geliefert"
	StatusCancelled Status = "Storniert"
)

// statusFlow maps each state to its automatic successor. Terminal states
// have no entry. The automatic chain ends at Versandt; Geliefert and
// Storniert are only reachable through externally triggered actions.
var statusFlow = map[Status]Status{
	StatusPaid:      StatusConfirmed,
	StatusConfirmed: StatusAssembly,
	StatusAssembly:  StatusShipped,
}

// defaultDwell is the minimum time an order must spend in a state before it
// is eligible for automatic advancement.
var defaultDwell = map[Status]time.Duration{
	StatusPaid:      20 * time.Minute,
	StatusConfirmed: 30 * time.Minute,
	StatusAssembly:  28 * time.Hour,
}

func (s Status) String() string {
	return string(s)
}

// Known reports whether s is one of the defined lifecycle states.
func (s Status) Known() bool {
	switch s {
	case StatusPaid, StatusConfirmed, StatusAssembly, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Next returns the automatic successor of s. ok is false for terminal and
// unknown states.
func (s Status) Next() (next Status, ok bool) {
	next, ok = statusFlow[s]
	return next, ok
}

// Terminal reports whether s has no automatic successor.
func (s Status) Terminal() bool {
	_, ok := statusFlow[s]
	return !ok
}

// Dwell returns the default dwell time for s. Terminal states dwell forever
// and return zero.
func (s Status) Dwell() time.Duration {
	return defaultDwell[s]
}

// DefaultDwell returns a copy of the default dwell table, suitable as a base
// for configuration overrides.
func DefaultDwell() map[Status]time.Duration {
	dwell := make(map[Status]time.Duration, len(defaultDwell))
	for s, d := range defaultDwell {
		dwell[s] = d
	}

	return dwell
}
