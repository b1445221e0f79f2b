package model

import "fmt"

// Event is a time-bounded activity that needs a room. Events are constructed
// once from input records and never mutated afterwards.
type Event struct {
	Name           string `json:"name"`
	Start          int    `json:"start"`
	End            int    `json:"end"`
	Participants   int    `json:"participants"`
	PreferredStart *int   `json:"preferred_start,omitempty"` // nil - no preference
}

// NewEvent validates and builds an event with a fixed [start, end) window.
// preferredStart may be nil.
func NewEvent(name string, start, end, participants int, preferredStart *int) (*Event, error) {
	if name == "" {
		return nil, fmt.Errorf("event name is required")
	}
	if end <= start {
		return nil, fmt.Errorf("event %q: end (%d) must be greater than start (%d)", name, end, start)
	}
	if participants < 0 {
		return nil, fmt.Errorf("event %q: participants (%d) must not be negative", name, participants)
	}
	ev := &Event{Name: name, Start: start, End: end, Participants: participants}
	if preferredStart != nil {
		pref := *preferredStart
		ev.PreferredStart = &pref
	}
	return ev, nil
}

// NewPreferredEvent builds an event from the duration/preferred-start record
// shape. The window is pinned to the preferred start; the optimal allocator
// may move it when shifting is enabled.
func NewPreferredEvent(name string, duration, preferredStart, participants int) (*Event, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("event %q: duration (%d) must be positive", name, duration)
	}
	return NewEvent(name, preferredStart, preferredStart+duration, participants, &preferredStart)
}

// Duration returns the length of the event's window.
func (e *Event) Duration() int {
	return e.End - e.Start
}

// Window returns the event's fixed time window.
func (e *Event) Window() Interval {
	return Interval{Start: e.Start, End: e.End}
}

// OverlapsWith reports whether the two events' fixed windows intersect.
func (e *Event) OverlapsWith(other *Event) bool {
	return Overlaps(e.Start, e.End, other.Start, other.End)
}
