package model

import "github.com/google/uuid"

// AssignedEvent places one event in a room at concrete times. A nil Room
// marks the event as unassigned; its times then echo the event's own window.
type AssignedEvent struct {
	Event *Event `json:"event"`
	Room  *Room  `json:"room,omitempty"` // nil - unassigned
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Assigned reports whether the event was placed in a room.
func (ae *AssignedEvent) Assigned() bool {
	return ae.Room != nil
}

// Assignment is the output of a single allocation run. A fresh Assignment is
// produced per run; the inputs it was computed from are never mutated.
type Assignment struct {
	RunID       string           `json:"run_id"`
	Strategy    string           `json:"strategy"`
	Items       []*AssignedEvent `json:"items"` // same order as the input events
	RoomsOpened int              `json:"rooms_opened"`
}

// NewAssignment builds an empty assignment for n events with a fresh run ID.
func NewAssignment(strategy string, n int) *Assignment {
	return &Assignment{
		RunID:    uuid.NewString(),
		Strategy: strategy,
		Items:    make([]*AssignedEvent, 0, n),
	}
}

// AssignedCount returns the number of events that were placed in a room.
func (a *Assignment) AssignedCount() int {
	count := 0
	for _, it := range a.Items {
		if it.Assigned() {
			count++
		}
	}
	return count
}

// Unassigned returns the events that could not be placed, in input order.
func (a *Assignment) Unassigned() []*Event {
	var out []*Event
	for _, it := range a.Items {
		if !it.Assigned() {
			out = append(out, it.Event)
		}
	}
	return out
}

// Rooms returns the distinct rooms used by the assignment, in first-use order.
func (a *Assignment) Rooms() []*Room {
	var out []*Room
	seen := make(map[*Room]bool)
	for _, it := range a.Items {
		if it.Room != nil && !seen[it.Room] {
			seen[it.Room] = true
			out = append(out, it.Room)
		}
	}
	return out
}
