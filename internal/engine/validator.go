package engine

import (
	"fmt"

	"github.com/Freeeeeet/roomplan/internal/model"
)

// ViolationKind classifies a validator finding.
type ViolationKind string

const (
	ViolationOverlap      ViolationKind = "overlap"
	ViolationCapacity     ViolationKind = "capacity"
	ViolationAvailability ViolationKind = "availability"
	ViolationWindow       ViolationKind = "window"
)

// Violation describes one feasibility breach found in an assignment.
type Violation struct {
	Kind   ViolationKind
	Event  string
	Room   string
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: event %q in room %q: %s", v.Kind, v.Event, v.Room, v.Detail)
}

// Validate re-checks a produced assignment independently of the allocator
// that produced it: per room, assigned events must be pairwise
// non-overlapping, lie within an availability window and fit the room's
// capacity. Unassigned events carry no placement and are never violations.
// An empty result means the assignment is feasible.
func Validate(a *model.Assignment) []Violation {
	var out []Violation

	byRoom := make(map[*model.Room][]*model.AssignedEvent)
	var roomOrder []*model.Room

	for _, it := range a.Items {
		if !it.Assigned() {
			continue
		}
		if it.End <= it.Start || it.End-it.Start != it.Event.Duration() {
			out = append(out, Violation{
				Kind:   ViolationWindow,
				Event:  it.Event.Name,
				Room:   it.Room.Name,
				Detail: fmt.Sprintf("placed window [%d,%d) does not match the event duration %d", it.Start, it.End, it.Event.Duration()),
			})
		}
		if !it.Room.CanHost(it.Event.Participants) {
			out = append(out, Violation{
				Kind:   ViolationCapacity,
				Event:  it.Event.Name,
				Room:   it.Room.Name,
				Detail: fmt.Sprintf("%d participants exceed capacity %d", it.Event.Participants, it.Room.Capacity),
			})
		}
		if !it.Room.FitsWindow(it.Start, it.End) {
			out = append(out, Violation{
				Kind:   ViolationAvailability,
				Event:  it.Event.Name,
				Room:   it.Room.Name,
				Detail: fmt.Sprintf("window [%d,%d) lies outside every availability interval", it.Start, it.End),
			})
		}
		if _, ok := byRoom[it.Room]; !ok {
			roomOrder = append(roomOrder, it.Room)
		}
		byRoom[it.Room] = append(byRoom[it.Room], it)
	}

	for _, room := range roomOrder {
		items := byRoom[room]
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				if model.Overlaps(items[i].Start, items[i].End, items[j].Start, items[j].End) {
					out = append(out, Violation{
						Kind:   ViolationOverlap,
						Event:  items[i].Event.Name,
						Room:   room.Name,
						Detail: fmt.Sprintf("[%d,%d) overlaps %q at [%d,%d)", items[i].Start, items[i].End, items[j].Event.Name, items[j].Start, items[j].End),
					})
				}
			}
		}
	}

	return out
}
