package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/Freeeeeet/roomplan/internal/model"
)

// Greedy is the interval-partitioning allocator: events are sorted by start
// time and each is placed into the first open room that is free again; a new
// room is opened when none is. Capacity and availability are ignored on this
// path, which is what makes it a pure partitioning heuristic. It always
// places every event and opens the minimum possible number of rooms (the
// maximum number of simultaneously overlapping events).
type Greedy struct{}

func NewGreedy() *Greedy {
	return &Greedy{}
}

func (g *Greedy) Name() string {
	return StrategyGreedy
}

// Allocate partitions the events over on-demand rooms. The rooms argument is
// ignored: this path opens its own generic rooms. The sort is stable, so
// events sharing a start time keep their input order and reruns over the
// same input produce the same assignment.
func (g *Greedy) Allocate(_ context.Context, events []*model.Event, _ []*model.Room) (*model.Assignment, error) {
	order := make([]*model.Event, len(events))
	copy(order, events)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Start < order[j].Start })

	type openRoom struct {
		room    *model.Room
		lastEnd int
	}

	var open []*openRoom
	nextRoom := 1 // room counter owned by this run, no process-wide state
	placed := make(map[*model.Event]*model.AssignedEvent, len(order))

	for _, ev := range order {
		var host *openRoom
		// Scan rooms in the order they were opened; equality at the boundary
		// is allowed, an event may start exactly when the previous one ends.
		for _, or := range open {
			if or.lastEnd <= ev.Start {
				host = or
				break
			}
		}
		if host == nil {
			host = &openRoom{room: model.NewOpenRoom(fmt.Sprintf("Room %d", nextRoom))}
			nextRoom++
			open = append(open, host)
		}
		host.lastEnd = ev.End
		placed[ev] = &model.AssignedEvent{Event: ev, Room: host.room, Start: ev.Start, End: ev.End}
	}

	a := model.NewAssignment(StrategyGreedy, len(events))
	for _, ev := range events {
		a.Items = append(a.Items, placed[ev])
	}
	a.RoomsOpened = len(open)
	return a, nil
}
