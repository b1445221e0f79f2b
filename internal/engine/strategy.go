// Package engine contains the allocation core: the greedy interval
// partitioning allocator, the constraint-based optimal allocator, and the
// schedule validator that re-checks whatever either of them produces.
package engine

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/roomplan/internal/model"
)

// Strategy names accepted by ForName.
const (
	StrategyGreedy  = "greedy"
	StrategyOptimal = "optimal"
)

// Strategy is the allocation capability shared by both allocators. An
// implementation must not mutate the events or rooms it is given and must
// return a fresh assignment per call, so concurrent runs over independent
// inputs are safe without locking.
type Strategy interface {
	Name() string
	Allocate(ctx context.Context, events []*model.Event, rooms []*model.Room) (*model.Assignment, error)
}

// Options carries the tuning knobs of the optimal allocator.
type Options struct {
	// AllowShift lets the optimal allocator move an event's start within the
	// room's availability windows. When false (the default) the event window
	// is fixed and only the room choice varies.
	AllowShift bool
	// SlackWeight scales the unused-capacity cost of a room choice.
	SlackWeight int
	// ShiftWeight scales the cost per hour of deviation from the preferred
	// start. Only used when AllowShift is set.
	ShiftWeight int
}

// DefaultOptions returns the weights used when nothing is configured.
func DefaultOptions() Options {
	return Options{SlackWeight: 1, ShiftWeight: 1}
}

// ForName returns the strategy registered under name.
func ForName(name string, opts Options) (Strategy, error) {
	switch name {
	case StrategyGreedy:
		return NewGreedy(), nil
	case StrategyOptimal:
		return NewOptimal(opts), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want %q or %q)", name, StrategyGreedy, StrategyOptimal)
	}
}
