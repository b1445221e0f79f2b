package engine

import (
	"context"
	"fmt"

	mk "github.com/gitrdm/gokanlogic/pkg/minikanren"

	"github.com/Freeeeeet/roomplan/internal/model"
)

// Optimal is the constraint-based allocator. It encodes room assignment as a
// finite-domain model and runs the backend's branch-and-bound search for the
// assignment with the best objective: as many placed events as possible
// first, then the smallest preference cost. The backend is confined to this
// file; swapping it out touches neither the data model nor the validator.
//
// Encoding, fixed-window mode:
//   - one room variable per event whose domain holds the 1-based indices of
//     the rooms that admit the event (capacity and availability checked up
//     front, as the original integer program prunes its variables), plus one
//     per-event "unassigned" sentinel value;
//   - sentinels are distinct across events, so a plain != between the room
//     variables of two time-overlapping events forbids sharing a room while
//     leaving both free to stay unassigned;
//   - a table-element constraint maps each room choice to its cost, and the
//     objective minimizes the cost sum.
//
// Shift mode additionally enumerates every feasible (room, start) pair per
// event and keeps rectangles (start, room) x (duration, 1) disjoint with the
// Diffn global, so events may slide inside availability windows.
//
// An event that fits nowhere keeps its sentinel: the model always admits a
// solution, which keeps "not everything fits" an optimal outcome rather than
// an infeasibility.
type Optimal struct {
	opts Options
}

func NewOptimal(opts Options) *Optimal {
	if opts.SlackWeight < 0 {
		opts.SlackWeight = 0
	}
	if opts.ShiftWeight < 0 {
		opts.ShiftWeight = 0
	}
	return &Optimal{opts: opts}
}

func (o *Optimal) Name() string {
	return StrategyOptimal
}

func (o *Optimal) Allocate(ctx context.Context, events []*model.Event, rooms []*model.Room) (*model.Assignment, error) {
	if err := checkInputs(events, rooms); err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}
	if len(events) == 0 {
		return model.NewAssignment(StrategyOptimal, 0), nil
	}
	if len(rooms) == 0 {
		// Nothing to solve: every event is infeasible-for-room, not an error.
		a := model.NewAssignment(StrategyOptimal, len(events))
		for _, ev := range events {
			a.Items = append(a.Items, &model.AssignedEvent{Event: ev, Start: ev.Start, End: ev.End})
		}
		return a, nil
	}
	if o.opts.AllowShift {
		return o.allocateShifting(ctx, events, rooms)
	}
	return o.allocateFixed(ctx, events, rooms)
}

// checkInputs rejects structurally malformed problems before a model is
// built. These are defects of the caller, distinct from events that merely
// fit nowhere.
func checkInputs(events []*model.Event, rooms []*model.Room) error {
	for _, ev := range events {
		if ev.End <= ev.Start {
			return fmt.Errorf("malformed event %q: end (%d) not after start (%d)", ev.Name, ev.End, ev.Start)
		}
		if ev.Participants < 0 {
			return fmt.Errorf("malformed event %q: negative participants (%d)", ev.Name, ev.Participants)
		}
	}
	for _, room := range rooms {
		if room.Capacity < 0 {
			return fmt.Errorf("malformed room %q: negative capacity (%d)", room.Name, room.Capacity)
		}
	}
	return nil
}

// roomCost prices choosing room for ev: a base of 1 (finite domains hold
// positive values only) plus the weighted unused capacity, so among feasible
// rooms the tightest fit wins. At a fixed window the deviation from the
// preferred start is the same for every room, so capacity slack is the whole
// of the room-choice preference.
func (o *Optimal) roomCost(ev *model.Event, room *model.Room) int {
	return 1 + o.opts.SlackWeight*(room.Capacity-ev.Participants)
}

func (o *Optimal) allocateFixed(ctx context.Context, events []*model.Event, rooms []*model.Room) (*model.Assignment, error) {
	m := mk.NewModel()
	nRooms := len(rooms)
	tableLen := nRooms + len(events)

	// Cost tables: index values 1..nRooms are real rooms, nRooms+1+i is the
	// sentinel of event i. Slots an event can never select stay at 1.
	costTables := make([][]int, len(events))
	feasible := make([][]int, len(events))
	maxCost := 1
	for i, ev := range events {
		table := make([]int, tableLen)
		for k := range table {
			table[k] = 1
		}
		var dom []int
		for r, room := range rooms {
			if !room.CanHost(ev.Participants) || !room.FitsWindow(ev.Start, ev.End) {
				continue
			}
			c := o.roomCost(ev, room)
			table[r] = c
			if c > maxCost {
				maxCost = c
			}
			dom = append(dom, r+1)
		}
		costTables[i] = table
		feasible[i] = dom
	}

	// Leaving an event out must always cost more than any full placement of
	// the remaining events, so the solver assigns as many events as it can
	// before it starts comparing room choices.
	penalty := len(events)*maxCost + 1

	roomVars := make([]*mk.FDVariable, len(events))
	costVars := make([]*mk.FDVariable, len(events))
	for i, ev := range events {
		sentinel := nRooms + 1 + i
		costTables[i][sentinel-1] = penalty

		domVals := append(append([]int{}, feasible[i]...), sentinel)
		roomVars[i] = m.NewVariableWithName(mk.DomainValues(domVals...), "room_"+ev.Name)

		costVals := make([]int, 0, len(domVals))
		for _, v := range domVals {
			costVals = append(costVals, costTables[i][v-1])
		}
		costVars[i] = m.NewVariableWithName(mk.DomainValues(costVals...), "cost_"+ev.Name)

		elem, err := mk.NewElementValues(roomVars[i], costTables[i], costVars[i])
		if err != nil {
			return nil, fmt.Errorf("solver: cost table for %q: %w", ev.Name, err)
		}
		m.AddConstraint(elem)
	}

	// Two events whose fixed windows overlap may not share a room. Sentinel
	// values are unique per event, so != never blocks leaving both out.
	for i := range events {
		for j := i + 1; j < len(events); j++ {
			if !events[i].OverlapsWith(events[j]) {
				continue
			}
			ne, err := mk.NewInequality(roomVars[i], roomVars[j], mk.NotEqual)
			if err != nil {
				return nil, fmt.Errorf("solver: conflict %q/%q: %w", events[i].Name, events[j].Name, err)
			}
			m.AddConstraint(ne)
		}
	}

	total, err := o.postObjective(m, costVars, len(events)*penalty)
	if err != nil {
		return nil, err
	}

	sol, err := o.solve(ctx, m, total)
	if err != nil {
		return nil, err
	}

	a := model.NewAssignment(StrategyOptimal, len(events))
	used := make(map[*model.Room]bool)
	for i, ev := range events {
		item := &model.AssignedEvent{Event: ev, Start: ev.Start, End: ev.End}
		if v := sol[roomVars[i].ID()]; v >= 1 && v <= nRooms {
			item.Room = rooms[v-1]
			used[item.Room] = true
		}
		a.Items = append(a.Items, item)
	}
	a.RoomsOpened = len(used)
	return a, nil
}

// placement is one feasible (room, start) choice for an event in shift mode.
type placement struct {
	room  int // 0-based index into rooms
	start int // real clock time
	cost  int
}

func (o *Optimal) allocateShifting(ctx context.Context, events []*model.Event, rooms []*model.Room) (*model.Assignment, error) {
	// Finite domains hold positive values only, so all encoded starts are
	// shifted by a run-local offset: enc(t) = t - base + 1.
	base := events[0].Start
	observe := func(t int) {
		if t < base {
			base = t
		}
	}
	horizonMin, horizonMax := horizon(events, rooms)
	observe(horizonMin)

	perEvent := make([][]placement, len(events))
	maxCost := 1
	for i, ev := range events {
		pref := ev.Start
		if ev.PreferredStart != nil {
			pref = *ev.PreferredStart
		}
		dur := ev.Duration()
		for r, room := range rooms {
			if !room.CanHost(ev.Participants) {
				continue
			}
			windows := room.Availability
			if len(windows) == 0 {
				windows = []model.Interval{{Start: horizonMin, End: horizonMax}}
			}
			for _, iv := range windows {
				for s := iv.Start; s+dur <= iv.End; s++ {
					c := 1 + o.opts.ShiftWeight*abs(s-pref) + o.opts.SlackWeight*(room.Capacity-ev.Participants)
					if c > maxCost {
						maxCost = c
					}
					perEvent[i] = append(perEvent[i], placement{room: r, start: s, cost: c})
					observe(s)
				}
			}
		}
	}

	penalty := len(events)*maxCost + 1
	enc := func(t int) int { return t - base + 1 }

	m := mk.NewModel()
	nRooms := len(rooms)

	assignVars := make([]*mk.FDVariable, len(events))
	roomVars := make([]*mk.FDVariable, len(events))
	startVars := make([]*mk.FDVariable, len(events))
	costVars := make([]*mk.FDVariable, len(events))
	widths := make([]int, len(events))
	heights := make([]int, len(events))

	for i, ev := range events {
		sentinel := nRooms + 1 + i
		codes := perEvent[i]

		// One combined code per feasible (room, start) pair, plus a final
		// "unassigned" code parked on the event's private sentinel row.
		roomOf := make([]int, 0, len(codes)+1)
		startOf := make([]int, 0, len(codes)+1)
		costOf := make([]int, 0, len(codes)+1)
		for _, c := range codes {
			roomOf = append(roomOf, c.room+1)
			startOf = append(startOf, enc(c.start))
			costOf = append(costOf, c.cost)
		}
		roomOf = append(roomOf, sentinel)
		startOf = append(startOf, 1)
		costOf = append(costOf, penalty)

		assignVars[i] = m.NewVariableWithName(mk.DomainRange(1, len(roomOf)), "assign_"+ev.Name)
		roomVars[i] = m.NewVariableWithName(mk.DomainValues(roomOf...), "room_"+ev.Name)
		startVars[i] = m.NewVariableWithName(mk.DomainValues(startOf...), "start_"+ev.Name)
		costVars[i] = m.NewVariableWithName(mk.DomainValues(costOf...), "cost_"+ev.Name)

		for _, link := range []struct {
			table  []int
			result *mk.FDVariable
			what   string
		}{
			{roomOf, roomVars[i], "room"},
			{startOf, startVars[i], "start"},
			{costOf, costVars[i], "cost"},
		} {
			elem, err := mk.NewElementValues(assignVars[i], link.table, link.result)
			if err != nil {
				return nil, fmt.Errorf("solver: %s table for %q: %w", link.what, ev.Name, err)
			}
			m.AddConstraint(elem)
		}

		widths[i] = ev.Duration()
		heights[i] = 1
	}

	// Rectangles (start, room) x (duration, 1) must be pairwise disjoint:
	// same room means disjoint times. Unassigned events sit on their own
	// sentinel row and can never collide.
	if _, err := mk.NewDiffn(m, startVars, roomVars, widths, heights); err != nil {
		return nil, fmt.Errorf("solver: no-overlap: %w", err)
	}

	total, err := o.postObjective(m, costVars, len(events)*penalty)
	if err != nil {
		return nil, err
	}

	sol, err := o.solve(ctx, m, total)
	if err != nil {
		return nil, err
	}

	a := model.NewAssignment(StrategyOptimal, len(events))
	used := make(map[*model.Room]bool)
	for i, ev := range events {
		item := &model.AssignedEvent{Event: ev, Start: ev.Start, End: ev.End}
		if v := sol[roomVars[i].ID()]; v >= 1 && v <= nRooms {
			item.Room = rooms[v-1]
			item.Start = sol[startVars[i].ID()] + base - 1
			item.End = item.Start + ev.Duration()
			used[item.Room] = true
		}
		a.Items = append(a.Items, item)
	}
	a.RoomsOpened = len(used)
	return a, nil
}

// postObjective links the per-event cost variables to a single total and
// returns the variable to minimize.
func (o *Optimal) postObjective(m *mk.Model, costVars []*mk.FDVariable, maxTotal int) (*mk.FDVariable, error) {
	coeffs := make([]int, len(costVars))
	for i := range coeffs {
		coeffs[i] = 1
	}
	total := m.NewVariableWithName(mk.DomainRange(len(costVars), maxTotal), "total_cost")
	ls, err := mk.NewLinearSum(costVars, coeffs, total)
	if err != nil {
		return nil, fmt.Errorf("solver: objective: %w", err)
	}
	m.AddConstraint(ls)
	return total, nil
}

// solve runs branch-and-bound to the optimum. A cancelled context fails the
// run; a partial incumbent is deliberately not used. A nil solution means
// the backend judged the model infeasible, which the sentinel encoding rules
// out, so it is surfaced as a solver failure rather than "all unassigned".
func (o *Optimal) solve(ctx context.Context, m *mk.Model, total *mk.FDVariable) ([]int, error) {
	sol, _, err := mk.NewSolver(m).SolveOptimal(ctx, total, true)
	if err != nil {
		return nil, fmt.Errorf("solver: optimize: %w", err)
	}
	if sol == nil {
		return nil, fmt.Errorf("solver: backend reported infeasible for a model that always admits a solution")
	}
	return sol, nil
}

// horizon returns the envelope of every availability window and event window,
// used as the feasible range for rooms with no availability list.
func horizon(events []*model.Event, rooms []*model.Room) (int, int) {
	lo, hi := events[0].Start, events[0].End
	grow := func(start, end int) {
		if start < lo {
			lo = start
		}
		if end > hi {
			hi = end
		}
	}
	for _, ev := range events {
		grow(ev.Start, ev.End)
		if ev.PreferredStart != nil {
			grow(*ev.PreferredStart, *ev.PreferredStart+ev.Duration())
		}
	}
	for _, room := range rooms {
		for _, iv := range room.Availability {
			grow(iv.Start, iv.End)
		}
	}
	return lo, hi
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
