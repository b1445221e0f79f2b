package engine

import (
	"context"
	"testing"

	"github.com/Freeeeeet/roomplan/internal/model"
)

func optimal() *Optimal {
	return NewOptimal(DefaultOptions())
}

func itemOf(t *testing.T, a *model.Assignment, name string) *model.AssignedEvent {
	t.Helper()
	for _, it := range a.Items {
		if it.Event.Name == name {
			return it
		}
	}
	t.Fatalf("event %s not in assignment", name)
	return nil
}

// Room A's first availability window opens at 10, one hour after the
// workshop wants to begin, so only Room B can take it.
func TestOptimalPicksRoomWithMatchingWindow(t *testing.T) {
	rooms := []*model.Room{
		mustRoom(t, "Room A", 150, []model.Interval{{Start: 10, End: 12}, {Start: 14, End: 18}}),
		mustRoom(t, "Room B", 80, []model.Interval{{Start: 9, End: 12}, {Start: 13, End: 17}}),
	}
	workshop, err := model.NewPreferredEvent("Workshop", 3, 9, 80)
	if err != nil {
		t.Fatalf("build event: %v", err)
	}

	a, err := optimal().Allocate(context.Background(), []*model.Event{workshop}, rooms)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}

	it := itemOf(t, a, "Workshop")
	if it.Room == nil || it.Room.Name != "Room B" {
		t.Fatalf("Workshop placed in %v, want Room B", it.Room)
	}
	if it.Start != 9 || it.End != 12 {
		t.Errorf("Workshop at [%d,%d), want [9,12)", it.Start, it.End)
	}
	if violations := Validate(a); len(violations) != 0 {
		t.Errorf("validator reported violations: %v", violations)
	}
}

// An event nothing can host stays in the output as unassigned; the run is
// not an error and the validator has nothing to complain about.
func TestOptimalLeavesOversizedEventUnassigned(t *testing.T) {
	rooms := []*model.Room{
		mustRoom(t, "Room A", 150, []model.Interval{{Start: 9, End: 18}}),
		mustRoom(t, "Room B", 80, []model.Interval{{Start: 9, End: 18}}),
	}
	crowd, err := model.NewEvent("Keynote", 9, 11, 200, nil)
	if err != nil {
		t.Fatalf("build event: %v", err)
	}
	talk, err := model.NewEvent("Talk", 9, 11, 40, nil)
	if err != nil {
		t.Fatalf("build event: %v", err)
	}

	a, err := optimal().Allocate(context.Background(), []*model.Event{crowd, talk}, rooms)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}

	if it := itemOf(t, a, "Keynote"); it.Room != nil {
		t.Errorf("Keynote placed in %s, want unassigned", it.Room.Name)
	}
	if it := itemOf(t, a, "Talk"); it.Room == nil {
		t.Error("Talk should have been placed")
	}
	if got := a.Unassigned(); len(got) != 1 || got[0].Name != "Keynote" {
		t.Errorf("Unassigned() = %v, want [Keynote]", got)
	}
	if violations := Validate(a); len(violations) != 0 {
		t.Errorf("validator reported violations: %v", violations)
	}
}

// Touching events may share the one available room.
func TestOptimalBoundaryEventsShareRoom(t *testing.T) {
	rooms := []*model.Room{
		mustRoom(t, "Hall", 100, []model.Interval{{Start: 8, End: 14}}),
	}
	events := []*model.Event{
		mustEvent(t, "Morning", 8, 10),
		mustEvent(t, "Noon", 10, 12),
	}

	a, err := optimal().Allocate(context.Background(), events, rooms)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if a.AssignedCount() != 2 {
		t.Fatalf("AssignedCount = %d, want 2", a.AssignedCount())
	}
	for _, name := range []string{"Morning", "Noon"} {
		if it := itemOf(t, a, name); it.Room.Name != "Hall" {
			t.Errorf("%s in %s, want Hall", name, it.Room.Name)
		}
	}
	if violations := Validate(a); len(violations) != 0 {
		t.Errorf("validator reported violations: %v", violations)
	}
}

// Assigning everything always beats any room preference: two overlapping
// events must spread over both rooms even if one room fits both better.
func TestOptimalMaximizesAssignedEvents(t *testing.T) {
	rooms := []*model.Room{
		mustRoom(t, "Tight", 60, []model.Interval{{Start: 8, End: 18}}),
		mustRoom(t, "Huge", 500, []model.Interval{{Start: 8, End: 18}}),
	}
	events := []*model.Event{
		mustEvent(t, "One", 9, 11),
		mustEvent(t, "Two", 10, 12),
	}

	a, err := optimal().Allocate(context.Background(), events, rooms)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if a.AssignedCount() != 2 {
		t.Fatalf("AssignedCount = %d, want 2", a.AssignedCount())
	}
	one, two := itemOf(t, a, "One"), itemOf(t, a, "Two")
	if one.Room == two.Room {
		t.Error("overlapping events ended up in the same room")
	}
	if violations := Validate(a); len(violations) != 0 {
		t.Errorf("validator reported violations: %v", violations)
	}
}

// With no conflicts the secondary objective picks the tightest fitting room.
func TestOptimalPrefersTightestRoom(t *testing.T) {
	rooms := []*model.Room{
		mustRoom(t, "Ballroom", 300, []model.Interval{{Start: 8, End: 18}}),
		mustRoom(t, "Studio", 60, []model.Interval{{Start: 8, End: 18}}),
	}
	talk, err := model.NewEvent("Talk", 9, 11, 50, nil)
	if err != nil {
		t.Fatalf("build event: %v", err)
	}

	a, err := optimal().Allocate(context.Background(), []*model.Event{talk}, rooms)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if it := itemOf(t, a, "Talk"); it.Room == nil || it.Room.Name != "Studio" {
		t.Fatalf("Talk placed in %v, want Studio (smallest feasible slack)", it.Room)
	}
}

func TestOptimalDeterministic(t *testing.T) {
	rooms := []*model.Room{
		mustRoom(t, "A", 100, []model.Interval{{Start: 8, End: 18}}),
		mustRoom(t, "B", 100, []model.Interval{{Start: 8, End: 18}}),
	}
	events := []*model.Event{
		mustEvent(t, "One", 9, 11),
		mustEvent(t, "Two", 10, 12),
		mustEvent(t, "Three", 11, 13),
	}

	first, err := optimal().Allocate(context.Background(), events, rooms)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	second, err := optimal().Allocate(context.Background(), events, rooms)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	for i := range first.Items {
		a, b := first.Items[i], second.Items[i]
		if (a.Room == nil) != (b.Room == nil) {
			t.Fatalf("rerun differs for %s", a.Event.Name)
		}
		if a.Room != nil && (a.Room.Name != b.Room.Name || a.Start != b.Start) {
			t.Fatalf("rerun differs for %s: %s@%d vs %s@%d",
				a.Event.Name, a.Room.Name, a.Start, b.Room.Name, b.Start)
		}
	}
}

func TestOptimalNoRooms(t *testing.T) {
	events := []*model.Event{mustEvent(t, "Orphan", 9, 11)}
	a, err := optimal().Allocate(context.Background(), events, nil)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if a.AssignedCount() != 0 || len(a.Unassigned()) != 1 {
		t.Errorf("expected one unassigned event, got %d assigned", a.AssignedCount())
	}
}

func TestOptimalNoEvents(t *testing.T) {
	rooms := []*model.Room{mustRoom(t, "A", 10, nil)}
	a, err := optimal().Allocate(context.Background(), nil, rooms)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(a.Items) != 0 {
		t.Errorf("expected empty assignment, got %d items", len(a.Items))
	}
}

// A structurally malformed problem is a solver failure, not a quiet
// "all unassigned" result.
func TestOptimalRejectsMalformedRoom(t *testing.T) {
	rooms := []*model.Room{{Name: "Broken", Capacity: -5}}
	events := []*model.Event{mustEvent(t, "One", 9, 11)}
	if _, err := optimal().Allocate(context.Background(), events, rooms); err == nil {
		t.Fatal("expected an error for negative capacity")
	}
}

func TestOptimalCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rooms := []*model.Room{mustRoom(t, "A", 100, []model.Interval{{Start: 8, End: 18}})}
	events := []*model.Event{mustEvent(t, "One", 9, 11)}
	if _, err := optimal().Allocate(ctx, events, rooms); err == nil {
		t.Fatal("expected an error when the context is already cancelled")
	}
}

// Shift mode: two events both prefer 9:00 in a one-room building, so the
// schedule has to spread them out at minimum total deviation.
func TestOptimalShiftResolvesPreferredStartClash(t *testing.T) {
	shifting := NewOptimal(Options{AllowShift: true, SlackWeight: 1, ShiftWeight: 1})

	rooms := []*model.Room{
		mustRoom(t, "Hall", 100, []model.Interval{{Start: 8, End: 14}}),
	}
	first, err := model.NewPreferredEvent("First", 2, 9, 10)
	if err != nil {
		t.Fatalf("build event: %v", err)
	}
	second, err := model.NewPreferredEvent("Second", 2, 9, 10)
	if err != nil {
		t.Fatalf("build event: %v", err)
	}

	a, err := shifting.Allocate(context.Background(), []*model.Event{first, second}, rooms)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if a.AssignedCount() != 2 {
		t.Fatalf("AssignedCount = %d, want 2", a.AssignedCount())
	}
	if violations := Validate(a); len(violations) != 0 {
		t.Fatalf("validator reported violations: %v", violations)
	}

	// Two optima exist (9/11 and 8/10); both deviate by two hours in total
	// and anything less would force an overlap.
	totalDeviation := 0
	for _, it := range a.Items {
		d := it.Start - 9
		if d < 0 {
			d = -d
		}
		totalDeviation += d
	}
	if totalDeviation != 2 {
		t.Errorf("total deviation = %d, want 2", totalDeviation)
	}
}

// Shift mode can rescue an event whose preferred window is busy even when
// its fixed window would be infeasible.
func TestOptimalShiftUsesAvailabilityWindows(t *testing.T) {
	shifting := NewOptimal(Options{AllowShift: true, SlackWeight: 1, ShiftWeight: 1})

	rooms := []*model.Room{
		mustRoom(t, "Hall", 100, []model.Interval{{Start: 10, End: 14}}),
	}
	// Prefers 9:00, but the hall only opens at 10.
	ev, err := model.NewPreferredEvent("Briefing", 2, 9, 20)
	if err != nil {
		t.Fatalf("build event: %v", err)
	}

	a, err := shifting.Allocate(context.Background(), []*model.Event{ev}, rooms)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	it := itemOf(t, a, "Briefing")
	if it.Room == nil {
		t.Fatal("Briefing should have been shifted into the open window")
	}
	if it.Start != 10 || it.End != 12 {
		t.Errorf("Briefing at [%d,%d), want [10,12) (closest feasible start)", it.Start, it.End)
	}
	if violations := Validate(a); len(violations) != 0 {
		t.Errorf("validator reported violations: %v", violations)
	}
}
