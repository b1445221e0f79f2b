package report

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/roomplan/internal/model"
)

// FormatTimeRange renders a clock-hour window.
func FormatTimeRange(start, end int) string {
	return fmt.Sprintf("%dh to %dh", start, end)
}

// Text renders the console schedule. Placed events are grouped in input
// order; events that fit nowhere are always listed, never dropped silently.
func Text(a *model.Assignment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Schedule (%s strategy, %d room(s) used):\n\n", a.Strategy, a.RoomsOpened)
	for _, it := range a.Items {
		if !it.Assigned() {
			continue
		}
		fmt.Fprintf(&b, "Event: %s\n", it.Event.Name)
		fmt.Fprintf(&b, "  Room: %s\n", it.Room.Name)
		fmt.Fprintf(&b, "  Time: %s\n", FormatTimeRange(it.Start, it.End))
		fmt.Fprintf(&b, "  Participants: %d\n\n", it.Event.Participants)
	}

	unassigned := a.Unassigned()
	if len(unassigned) > 0 {
		b.WriteString("Unassigned (no feasible room):\n")
		for _, ev := range unassigned {
			fmt.Fprintf(&b, "  %s (%s, %d participants)\n", ev.Name, FormatTimeRange(ev.Start, ev.End), ev.Participants)
		}
	}

	return b.String()
}
