// Package report renders an assignment for external consumers: the ordered
// output records of the engine boundary, a console schedule, and a Gantt
// chart PNG.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/Freeeeeet/roomplan/internal/model"
)

// Record is one line of the engine's output boundary. RoomName is null when
// the event could not be placed.
type Record struct {
	EventName    string  `json:"event_name"`
	RoomName     *string `json:"room_name"`
	Start        int     `json:"start"`
	End          int     `json:"end"`
	Participants int     `json:"participants"`
}

// Records flattens an assignment into output records, in input event order.
func Records(a *model.Assignment) []Record {
	out := make([]Record, 0, len(a.Items))
	for _, it := range a.Items {
		rec := Record{
			EventName:    it.Event.Name,
			Start:        it.Start,
			End:          it.End,
			Participants: it.Event.Participants,
		}
		if it.Assigned() {
			name := it.Room.Name
			rec.RoomName = &name
		}
		out = append(out, rec)
	}
	return out
}

// JSON marshals the output records.
func JSON(a *model.Assignment) ([]byte, error) {
	data, err := json.MarshalIndent(Records(a), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal records: %w", err)
	}
	return data, nil
}
