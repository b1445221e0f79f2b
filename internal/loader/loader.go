// Package loader turns JSON event and room records into validated model
// entities. Malformed input is rejected here, naming the record and the
// field at fault, so the allocators only ever see well-formed data.
package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Freeeeeet/roomplan/internal/model"
)

// EventRecord is the wire shape of one event. Two layouts are accepted:
// {name, start, end} or {name, duration, preferred_start}; participants is
// optional in both.
type EventRecord struct {
	Name           string `json:"name"`
	Start          *int   `json:"start,omitempty"`
	End            *int   `json:"end,omitempty"`
	Duration       *int   `json:"duration,omitempty"`
	PreferredStart *int   `json:"preferred_start,omitempty"`
	Participants   int    `json:"participants"`
}

// RoomRecord is the wire shape of one room.
type RoomRecord struct {
	Name         string   `json:"name"`
	Capacity     int      `json:"capacity"`
	Availability [][2]int `json:"availability"`
}

// Events normalizes both event record shapes into model events. Names must
// be unique within a run.
func Events(records []EventRecord) ([]*model.Event, error) {
	out := make([]*model.Event, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		if rec.Name == "" {
			return nil, fmt.Errorf("event record %d: name is required", i+1)
		}
		if seen[rec.Name] {
			return nil, fmt.Errorf("event %q: duplicate name", rec.Name)
		}
		seen[rec.Name] = true

		var (
			ev  *model.Event
			err error
		)
		switch {
		case rec.Start != nil && rec.End != nil:
			ev, err = model.NewEvent(rec.Name, *rec.Start, *rec.End, rec.Participants, rec.PreferredStart)
			if err == nil && rec.Duration != nil && *rec.Duration != ev.Duration() {
				err = fmt.Errorf("event %q: duration (%d) does not match end - start (%d)", rec.Name, *rec.Duration, ev.Duration())
			}
		case rec.Duration != nil && rec.PreferredStart != nil:
			ev, err = model.NewPreferredEvent(rec.Name, *rec.Duration, *rec.PreferredStart, rec.Participants)
		default:
			err = fmt.Errorf("event %q: needs either start and end, or duration and preferred_start", rec.Name)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// Rooms validates room records into model rooms. Names must be unique.
func Rooms(records []RoomRecord) ([]*model.Room, error) {
	out := make([]*model.Room, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		if rec.Name == "" {
			return nil, fmt.Errorf("room record %d: name is required", i+1)
		}
		if seen[rec.Name] {
			return nil, fmt.Errorf("room %q: duplicate name", rec.Name)
		}
		seen[rec.Name] = true

		availability := make([]model.Interval, 0, len(rec.Availability))
		for _, pair := range rec.Availability {
			availability = append(availability, model.Interval{Start: pair[0], End: pair[1]})
		}
		room, err := model.NewRoom(rec.Name, rec.Capacity, availability)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, nil
}

// EventsFromFile reads a JSON array of event records from path.
func EventsFromFile(path string) ([]*model.Event, error) {
	var records []EventRecord
	if err := readJSON(path, &records); err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	return Events(records)
}

// RoomsFromFile reads a JSON array of room records from path.
func RoomsFromFile(path string) ([]*model.Room, error) {
	var records []RoomRecord
	if err := readJSON(path, &records); err != nil {
		return nil, fmt.Errorf("rooms: %w", err)
	}
	return Rooms(records)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
