package model

import (
	"fmt"
	"math"
	"sort"
)

// Room is a resource with a capacity and availability windows, hosting
// non-overlapping events. An empty availability list means the room is
// always available. Rooms are constructed once and never mutated; changing
// availability means building a new room.
type Room struct {
	Name         string     `json:"name"`
	Capacity     int        `json:"capacity"`
	Availability []Interval `json:"availability,omitempty"` // sorted, pairwise disjoint
}

// NewRoom validates and builds a room. Availability intervals are sorted by
// start; intervals that are malformed or overlap each other are rejected.
func NewRoom(name string, capacity int, availability []Interval) (*Room, error) {
	if name == "" {
		return nil, fmt.Errorf("room name is required")
	}
	if capacity < 0 {
		return nil, fmt.Errorf("room %q: capacity (%d) must not be negative", name, capacity)
	}
	ivs := make([]Interval, len(availability))
	copy(ivs, availability)
	for _, iv := range ivs {
		if iv.End <= iv.Start {
			return nil, fmt.Errorf("room %q: availability interval %s: end must be greater than start", name, iv)
		}
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start < ivs[j].Start })
	for i := 1; i < len(ivs); i++ {
		if ivs[i].Start < ivs[i-1].End {
			return nil, fmt.Errorf("room %q: availability intervals %s and %s overlap", name, ivs[i-1], ivs[i])
		}
	}
	return &Room{Name: name, Capacity: capacity, Availability: ivs}, nil
}

// NewOpenRoom builds an on-demand room for the greedy path: no capacity
// bound and no availability restriction.
func NewOpenRoom(name string) *Room {
	return &Room{Name: name, Capacity: math.MaxInt}
}

// CanHost reports whether the room's capacity admits the participant count.
func (r *Room) CanHost(participants int) bool {
	return r.Capacity >= participants
}

// FitsWindow reports whether [start, end) lies entirely inside one of the
// room's availability intervals. A window spanning two adjacent intervals
// does not fit.
func (r *Room) FitsWindow(start, end int) bool {
	if len(r.Availability) == 0 {
		return true
	}
	for _, iv := range r.Availability {
		if iv.Contains(start, end) {
			return true
		}
	}
	return false
}
