package model

import "fmt"

// Interval is a half-open time range [Start, End) in whole clock hours.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not conflict: [8,10) and [10,12) are disjoint.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// Overlaps reports whether the interval intersects other.
func (iv Interval) Overlaps(other Interval) bool {
	return Overlaps(iv.Start, iv.End, other.Start, other.End)
}

// Contains reports whether [start, end) lies entirely inside the interval.
func (iv Interval) Contains(start, end int) bool {
	return iv.Start <= start && end <= iv.End
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d,%d)", iv.Start, iv.End)
}
