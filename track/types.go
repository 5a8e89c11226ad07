package track

import "time"

// Point is a single timestamped track sample. Immutable once loaded.
type Point struct {
	Time time.Time
	Lat  float64
	Lon  float64
	Ele  float64
}

// Timeline is a sequence of Points sorted ascending by timestamp.
// Duplicate timestamps are permitted; the loader's stable sort preserves
// first-found order among them. A Timeline is built once per matching run
// and read-only afterwards.
type Timeline []Point

// Span returns the first and last instants covered by the timeline.
// ok is false for an empty timeline.
func (tl Timeline) Span() (first, last time.Time, ok bool) {
	if len(tl) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return tl[0].Time, tl[len(tl)-1].Time, true
}

// IsSortedByTime reports whether the timeline is non-decreasing in timestamp.
func (tl Timeline) IsSortedByTime() bool {
	for i := 1; i < len(tl); i++ {
		if tl[i].Time.Before(tl[i-1].Time) {
			return false
		}
	}
	return true
}
