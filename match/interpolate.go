package match

import (
	"sort"
	"time"

	"github.com/phototrail/geotag/track"
)

// Interpolate computes the position on the timeline at the query instant.
//
// The bounding pair of points is located by binary search. An exact
// timestamp hit returns that point's position unmodified. A query before
// the first point or after the last one extrapolates to the edge point when
// the gap is within maxGap. Between two points, the bracket width itself
// must not exceed maxGap; this rejects sparse-track regions even when the
// query sits close to one side. The position is linear in the elapsed-time
// ratio, per coordinate, with no geodesic correction (maxGap bounds the
// real-world distance error of the flat approximation).
//
// ok is false when the timeline is empty or any gap check fails; those are
// expected outcomes, not faults.
func Interpolate(tl track.Timeline, at time.Time, maxGap time.Duration) (Position, bool) {
	if len(tl) == 0 {
		return Position{}, false
	}

	// Leftmost insertion index preserving sort order.
	idx := sort.Search(len(tl), func(i int) bool {
		return !tl[i].Time.Before(at)
	})

	if idx < len(tl) && tl[idx].Time.Equal(at) {
		return pointPosition(tl[idx]), true
	}

	if idx == 0 {
		if tl[0].Time.Sub(at) <= maxGap {
			return pointPosition(tl[0]), true
		}
		return Position{}, false
	}

	if idx == len(tl) {
		last := tl[len(tl)-1]
		if at.Sub(last.Time) <= maxGap {
			return pointPosition(last), true
		}
		return Position{}, false
	}

	before, after := tl[idx-1], tl[idx]
	width := after.Time.Sub(before.Time)
	if width > maxGap {
		return Position{}, false
	}
	if width == 0 {
		// Duplicate timestamps; both points are equally valid, take the
		// earlier one.
		return pointPosition(before), true
	}

	ratio := float64(at.Sub(before.Time)) / float64(width)
	return Position{
		Lat: before.Lat + (after.Lat-before.Lat)*ratio,
		Lon: before.Lon + (after.Lon-before.Lon)*ratio,
		Ele: before.Ele + (after.Ele-before.Ele)*ratio,
	}, true
}

func pointPosition(p track.Point) Position {
	return Position{Lat: p.Lat, Lon: p.Lon, Ele: p.Ele}
}
