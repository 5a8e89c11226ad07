package unit

import (
	"math"
	"testing"
	"time"

	"github.com/phototrail/geotag/match"
	"github.com/phototrail/geotag/track"
)

var t0 = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func twoPointTimeline() track.Timeline {
	return track.Timeline{
		{Time: t0, Lat: 10.0, Lon: 20.0, Ele: 0},
		{Time: t0.Add(1000 * time.Second), Lat: 10.01, Lon: 20.02, Ele: 5},
	}
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestInterpolate_MidBracket(t *testing.T) {
	pos, ok := match.Interpolate(twoPointTimeline(), t0.Add(500*time.Second), time.Hour)
	if !ok {
		t.Fatal("expected a match")
	}
	if !almostEqual(pos.Lat, 10.005) || !almostEqual(pos.Lon, 20.01) || !almostEqual(pos.Ele, 2.5) {
		t.Errorf("got lat=%v lon=%v ele=%v, want 10.005 20.01 2.5", pos.Lat, pos.Lon, pos.Ele)
	}
}

func TestInterpolate_ExactHit(t *testing.T) {
	tl := twoPointTimeline()
	for i, p := range tl {
		pos, ok := match.Interpolate(tl, p.Time, time.Hour)
		if !ok {
			t.Fatalf("point %d: expected a match", i)
		}
		if pos.Lat != p.Lat || pos.Lon != p.Lon || pos.Ele != p.Ele {
			t.Errorf("point %d: expected unmodified position, got %+v", i, pos)
		}
	}
}

func TestInterpolate_EdgeExtrapolation(t *testing.T) {
	tl := twoPointTimeline()

	tests := []struct {
		name    string
		query   time.Time
		wantOK  bool
		wantLat float64
	}{
		{"before first within gap", t0.Add(-30 * time.Minute), true, 10.0},
		{"before first beyond gap", t0.Add(-2 * time.Hour), false, 0},
		{"after last within gap", t0.Add(1000*time.Second + 30*time.Minute), true, 10.01},
		{"after last beyond gap", t0.Add(5000 * time.Second), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := match.Interpolate(tl, tt.query, time.Hour)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !almostEqual(pos.Lat, tt.wantLat) {
				t.Errorf("lat = %v, want %v", pos.Lat, tt.wantLat)
			}
		})
	}
}

func TestInterpolate_WideBracketRejected(t *testing.T) {
	tl := track.Timeline{
		{Time: t0, Lat: 10.0, Lon: 20.0},
		{Time: t0.Add(2 * time.Hour), Lat: 11.0, Lon: 21.0},
	}
	// Query sits close to the first point, but the bracket itself is wider
	// than the tolerated gap.
	if _, ok := match.Interpolate(tl, t0.Add(time.Minute), time.Hour); ok {
		t.Error("expected rejection of an oversized bracket")
	}
}

func TestInterpolate_ZeroWidthBracket(t *testing.T) {
	tl := track.Timeline{
		{Time: t0, Lat: 1.0, Lon: 2.0, Ele: 3.0},
		{Time: t0.Add(time.Second), Lat: 5.0, Lon: 6.0, Ele: 7.0},
		{Time: t0.Add(time.Second), Lat: 9.0, Lon: 9.0, Ele: 9.0},
		{Time: t0.Add(2 * time.Second), Lat: 1.0, Lon: 1.0, Ele: 1.0},
	}
	// Exact hit on the duplicate timestamp returns the first of the pair.
	pos, ok := match.Interpolate(tl, t0.Add(time.Second), time.Hour)
	if !ok || pos.Lat != 5.0 {
		t.Errorf("expected earlier duplicate's position, got %+v ok=%v", pos, ok)
	}
}

func TestInterpolate_EmptyTimeline(t *testing.T) {
	if _, ok := match.Interpolate(nil, t0, time.Hour); ok {
		t.Error("expected no match on empty timeline")
	}
	if _, ok := match.Interpolate(track.Timeline{}, t0, time.Hour); ok {
		t.Error("expected no match on empty timeline")
	}
}

func TestInterpolate_LinearInRatio(t *testing.T) {
	tl := twoPointTimeline()
	for _, elapsed := range []time.Duration{0, 100 * time.Second, 250 * time.Second, 999 * time.Second, 1000 * time.Second} {
		pos, ok := match.Interpolate(tl, t0.Add(elapsed), time.Hour)
		if !ok {
			t.Fatalf("elapsed %s: expected a match", elapsed)
		}
		ratio := elapsed.Seconds() / 1000.0
		wantLat := 10.0 + 0.01*ratio
		wantLon := 20.0 + 0.02*ratio
		wantEle := 5 * ratio
		if !almostEqual(pos.Lat, wantLat) || !almostEqual(pos.Lon, wantLon) || !almostEqual(pos.Ele, wantEle) {
			t.Errorf("elapsed %s: got %+v, want lat=%v lon=%v ele=%v", elapsed, pos, wantLat, wantLon, wantEle)
		}
		if ratio < 0 || ratio > 1 {
			t.Errorf("ratio %v outside [0,1]", ratio)
		}
	}
}
