package track

import (
	"log"
	"path/filepath"
	"sort"

	"github.com/tkrajina/gpxgo/gpx"
)

// LoadTimeline parses every .gpx file in dir and flattens all timestamped
// track points and waypoints into a single chronologically sorted Timeline.
//
// Files are visited in lexicographic filename order so repeated runs produce
// identical timelines. A file that fails to parse is logged and skipped;
// points without a timestamp are dropped because they cannot participate in
// time-based interpolation. Naive GPX timestamps are taken as UTC (unlike
// photo timestamps, which prefer a configured local-zone fallback).
func LoadTimeline(dir string) (Timeline, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.gpx"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var tl Timeline
	for _, file := range files {
		g, err := gpx.ParseFile(file)
		if err != nil {
			log.Printf("track: skipping %s: %v", filepath.Base(file), err)
			continue
		}
		for _, trk := range g.Tracks {
			for _, seg := range trk.Segments {
				for _, p := range seg.Points {
					appendPoint(&tl, p)
				}
			}
		}
		for _, wpt := range g.Waypoints {
			appendPoint(&tl, wpt)
		}
	}

	sort.SliceStable(tl, func(i, j int) bool { return tl[i].Time.Before(tl[j].Time) })
	return tl, nil
}

func appendPoint(tl *Timeline, p gpx.GPXPoint) {
	if p.Timestamp.IsZero() {
		return
	}
	ele := 0.0
	if p.Elevation.NotNull() {
		ele = p.Elevation.Value()
	}
	*tl = append(*tl, Point{
		Time: p.Timestamp.UTC(),
		Lat:  p.Latitude,
		Lon:  p.Longitude,
		Ele:  ele,
	})
}
