package track

import (
	"log"
	"path/filepath"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tkrajina/gpxgo/gpx"
)

// GeoJSON converts the tracks in dir into a FeatureCollection with one
// LineString feature per track segment, coordinates ordered [lon, lat].
// The feature name comes from the track's declared name, falling back to
// the filename. Used only for visualization; matching reads LoadTimeline.
func GeoJSON(dir string) (*geojson.FeatureCollection, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.gpx"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	fc := geojson.NewFeatureCollection()
	for _, file := range files {
		g, err := gpx.ParseFile(file)
		if err != nil {
			log.Printf("track: skipping %s: %v", filepath.Base(file), err)
			continue
		}
		for _, trk := range g.Tracks {
			name := trk.Name
			if name == "" {
				name = filepath.Base(file)
			}
			for _, seg := range trk.Segments {
				if len(seg.Points) == 0 {
					continue
				}
				line := make(orb.LineString, 0, len(seg.Points))
				for _, p := range seg.Points {
					line = append(line, orb.Point{p.Longitude, p.Latitude})
				}
				f := geojson.NewFeature(line)
				f.Properties["name"] = name
				fc.Append(f)
			}
		}
	}
	return fc, nil
}
