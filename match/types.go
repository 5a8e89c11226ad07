package match

import "github.com/phototrail/geotag/exifmeta"

// Outcome classifies one photo after matching. The string values are the
// wire format consumed by the web UI.
type Outcome string

const (
	// OutcomeHasGPS means the photo already carried a GPS position and was
	// never passed to the interpolation engine.
	OutcomeHasGPS Outcome = "has_gps"
	// OutcomeNoTimestamp means the photo has no usable capture instant.
	OutcomeNoTimestamp Outcome = "no_time"
	// OutcomeMatched means a position was interpolated from the timeline.
	OutcomeMatched Outcome = "matched"
	// OutcomeNoMatch means the capture instant fell outside the timeline's
	// tolerated range or inside an oversized bracket.
	OutcomeNoMatch Outcome = "no_match"
)

// Position is an interpolated geographic position. Latitude and longitude
// are degrees, elevation is meters.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Ele float64 `json:"ele"`
}

// Result pairs a photo with its classification. Position is non-nil exactly
// when Outcome is OutcomeMatched.
type Result struct {
	Photo    exifmeta.PhotoRecord
	Outcome  Outcome
	Position *Position
}
