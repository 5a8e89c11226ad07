package match

import (
	"time"

	"github.com/phototrail/geotag/exifmeta"
	"github.com/phototrail/geotag/track"
)

// Classify maps one photo onto its outcome. A photo that already carries a
// GPS position is never passed to the interpolation engine.
func Classify(photo exifmeta.PhotoRecord, tl track.Timeline, maxGap time.Duration) Result {
	if photo.HasGPS {
		return Result{Photo: photo, Outcome: OutcomeHasGPS}
	}
	if photo.CaptureTime == nil {
		return Result{Photo: photo, Outcome: OutcomeNoTimestamp}
	}
	pos, ok := Interpolate(tl, *photo.CaptureTime, maxGap)
	if !ok {
		return Result{Photo: photo, Outcome: OutcomeNoMatch}
	}
	return Result{Photo: photo, Outcome: OutcomeMatched, Position: &pos}
}

// Batch classifies each photo independently, preserving input order.
// Classification is pure and shares no mutable state between photos; the
// caller is free to have produced the records concurrently.
func Batch(photos []exifmeta.PhotoRecord, tl track.Timeline, maxGap time.Duration) []Result {
	results := make([]Result, len(photos))
	for i, p := range photos {
		results[i] = Classify(p, tl, maxGap)
	}
	return results
}
