package exifmeta

import (
	"context"
	"time"
)

// PhotoRecord is the structured result of reading one photo's metadata.
// A missing capture time or missing GPS position is a state, not an error.
type PhotoRecord struct {
	Filename    string
	Filepath    string
	CaptureTime *time.Time
	HasGPS      bool
	Lat         *float64
	Lon         *float64
}

// Gateway is the contract for reading photo time/GPS metadata and writing
// computed positions back. Any implementation (stay-open tool process, one
// process per call, native library) satisfies the same contract.
type Gateway interface {
	// Read returns the photo's metadata. Tool failures of any kind degrade
	// to a record with all fields absent; they never surface as errors.
	Read(ctx context.Context, path string) PhotoRecord
	// WriteGPS persists a position into the photo's metadata. Hemisphere
	// references are derived from the signs of lat, lon and ele.
	WriteGPS(ctx context.Context, path string, lat, lon, ele float64) error
	// Version reports the external tool's version, or an error when the
	// tool is unavailable. Used for fail-fast setup checks.
	Version(ctx context.Context) (string, error)
	Close() error
}
