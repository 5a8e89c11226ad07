// Package geotag matches photographs lacking GPS coordinates against GPX
// track timelines by capture time and writes the interpolated positions
// back into the photos' metadata.
//
// The package exposes a Service facade shared by the batch CLI
// (cmd/gpx-geotag) and the web API, plus the HTTP server wiring itself.
package geotag
