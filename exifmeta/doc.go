// Package exifmeta reads and writes photo time and GPS metadata through an
// external exiftool process, and normalizes heterogeneous EXIF timestamp
// representations into UTC instants.
//
// Tool failures degrade to all-absent records at the gateway boundary; the
// matching core never sees them as errors.
package exifmeta
