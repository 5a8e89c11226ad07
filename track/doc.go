// Package track loads GPX track files into a time-sorted Timeline and
// exports track geometry as GeoJSON for visualization.
//
// The loader is tolerant of partial failure: a file that does not parse is
// skipped so one corrupt track never loses the rest of the session.
package track
