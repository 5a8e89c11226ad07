// Package match implements time-based matching of photos against a GPX
// track timeline: binary search for the bounding pair, linear interpolation
// between its points, and the gap policies governing edge and sparse-track
// cases.
//
// Everything here is pure and CPU-bound; absence of a match is an outcome,
// never an error.
package match
