// Package photo scans photo directories by extension convention and
// produces bounded-size thumbnail re-encodes for the web UI.
package photo
