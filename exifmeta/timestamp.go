package exifmeta

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrZeroTimestamp marks the all-zero EXIF sentinel ("0000:00:00 00:00:00"
// or an empty string). Callers treat it as an absent timestamp.
var ErrZeroTimestamp = errors.New("zero timestamp")

// ErrUnrecognizedTimestamp is returned when the raw string matches no known
// EXIF datetime pattern.
var ErrUnrecognizedTimestamp = errors.New("unrecognized timestamp format")

const zeroSentinel = "0000:00:00 00:00:00"

// Layouts that carry their own UTC offset.
var zonedLayouts = []string{
	"2006:01:02 15:04:05-07:00",
	"2006:01:02 15:04:05-0700",
	"2006-01-02 15:04:05-07:00",
}

// Layouts without timezone information.
var naiveLayouts = []string{
	"2006:01:02 15:04:05",
	"2006-01-02 15:04:05",
}

// NormalizeTimestamp converts a raw EXIF datetime string into a UTC instant.
//
// If raw carries its own offset it is converted directly. Otherwise, when a
// non-empty offset string ("+09:00", "-0700", "+09") is supplied it is
// applied first. With neither, the time is interpreted in fallback (nil
// means the host's local zone). That last step is a heuristic, not a
// guarantee, since it depends on where the process runs.
func NormalizeTimestamp(raw, offset string, fallback *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == zeroSentinel {
		return time.Time{}, ErrZeroTimestamp
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}

	naive, err := parseNaive(raw)
	if err != nil {
		return time.Time{}, err
	}

	if offset = strings.TrimSpace(offset); offset != "" {
		if loc, err := parseOffset(offset); err == nil {
			return rebuildIn(naive, loc).UTC(), nil
		}
	}
	if fallback == nil {
		fallback = time.Local
	}
	return rebuildIn(naive, fallback).UTC(), nil
}

func parseNaive(raw string) (time.Time, error) {
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	// Some cameras append fractional seconds; retry with the tail cut off.
	if i := strings.IndexByte(raw, '.'); i > 0 {
		if t, err := time.Parse(naiveLayouts[0], raw[:i]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnrecognizedTimestamp
}

// parseOffset understands "+HH:MM", "-HH:MM", "+HHMM" and bare "+HH".
func parseOffset(s string) (*time.Location, error) {
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return nil, ErrUnrecognizedTimestamp
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	rest := s[1:]
	var hh, mm string
	switch {
	case strings.Contains(rest, ":"):
		parts := strings.SplitN(rest, ":", 2)
		hh, mm = parts[0], parts[1]
	case len(rest) == 4:
		hh, mm = rest[:2], rest[2:]
	default:
		hh, mm = rest, "0"
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return nil, ErrUnrecognizedTimestamp
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return nil, ErrUnrecognizedTimestamp
	}
	return time.FixedZone(s, sign*(h*3600+m*60)), nil
}

// rebuildIn reinterprets the wall-clock fields of t in loc.
func rebuildIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
