// Package helpers provides shared fixtures for unit and integration tests.
package helpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phototrail/geotag/exifmeta"
)

// TrackPointSpec describes one <trkpt> (or <wpt>) in a generated GPX file.
type TrackPointSpec struct {
	Time time.Time
	Lat  float64
	Lon  float64
	Ele  float64
}

// GPXDocument renders a minimal GPX 1.1 document with a single track
// segment. Points with a zero Time are emitted without a <time> element.
func GPXDocument(trackName string, points []TrackPointSpec) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<gpx version="1.1" creator="geotag-tests" xmlns="http://www.topografix.com/GPX/1/1">` + "\n")
	b.WriteString("<trk>")
	if trackName != "" {
		fmt.Fprintf(&b, "<name>%s</name>", trackName)
	}
	b.WriteString("<trkseg>\n")
	for _, p := range points {
		writePoint(&b, "trkpt", p)
	}
	b.WriteString("</trkseg></trk>\n</gpx>\n")
	return b.String()
}

// GPXDocumentWithWaypoints renders a GPX document holding only standalone
// waypoints.
func GPXDocumentWithWaypoints(points []TrackPointSpec) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<gpx version="1.1" creator="geotag-tests" xmlns="http://www.topografix.com/GPX/1/1">` + "\n")
	for _, p := range points {
		writePoint(&b, "wpt", p)
	}
	b.WriteString("</gpx>\n")
	return b.String()
}

func writePoint(b *strings.Builder, tag string, p TrackPointSpec) {
	fmt.Fprintf(b, `<%s lat="%f" lon="%f"><ele>%f</ele>`, tag, p.Lat, p.Lon, p.Ele)
	if !p.Time.IsZero() {
		fmt.Fprintf(b, "<time>%s</time>", p.Time.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(b, "</%s>\n", tag)
}

// WriteGPX writes a GPX document into dir under the given filename.
func WriteGPX(t *testing.T, dir, filename, doc string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(doc), 0o644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

// TouchFile creates an empty file, standing in for a photo on disk.
func TouchFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("touch %s: %v", name, err)
	}
	return path
}

// FakeGateway is an in-memory exifmeta.Gateway. Records are keyed by base
// filename; unknown files read as all-absent records, matching the real
// gateway's degraded behavior.
type FakeGateway struct {
	mu         sync.Mutex
	Records    map[string]exifmeta.PhotoRecord
	Written    map[string][3]float64
	FailWrites map[string]bool
	ReadCount  int
}

// NewFakeGateway builds an empty fake.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		Records:    map[string]exifmeta.PhotoRecord{},
		Written:    map[string][3]float64{},
		FailWrites: map[string]bool{},
	}
}

// SetRecord registers the metadata returned for a filename. captured may be
// nil (no timestamp); lat/lon may be nil (no existing GPS).
func (g *FakeGateway) SetRecord(name string, captured *time.Time, lat, lon *float64) {
	g.Records[name] = exifmeta.PhotoRecord{
		Filename:    name,
		CaptureTime: captured,
		HasGPS:      lat != nil && lon != nil,
		Lat:         lat,
		Lon:         lon,
	}
}

func (g *FakeGateway) Read(_ context.Context, path string) exifmeta.PhotoRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ReadCount++
	name := filepath.Base(path)
	if rec, ok := g.Records[name]; ok {
		rec.Filepath = path
		return rec
	}
	return exifmeta.PhotoRecord{Filename: name, Filepath: path}
}

func (g *FakeGateway) WriteGPS(_ context.Context, path string, lat, lon, ele float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	name := filepath.Base(path)
	if g.FailWrites[name] {
		return fmt.Errorf("injected write failure for %s", name)
	}
	g.Written[name] = [3]float64{lat, lon, ele}
	return nil
}

func (g *FakeGateway) Version(context.Context) (string, error) { return "12.76", nil }

func (g *FakeGateway) Close() error { return nil }

// Float returns a pointer to v, for building optional fields inline.
func Float(v float64) *float64 { return &v }

// Time returns a pointer to t.
func Time(t time.Time) *time.Time { return &t }
