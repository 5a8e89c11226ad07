package exifmeta

import (
	"context"
	"errors"
	"log"
	"math"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/barasher/go-exiftool"
)

// ErrToolTimeout is returned when an exiftool call exceeds the configured
// per-call deadline. The stay-open process is abandoned and respawned on
// the next call so one hung invocation cannot stall the rest of a batch.
var ErrToolTimeout = errors.New("exiftool call timed out")

// Tag names picked out of the extracted metadata, in preference order.
var (
	dateTags   = []string{"DateTimeOriginal", "CreateDate"}
	offsetTags = []string{"OffsetTimeOriginal", "OffsetTime"}
)

// ExifTool is a Gateway backed by a stay-open exiftool process
// (one process serves the whole batch instead of one spawn per photo).
// Calls serialize on the process pipe; concurrency above the gateway is
// still useful because decode and classification proceed in parallel.
type ExifTool struct {
	binPath string
	timeout time.Duration
	loc     *time.Location

	mu sync.Mutex
	et *exiftool.Exiftool
}

// NewExifTool builds a gateway using the exiftool binary at binPath
// ("exiftool" resolves via PATH). Naive photo timestamps are interpreted in
// loc; nil means the host's local zone.
func NewExifTool(binPath string, timeout time.Duration, loc *time.Location) *ExifTool {
	if binPath == "" {
		binPath = "exiftool"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ExifTool{binPath: binPath, timeout: timeout, loc: loc}
}

func (g *ExifTool) Read(ctx context.Context, path string) PhotoRecord {
	rec := PhotoRecord{Filename: filepath.Base(path), Filepath: path}

	var metas []exiftool.FileMetadata
	err := g.withTool(ctx, func(et *exiftool.Exiftool) {
		metas = et.ExtractMetadata(path)
	})
	if err != nil {
		log.Printf("exifmeta: read %s: %v", rec.Filename, err)
		return rec
	}
	if len(metas) == 0 || metas[0].Err != nil {
		return rec
	}
	m := metas[0]

	lat, errLat := m.GetFloat("GPSLatitude")
	lon, errLon := m.GetFloat("GPSLongitude")
	if errLat == nil && errLon == nil {
		rec.HasGPS = true
		rec.Lat = &lat
		rec.Lon = &lon
	}

	raw := firstTag(m, dateTags)
	offset := firstTag(m, offsetTags)
	if t, err := NormalizeTimestamp(raw, offset, g.loc); err == nil {
		rec.CaptureTime = &t
	}
	return rec
}

func (g *ExifTool) WriteGPS(ctx context.Context, path string, lat, lon, ele float64) error {
	latRef, lonRef := "N", "E"
	if lat < 0 {
		latRef = "S"
	}
	if lon < 0 {
		lonRef = "W"
	}
	var eleRef int64
	if ele < 0 {
		eleRef = 1
	}

	fm := exiftool.EmptyFileMetadata()
	fm.File = path
	fm.SetFloat("GPSLatitude", math.Abs(lat))
	fm.SetString("GPSLatitudeRef", latRef)
	fm.SetFloat("GPSLongitude", math.Abs(lon))
	fm.SetString("GPSLongitudeRef", lonRef)
	fm.SetFloat("GPSAltitude", math.Abs(ele))
	fm.SetInt("GPSAltitudeRef", eleRef)

	metas := []exiftool.FileMetadata{fm}
	if err := g.withTool(ctx, func(et *exiftool.Exiftool) {
		et.WriteMetadata(metas)
	}); err != nil {
		return err
	}
	return metas[0].Err
}

func (g *ExifTool) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, g.binPath, "-ver").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (g *ExifTool) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.et == nil {
		return nil
	}
	err := g.et.Close()
	g.et = nil
	return err
}

// withTool runs fn against the shared stay-open process under the per-call
// deadline. On timeout or cancellation the process is considered
// unresponsive: it is detached and closed once fn eventually returns, and a
// fresh one is spawned by the next call.
func (g *ExifTool) withTool(ctx context.Context, fn func(et *exiftool.Exiftool)) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.et == nil {
		et, err := exiftool.NewExiftool(
			exiftool.NoPrintConversion(),
			exiftool.SetExiftoolBinaryPath(g.binPath),
		)
		if err != nil {
			return err
		}
		g.et = et
	}

	et := g.et
	done := make(chan struct{})
	go func() {
		fn(et)
		close(done)
	}()

	timer := time.NewTimer(g.timeout)
	defer timer.Stop()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
	case <-timer.C:
	}

	g.et = nil
	go func() {
		<-done
		_ = et.Close()
	}()
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrToolTimeout
}

func firstTag(m exiftool.FileMetadata, keys []string) string {
	for _, k := range keys {
		if v, err := m.GetString(k); err == nil && v != "" {
			return v
		}
	}
	return ""
}
