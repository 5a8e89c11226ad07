package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/phototrail/geotag/exifmeta"
	"github.com/phototrail/geotag/tests/helpers"
)

// stubExiftool writes an executable that reports a version for "-ver" but
// hangs when started in stay-open mode, simulating a wedged process.
func stubExiftool(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub requires a shell script")
	}
	script := `#!/bin/sh
if [ "$1" = "-ver" ]; then
  echo "12.76"
  exit 0
fi
sleep 30
`
	path := filepath.Join(t.TempDir(), "exiftool")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExifTool_HungProcessDegradesAndRecovers(t *testing.T) {
	bin := stubExiftool(t)
	gw := exifmeta.NewExifTool(bin, 500*time.Millisecond, time.UTC)
	defer gw.Close()
	ctx := context.Background()

	ver, err := gw.Version(ctx)
	if err != nil || ver != "12.76" {
		t.Fatalf("Version() = %q, %v", ver, err)
	}

	photo := helpers.TouchFile(t, t.TempDir(), "a.jpg")

	// A hung extraction degrades to an all-absent record within the
	// deadline instead of stalling the batch.
	start := time.Now()
	rec := gw.Read(ctx, photo)
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("Read took %s, deadline not enforced", elapsed)
	}
	if rec.CaptureTime != nil || rec.HasGPS || rec.Filename != "a.jpg" {
		t.Errorf("expected degraded record, got %+v", rec)
	}

	// The abandoned process must not wedge the gateway: the next call gets
	// a fresh one and hits the deadline again rather than blocking forever.
	start = time.Now()
	rec = gw.Read(ctx, photo)
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("second Read took %s after respawn", elapsed)
	}
	if rec.CaptureTime != nil || rec.HasGPS {
		t.Errorf("expected degraded record on second read, got %+v", rec)
	}
}

func TestExifTool_HungWriteReturnsTimeout(t *testing.T) {
	bin := stubExiftool(t)
	gw := exifmeta.NewExifTool(bin, 500*time.Millisecond, time.UTC)
	defer gw.Close()

	photo := helpers.TouchFile(t, t.TempDir(), "b.jpg")
	err := gw.WriteGPS(context.Background(), photo, 1.0, 2.0, 3.0)
	if !errors.Is(err, exifmeta.ErrToolTimeout) {
		t.Errorf("err = %v, want ErrToolTimeout", err)
	}
}

func TestExifTool_CancelledContext(t *testing.T) {
	bin := stubExiftool(t)
	gw := exifmeta.NewExifTool(bin, time.Minute, time.UTC)
	defer gw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	photo := helpers.TouchFile(t, t.TempDir(), "c.jpg")
	err := gw.WriteGPS(ctx, photo, 1.0, 2.0, 3.0)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
}
