package unit

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/phototrail/geotag/photo"
	"github.com/phototrail/geotag/tests/helpers"
)

func TestFindImages_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()

	helpers.TouchFile(t, dir, "IMG_2.jpg")
	helpers.TouchFile(t, dir, "IMG_1.png")
	helpers.TouchFile(t, dir, "UPPER.JPG")
	helpers.TouchFile(t, dir, "raw.dng")
	helpers.TouchFile(t, dir, "notes.txt")
	helpers.TouchFile(t, dir, "track.gpx")
	for _, sub := range []string{"gpx", "no_gps", "static"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
		helpers.TouchFile(t, filepath.Join(dir, sub), "nested.jpg")
	}

	files, err := photo.FindImages(dir)
	if err != nil {
		t.Fatalf("FindImages: %v", err)
	}
	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	want := []string{"IMG_1.png", "IMG_2.jpg", "UPPER.JPG", "raw.dng"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("file %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFindImages_MissingDirectory(t *testing.T) {
	if _, err := photo.FindImages(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func writeTestImage(t *testing.T, path string, w, h int, encode func(*os.File, image.Image) error) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestThumbnail_BoundsLongerSide(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wide.jpg")
	writeTestImage(t, path, 400, 100, func(f *os.File, img image.Image) error {
		return jpeg.Encode(f, img, nil)
	})

	thumb, err := photo.Thumbnail(path, 200, 70)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(thumb)
	if err != nil {
		t.Fatalf("thumbnail is not valid base64: %v", err)
	}
	decoded, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("thumbnail is not a JPEG: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 200 || b.Dy() != 50 {
		t.Errorf("thumbnail size = %dx%d, want 200x50", b.Dx(), b.Dy())
	}
}

func TestThumbnail_SmallImagePassesThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.png")
	writeTestImage(t, path, 50, 80, func(f *os.File, img image.Image) error {
		return png.Encode(f, img)
	})

	thumb, err := photo.Thumbnail(path, 200, 70)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	raw, _ := base64.StdEncoding.DecodeString(thumb)
	decoded, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("thumbnail is not a JPEG: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 50 || b.Dy() != 80 {
		t.Errorf("thumbnail size = %dx%d, want 50x80", b.Dx(), b.Dy())
	}
}

func TestThumbnail_UndecodableFile(t *testing.T) {
	dir := t.TempDir()
	path := helpers.TouchFile(t, dir, "photo.heic")
	if _, err := photo.Thumbnail(path, 200, 70); err == nil {
		t.Error("expected error for undecodable format")
	}
}
