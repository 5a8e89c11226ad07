package photo

import (
	"os"
	"path/filepath"
	"strings"
)

// imageExtensions are the photo formats the matcher will consider.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".heic": true, ".heif": true, ".png": true,
	".tiff": true, ".tif": true, ".dng": true, ".arw": true, ".cr2": true, ".nef": true,
}

// reservedDirs are conventional subdirectories of a photo directory that
// never contain photos to process.
var reservedDirs = map[string]bool{
	"gpx": true, "no_gps": true, "static": true, "templates": true, "node_modules": true,
}

// FindImages lists the image files directly inside dir, sorted by filename.
// Reserved subdirectories and non-image entries are skipped; the walk is
// not recursive.
func FindImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || reservedDirs[strings.ToLower(name)] {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(name))] {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}
