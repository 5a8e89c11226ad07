package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phototrail/geotag/config"
	"github.com/phototrail/geotag/exifmeta"
	"github.com/phototrail/geotag/match"
	"github.com/phototrail/geotag/photo"
	"github.com/phototrail/geotag/track"
)

type unmatchedFile struct {
	path   string
	reason string
}

// runTag is the batch mode: match every photo in the directory and write
// positions in place, moving unmatched photos into the no_gps subdirectory.
// All setup checks run before the first file is touched.
func runTag(cfg config.AppConfig, gateway exifmeta.Gateway, dryRun bool) error {
	ctx := context.Background()
	photoDir := cfg.Photos.Dir
	gpxDir := cfg.GPXDir()
	maxGap := time.Duration(cfg.Match.MaxGapSeconds) * time.Second

	if info, err := os.Stat(photoDir); err != nil || !info.IsDir() {
		return fmt.Errorf("photo directory does not exist: %s", photoDir)
	}
	if info, err := os.Stat(gpxDir); err != nil || !info.IsDir() {
		return fmt.Errorf("track directory does not exist: %s (create it and add .gpx files)", gpxDir)
	}

	rule := strings.Repeat("=", 60)
	fmt.Println(rule)
	fmt.Println("GPX photo geotagging")
	fmt.Println(rule)
	fmt.Printf("  photo directory: %s\n", photoDir)
	fmt.Printf("  track directory: %s\n", gpxDir)
	fmt.Printf("  max gap: %s\n", maxGap)
	if dryRun {
		fmt.Println("  DRY RUN - no file will be modified")
	}
	fmt.Println()

	ver, err := gateway.Version(ctx)
	if err != nil {
		return fmt.Errorf("exiftool is not available: %w", err)
	}
	fmt.Printf("exiftool version %s\n", ver)

	timeline, err := track.LoadTimeline(gpxDir)
	if err != nil {
		return fmt.Errorf("loading tracks: %w", err)
	}
	if len(timeline) == 0 {
		return fmt.Errorf("no usable trackpoints in %s", gpxDir)
	}
	first, last, _ := timeline.Span()
	fmt.Printf("loaded %d trackpoints, %s .. %s\n",
		len(timeline), first.Format(time.RFC3339), last.Format(time.RFC3339))

	files, err := photo.FindImages(photoDir)
	if err != nil {
		return err
	}
	fmt.Printf("found %d image files\n\n", len(files))
	if len(files) == 0 {
		return nil
	}

	var tagged, hasGPS, noTime, noMatch, failed int
	var unmatched []unmatchedFile

	for i, path := range files {
		name := filepath.Base(path)
		fmt.Printf("[%d/%d] %s\n", i+1, len(files), name)

		rec := gateway.Read(ctx, path)
		res := match.Classify(rec, timeline, maxGap)
		switch res.Outcome {
		case match.OutcomeHasGPS:
			fmt.Println("    GPS already present, skipping")
			hasGPS++
		case match.OutcomeNoTimestamp:
			fmt.Println("    no capture timestamp")
			noTime++
			unmatched = append(unmatched, unmatchedFile{path, "no timestamp"})
		case match.OutcomeNoMatch:
			fmt.Println("    outside track time range or gap too large")
			noMatch++
			unmatched = append(unmatched, unmatchedFile{path, "no match"})
		case match.OutcomeMatched:
			pos := res.Position
			fmt.Printf("    -> lat %.6f, lon %.6f, ele %.1fm\n", pos.Lat, pos.Lon, pos.Ele)
			if dryRun {
				tagged++
				continue
			}
			if err := gateway.WriteGPS(ctx, path, pos.Lat, pos.Lon, pos.Ele); err != nil {
				fmt.Printf("    write failed: %v\n", err)
				failed++
			} else {
				tagged++
			}
		}
	}

	if len(unmatched) > 0 {
		noGPSDir := cfg.NoGPSDir()
		fmt.Printf("\nmoving %d unmatched photos to %s/\n", len(unmatched), filepath.Base(noGPSDir))
		if !dryRun {
			if err := os.MkdirAll(noGPSDir, 0o755); err != nil {
				return err
			}
		}
		for _, u := range unmatched {
			name := filepath.Base(u.path)
			if dryRun {
				fmt.Printf("  [dry run] %s (%s)\n", name, u.reason)
				continue
			}
			if err := os.Rename(u.path, filepath.Join(noGPSDir, name)); err != nil {
				fmt.Printf("  move failed for %s: %v\n", name, err)
			} else {
				fmt.Printf("  %s (%s)\n", name, u.reason)
			}
		}
	}

	fmt.Println()
	fmt.Println(rule)
	fmt.Printf("  total images:    %d\n", len(files))
	fmt.Printf("  already had GPS: %d\n", hasGPS)
	fmt.Printf("  tagged:          %d\n", tagged)
	fmt.Printf("  no timestamp:    %d\n", noTime)
	fmt.Printf("  no match:        %d\n", noMatch)
	if failed > 0 {
		fmt.Printf("  write failures:  %d\n", failed)
	}
	fmt.Println(rule)
	return nil
}
