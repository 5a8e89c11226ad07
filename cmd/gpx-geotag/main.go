package main

import (
	"flag"
	"log"
	"path/filepath"
	"time"

	geotag "github.com/phototrail/geotag"
	"github.com/phototrail/geotag/config"
	"github.com/phototrail/geotag/exifmeta"
)

func main() {
	mode := flag.String("mode", "tag", "tag|serve")
	cfgPath := flag.String("config", "", "path to config.yml")
	dir := flag.String("dir", "", "photo directory containing a gpx/ subdirectory (overrides config)")
	maxGap := flag.Int("max-gap", 0, "max interpolation gap in seconds (overrides config)")
	dryRun := flag.Bool("dry-run", false, "report matches without modifying any file")
	port := flag.Int("port", 0, "web server port (serve mode, overrides config)")
	workers := flag.Int("workers", 0, "bound on concurrent metadata reads (overrides config)")
	tz := flag.String("tz", "", "IANA timezone for photo timestamps without an offset (overrides config)")
	flag.Parse()

	geotag.InitLogging()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *dir == "" && flag.NArg() > 0 {
		*dir = flag.Arg(0)
	}
	if *dir != "" {
		cfg.Photos.Dir = *dir
	}
	if abs, err := filepath.Abs(cfg.Photos.Dir); err == nil {
		cfg.Photos.Dir = abs
	}
	if *maxGap > 0 {
		cfg.Match.MaxGapSeconds = *maxGap
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *workers > 0 {
		cfg.Scan.Workers = *workers
	}
	if *tz != "" {
		cfg.Match.Timezone = *tz
	}

	loc := time.Local
	if cfg.Match.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Match.Timezone)
		if err != nil {
			log.Fatalf("invalid timezone %q: %v", cfg.Match.Timezone, err)
		}
	}

	gateway := exifmeta.NewExifTool(
		cfg.Exiftool.Path,
		time.Duration(cfg.Exiftool.TimeoutMS)*time.Millisecond,
		loc,
	)
	defer func() { _ = gateway.Close() }()

	switch *mode {
	case "serve":
		svc := geotag.NewService(cfg, gateway)
		geotag.StartServer(svc)
		geotag.HandleGracefulShutdown()
	case "tag":
		if err := runTag(cfg, gateway, *dryRun); err != nil {
			log.Fatalf("%v", err)
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}
