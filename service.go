package geotag

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"github.com/phototrail/geotag/config"
	"github.com/phototrail/geotag/exifmeta"
	"github.com/phototrail/geotag/match"
	"github.com/phototrail/geotag/photo"
	"github.com/phototrail/geotag/track"
)

// ErrFileNotFound is returned when a named photo does not exist in the
// photo directory.
var ErrFileNotFound = errors.New("file not found")

// ErrNoTrackpoints is returned when a tagging operation finds no usable
// track data; it aborts before any file is mutated.
var ErrNoTrackpoints = errors.New("no trackpoints loaded")

// Per-file reason codes reported by tagging operations.
const (
	ReasonFileNotFound   = "file not found"
	ReasonGPSPresent     = "GPS already present"
	ReasonNoTimestamp    = "no timestamp"
	ReasonNoMatch        = "no match"
	ReasonWriteSucceeded = "write succeeded"
	ReasonWriteFailed    = "write failed"
)

// Service is the core facade consumed by both the CLI and the HTTP layer.
// The track timeline is rebuilt fresh for every scan or tag operation;
// nothing is cached across calls.
type Service struct {
	cfg     config.AppConfig
	gateway exifmeta.Gateway
}

// NewService builds a Service around an explicit configuration and a
// metadata gateway.
func NewService(cfg config.AppConfig, gateway exifmeta.Gateway) *Service {
	return &Service{cfg: cfg, gateway: gateway}
}

// Config exposes the configuration the service was built with.
func (s *Service) Config() config.AppConfig { return s.cfg }

// MaxGap resolves a per-request gap override (seconds); zero or negative
// falls back to the configured default.
func (s *Service) MaxGap(overrideSeconds int) time.Duration {
	if overrideSeconds > 0 {
		return time.Duration(overrideSeconds) * time.Second
	}
	return time.Duration(s.cfg.Match.MaxGapSeconds) * time.Second
}

// PhotoView is the per-photo entry of a scan report. Field names are the
// wire format consumed by the web UI.
type PhotoView struct {
	Filename   string        `json:"filename"`
	Time       string        `json:"time,omitempty"`
	HasGPS     bool          `json:"has_gps"`
	Lat        *float64      `json:"lat,omitempty"`
	Lon        *float64      `json:"lon,omitempty"`
	Status     match.Outcome `json:"status"`
	MatchedLat *float64      `json:"matched_lat,omitempty"`
	MatchedLon *float64      `json:"matched_lon,omitempty"`
	MatchedEle *float64      `json:"matched_ele,omitempty"`
}

// ScanReport is the result of one scan pass over the photo directory.
type ScanReport struct {
	RequestID       string                     `json:"request_id"`
	Photos          []PhotoView                `json:"photos"`
	TrackGeoJSON    *geojson.FeatureCollection `json:"gpx_geojson"`
	TrackpointCount int                        `json:"trackpoint_count"`
	TrackAvailable  bool                       `json:"gpx_available"`
}

// TagResult is the per-file outcome of a tagging operation.
type TagResult struct {
	Filename string   `json:"filename"`
	Success  bool     `json:"success"`
	Reason   string   `json:"reason"`
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
	Ele      *float64 `json:"ele,omitempty"`
}

// TagReport groups the per-file outcomes of one batch.
type TagReport struct {
	RequestID string      `json:"request_id"`
	Results   []TagResult `json:"results"`
}

// ManualTagItem is one manual position assignment.
type ManualTagItem struct {
	Filename string  `json:"filename"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Ele      float64 `json:"ele"`
}

// StatusReport describes the service's environment.
type StatusReport struct {
	PhotoDir        string `json:"photo_dir"`
	GPXDir          string `json:"gpx_dir"`
	GPXAvailable    bool   `json:"gpx_available"`
	ExiftoolOK      bool   `json:"exiftool_ok"`
	ExiftoolVersion string `json:"exiftool_version,omitempty"`
}

// Status reports directory layout and external tool availability.
func (s *Service) Status(ctx context.Context) StatusReport {
	rep := StatusReport{
		PhotoDir:     s.cfg.Photos.Dir,
		GPXDir:       s.cfg.GPXDir(),
		GPXAvailable: dirExists(s.cfg.GPXDir()),
	}
	if ver, err := s.gateway.Version(ctx); err == nil {
		rep.ExiftoolOK = true
		rep.ExiftoolVersion = ver
	}
	return rep
}

// Scan reads metadata for every photo in the directory, matches each
// against a freshly loaded timeline and classifies the outcome. Nothing is
// written; running Scan twice on an unmodified directory yields identical
// classifications.
func (s *Service) Scan(ctx context.Context, maxGap time.Duration) (ScanReport, error) {
	files, err := photo.FindImages(s.cfg.Photos.Dir)
	if err != nil {
		return ScanReport{}, err
	}

	rep := ScanReport{
		RequestID:    uuid.NewString(),
		TrackGeoJSON: geojson.NewFeatureCollection(),
	}

	var tl track.Timeline
	gpxDir := s.cfg.GPXDir()
	if dirExists(gpxDir) {
		rep.TrackAvailable = true
		if tl, err = track.LoadTimeline(gpxDir); err != nil {
			return ScanReport{}, err
		}
		if fc, err := track.GeoJSON(gpxDir); err == nil {
			rep.TrackGeoJSON = fc
		}
	}
	rep.TrackpointCount = len(tl)

	records := s.readAll(ctx, files)
	results := match.Batch(records, tl, maxGap)

	rep.Photos = make([]PhotoView, len(results))
	for i, res := range results {
		rep.Photos[i] = toView(res)
	}
	return rep, nil
}

// TagBatch matches the named photos against the timeline and writes the
// computed positions into their metadata. Setup failures (no track
// directory, empty timeline) abort before any mutation; per-file failures
// never abort the rest of the batch.
func (s *Service) TagBatch(ctx context.Context, filenames []string, maxGap time.Duration) (TagReport, error) {
	gpxDir := s.cfg.GPXDir()
	if !dirExists(gpxDir) {
		return TagReport{}, ErrNoTrackpoints
	}
	tl, err := track.LoadTimeline(gpxDir)
	if err != nil {
		return TagReport{}, err
	}
	if len(tl) == 0 {
		return TagReport{}, ErrNoTrackpoints
	}

	rep := TagReport{
		RequestID: uuid.NewString(),
		Results:   make([]TagResult, len(filenames)),
	}
	s.forEach(len(filenames), func(i int) {
		rep.Results[i] = s.tagOne(ctx, filenames[i], tl, maxGap)
	})
	return rep, nil
}

func (s *Service) tagOne(ctx context.Context, filename string, tl track.Timeline, maxGap time.Duration) TagResult {
	res := TagResult{Filename: filename}

	path, err := s.PhotoPath(filename)
	if err != nil {
		res.Reason = ReasonFileNotFound
		return res
	}

	rec := s.gateway.Read(ctx, path)
	switch m := match.Classify(rec, tl, maxGap); m.Outcome {
	case match.OutcomeHasGPS:
		res.Reason = ReasonGPSPresent
		res.Lat, res.Lon = rec.Lat, rec.Lon
	case match.OutcomeNoTimestamp:
		res.Reason = ReasonNoTimestamp
	case match.OutcomeNoMatch:
		res.Reason = ReasonNoMatch
	case match.OutcomeMatched:
		pos := m.Position
		if err := s.gateway.WriteGPS(ctx, path, pos.Lat, pos.Lon, pos.Ele); err != nil {
			res.Reason = ReasonWriteFailed
		} else {
			res.Success = true
			res.Reason = ReasonWriteSucceeded
		}
		res.Lat, res.Lon, res.Ele = &pos.Lat, &pos.Lon, &pos.Ele
	}
	return res
}

// ManualTag writes a user-chosen position into one photo.
func (s *Service) ManualTag(ctx context.Context, item ManualTagItem) error {
	path, err := s.PhotoPath(item.Filename)
	if err != nil {
		return err
	}
	return s.gateway.WriteGPS(ctx, path, item.Lat, item.Lon, item.Ele)
}

// ManualTagBatch applies manual positions to several photos, reporting each
// independently.
func (s *Service) ManualTagBatch(ctx context.Context, items []ManualTagItem) TagReport {
	rep := TagReport{
		RequestID: uuid.NewString(),
		Results:   make([]TagResult, len(items)),
	}
	s.forEach(len(items), func(i int) {
		item := items[i]
		res := TagResult{Filename: item.Filename, Lat: &item.Lat, Lon: &item.Lon}
		if err := s.ManualTag(ctx, item); err != nil {
			if errors.Is(err, ErrFileNotFound) {
				res.Reason = ReasonFileNotFound
			} else {
				res.Reason = ReasonWriteFailed
			}
		} else {
			res.Success = true
			res.Reason = ReasonWriteSucceeded
		}
		rep.Results[i] = res
	})
	return rep
}

// Thumbnail renders a bounded JPEG preview of the named photo, base64
// encoded.
func (s *Service) Thumbnail(filename string) (string, error) {
	path, err := s.PhotoPath(filename)
	if err != nil {
		return "", err
	}
	return photo.Thumbnail(path, s.cfg.Scan.ThumbnailPx, s.cfg.Scan.JPEGQuality)
}

// PhotoPath resolves a bare filename inside the photo directory. The name
// is reduced to its base so request paths cannot escape the directory.
func (s *Service) PhotoPath(filename string) (string, error) {
	path := filepath.Join(s.cfg.Photos.Dir, filepath.Base(filename))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", ErrFileNotFound
	}
	return path, nil
}

// readAll reads metadata for every file through a bounded worker pool and
// joins before returning; result order matches the input order.
func (s *Service) readAll(ctx context.Context, files []string) []exifmeta.PhotoRecord {
	records := make([]exifmeta.PhotoRecord, len(files))
	s.forEach(len(files), func(i int) {
		records[i] = s.gateway.Read(ctx, files[i])
	})
	return records
}

// forEach runs fn for each index through a worker pool bounded by the
// configured scan worker count, then joins. Each index owns its slot in
// the caller's result slice, so no extra synchronization is needed.
func (s *Service) forEach(n int, fn func(i int)) {
	workers := s.cfg.Scan.Workers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(i)
		}(i)
	}
	wg.Wait()
}

func toView(res match.Result) PhotoView {
	v := PhotoView{
		Filename: res.Photo.Filename,
		HasGPS:   res.Photo.HasGPS,
		Lat:      res.Photo.Lat,
		Lon:      res.Photo.Lon,
		Status:   res.Outcome,
	}
	if res.Photo.CaptureTime != nil {
		v.Time = res.Photo.CaptureTime.Format(time.RFC3339)
	}
	if res.Position != nil {
		v.MatchedLat = &res.Position.Lat
		v.MatchedLon = &res.Position.Lon
		v.MatchedEle = &res.Position.Ele
	}
	return v
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
