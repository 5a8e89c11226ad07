package geotag

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/paulmach/orb/geojson"

	"github.com/phototrail/geotag/track"
)

// NewMux wires the web API routes around a Service. Exported so tests can
// drive the handlers without a listening socket.
func NewMux(s *Service) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/scan", s.handleScan)
	mux.HandleFunc("GET /api/gpx-track", s.handleGPXTrack)
	mux.HandleFunc("GET /api/thumbnail/{filename}", s.handleThumbnail)
	mux.HandleFunc("GET /api/photo/{filename}", s.handlePhoto)
	mux.HandleFunc("POST /api/auto-geotag", s.handleAutoGeotag)
	mux.HandleFunc("POST /api/manual-geotag", s.handleManualGeotag)
	mux.HandleFunc("POST /api/batch-manual-geotag", s.handleBatchManualGeotag)
	return mux
}

type autoGeotagRequest struct {
	Filenames []string `json:"filenames"`
	MaxGap    int      `json:"max_gap"`
}

type batchManualGeotagRequest struct {
	Items []ManualTagItem `json:"items"`
}

func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Status(r.Context()))
}

func (s *Service) handleScan(w http.ResponseWriter, r *http.Request) {
	maxGap := 0
	if v := r.URL.Query().Get("max_gap"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid max_gap")
			return
		}
		maxGap = n
	}
	rep, err := s.Scan(r.Context(), s.MaxGap(maxGap))
	if err != nil {
		// A missing photo directory is server-side state, not a bad request.
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Service) handleGPXTrack(w http.ResponseWriter, r *http.Request) {
	fc := geojson.NewFeatureCollection()
	if dirExists(s.cfg.GPXDir()) {
		loaded, err := track.GeoJSON(s.cfg.GPXDir())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		fc = loaded
	}
	writeJSON(w, http.StatusOK, fc)
}

func (s *Service) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	thumb, err := s.Thumbnail(filename)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "thumbnail generation failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"thumbnail": thumb})
}

func (s *Service) handlePhoto(w http.ResponseWriter, r *http.Request) {
	path, err := s.PhotoPath(r.PathValue("filename"))
	if err != nil {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	http.ServeFile(w, r, path)
}

func (s *Service) handleAutoGeotag(w http.ResponseWriter, r *http.Request) {
	var req autoGeotagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rep, err := s.TagBatch(r.Context(), req.Filenames, s.MaxGap(req.MaxGap))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Service) handleManualGeotag(w http.ResponseWriter, r *http.Request) {
	var item ManualTagItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.ManualTag(r.Context(), item); err != nil {
		if errors.Is(err, ErrFileNotFound) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "GPS write failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"filename": item.Filename,
		"lat":      item.Lat,
		"lon":      item.Lon,
	})
}

func (s *Service) handleBatchManualGeotag(w http.ResponseWriter, r *http.Request) {
	var req batchManualGeotagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, s.ManualTagBatch(r.Context(), req.Items))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
