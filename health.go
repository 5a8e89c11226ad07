package geotag

import "net/http"

type healthResponse struct {
	Status       string `json:"status"`
	GPXAvailable bool   `json:"gpx_available"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		GPXAvailable: dirExists(s.cfg.GPXDir()),
	})
}
