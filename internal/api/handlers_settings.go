package api

import (
	"net/http"

	"github.com/dgallion1/deeptoc/internal/config"
	"github.com/dgallion1/deeptoc/internal/toc"
	"github.com/goccy/go-json"
)

type settingsResponse struct {
	Generation uint64      `json:"generation"`
	Settings   toc.Options `json:"settings"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.currentSettings())
}

// handlePutSettings replaces the live navigation settings. Fields left
// out of the body keep their current values. The change is seen by the
// next regeneration or scroll evaluation; cached pages built with the
// old settings are rebuilt on their next request.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)

	opts := s.settings.Snapshot()
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		jsonError(w, "invalid settings: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := config.ValidateNav(opts); err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.settings.Replace(opts)
	s.log.Info("navigation settings updated", "generation", s.settings.Generation())
	writeJSON(w, http.StatusOK, s.currentSettings())
}

func (s *Server) currentSettings() settingsResponse {
	return settingsResponse{
		Generation: s.settings.Generation(),
		Settings:   s.settings.Snapshot(),
	}
}
