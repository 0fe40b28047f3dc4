package api

import (
	_ "embed"
	"net/http"
)

//go:embed static/deeptoc.js
var clientScript []byte

// handleClientScript serves the embedded live-session client.
func (s *Server) handleClientScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Write(clientScript)
}
