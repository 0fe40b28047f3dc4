package api

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/dgallion1/deeptoc/internal/augment"
	"github.com/dgallion1/deeptoc/internal/session"
	"github.com/dgallion1/deeptoc/internal/toc"
	"github.com/dgallion1/deeptoc/internal/upstream"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// outlineResponse is the body of GET /api/outline/*.
type outlineResponse struct {
	Path    string         `json:"path"`
	Title   string         `json:"title"`
	Entries []outlineEntry `json:"entries"`
}

type outlineEntry struct {
	toc.Entry
	Breadcrumb []string `json:"breadcrumb"`
}

// augmented returns the page at path with the navigation mounted,
// building and caching it on a miss. Cached pages are tied to the
// settings generation they were built with.
func (s *Server) augmented(ctx context.Context, path string) (*augment.Result, error) {
	gen := s.settings.Generation()
	if res, ok := s.cache.Get(path, gen); ok {
		return res, nil
	}

	src, err := s.source.FetchPage(ctx, path)
	if err != nil {
		return nil, err
	}
	res, err := augment.Page(bytes.NewReader(src), s.settings, s.log.With("page", path), augment.Options{
		ClientScript: "/static/deeptoc.js",
		SessionURL:   "/ws/pages/" + path,
	})
	if err != nil {
		return nil, err
	}
	s.cache.Put(path, gen, res)
	return res, nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	path := pagePath(r)
	res, err := s.augmented(r.Context(), path)
	if err != nil {
		s.sourceError(w, path, err)
		return
	}

	w.Header().Set("ETag", res.ETag)
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, res.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(res.HTML)
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	path := pagePath(r)
	res, err := s.augmented(r.Context(), path)
	if err != nil {
		s.sourceError(w, path, err)
		return
	}
	entries := make([]outlineEntry, len(res.Entries))
	for i, bc := range toc.Breadcrumbs(res.Entries) {
		entries[i] = outlineEntry{Entry: res.Entries[i], Breadcrumb: bc}
	}
	writeJSON(w, http.StatusOK, outlineResponse{
		Path:    path,
		Title:   s.settings.Snapshot().Title,
		Entries: entries,
	})
}

// handleSession upgrades to a websocket and runs a live view of the
// page until the client leaves or the server shuts down.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	path := pagePath(r)
	res, err := s.augmented(r.Context(), path)
	if err != nil {
		s.sourceError(w, path, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	sess, err := session.New(res.HTML, s.settings, s.log.With("page", path))
	if err != nil {
		s.log.Error("start session", "page", path, "error", err)
		return
	}
	s.log.Info("session started", "session", sess.ID, "page", path)
	if err := sess.Run(s.ctx, conn, s.cfg.FrameInterval); err != nil {
		s.log.Warn("session ended", "session", sess.ID, "error", err)
		return
	}
	s.log.Info("session ended", "session", sess.ID)
}

func (s *Server) sourceError(w http.ResponseWriter, path string, err error) {
	var statusErr *upstream.StatusError
	switch {
	case errors.Is(err, upstream.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		jsonError(w, "page not found: "+path, http.StatusNotFound)
	case errors.As(err, &statusErr):
		s.log.Warn("upstream error", "page", path, "status", statusErr.Status)
		jsonError(w, "upstream returned status "+http.StatusText(statusErr.Status), http.StatusBadGateway)
	case errors.Is(err, context.Canceled):
		jsonError(w, "request canceled", http.StatusServiceUnavailable)
	default:
		s.log.Error("page failed", "page", path, "error", err)
		jsonError(w, "failed to load page: "+err.Error(), http.StatusBadGateway)
	}
}

func pagePath(r *http.Request) string {
	return strings.TrimPrefix(chi.URLParam(r, "*"), "/")
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
