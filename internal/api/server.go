package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dgallion1/deeptoc/internal/config"
	"github.com/dgallion1/deeptoc/internal/pagecache"
	"github.com/dgallion1/deeptoc/internal/toc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
)

// PageSource yields the rendered markup of a page. The content platform
// client and a local directory both satisfy it.
type PageSource interface {
	FetchPage(ctx context.Context, path string) ([]byte, error)
}

// Server is the HTTP API server for deeptoc.
type Server struct {
	router   chi.Router
	ctx      context.Context
	source   PageSource
	cache    *pagecache.Cache
	settings *toc.Settings
	upgrader websocket.Upgrader
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server. Live sessions end
// when ctx is done.
func NewServer(ctx context.Context, source PageSource, cache *pagecache.Cache, settings *toc.Settings, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		ctx:      ctx,
		source:   source,
		cache:    cache,
		settings: settings,
		log:      log,
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 16384,
			CheckOrigin:     OriginChecker(cfg.CORSOrigins),
		},
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/static/deeptoc.js", s.handleClientScript)
	r.Get("/pages/*", s.handlePage)
	r.Get("/ws/pages/*", s.handleSession)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "PUT", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/outline/*", s.handleOutline)
		r.Get("/settings", s.handleGetSettings)

		// Authenticated endpoints.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
			r.Put("/settings", s.handlePutSettings)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": toc.Version})
}
