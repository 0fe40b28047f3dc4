package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/deeptoc/internal/api"
	"github.com/dgallion1/deeptoc/internal/config"
	"github.com/dgallion1/deeptoc/internal/pagecache"
	"github.com/dgallion1/deeptoc/internal/parser"
	"github.com/dgallion1/deeptoc/internal/toc"
	"github.com/dgallion1/deeptoc/internal/upstream"
	"golang.org/x/sync/errgroup"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	configPath := os.Getenv("DEEPTOC_CONFIG")
	if configPath == "" {
		configPath = "deeptoc.yml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error("load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Page source: a local directory wins over the platform.
	var source api.PageSource
	if cfg.SourceDir != "" {
		source = parser.NewDir(cfg.SourceDir, cfg.MaxPageBytes)
		log.Info("serving local pages", "dir", cfg.SourceDir)
	} else {
		client := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamAPIKey, cfg.MaxPageBytes)
		defer client.Close()
		source = client
		log.Info("serving platform pages", "upstream", cfg.UpstreamURL)
	}

	settings := toc.NewSettings(cfg.Nav)
	cache := pagecache.New(cfg.CacheTTL)
	srv := api.NewServer(ctx, source, cache, settings, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting deeptoc", "port", cfg.Port, "version", toc.Version)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return cache.Run(gctx, time.Minute)
	})
	if _, err := os.Stat(configPath); err == nil {
		g.Go(func() error {
			return config.Watch(gctx, configPath, settings, config.DefaultDebounce, log)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
