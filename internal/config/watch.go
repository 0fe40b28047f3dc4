package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dgallion1/deeptoc/internal/toc"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor produces for
// one save.
const DefaultDebounce = 200 * time.Millisecond

// Watch reloads the config file at path whenever it changes and pushes
// the navigation section into settings. Invalid files are logged and
// skipped so the last good settings stay live. Watch blocks until ctx
// is done.
func Watch(ctx context.Context, path string, settings *toc.Settings, debounce time.Duration, log *slog.Logger) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	// Watch the directory so atomic rename-on-save is seen.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	target := filepath.Base(abs)
	log = log.With("path", abs)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher error", "error", err)

		case <-timer.C:
			reload(abs, settings, log)
		}
	}
}

func reload(path string, settings *toc.Settings, log *slog.Logger) {
	cfg, err := Load(path)
	if err != nil {
		log.Warn("config reload failed", "error", err)
		return
	}
	if err := ValidateNav(cfg.Nav); err != nil {
		log.Warn("config reload rejected", "error", err)
		return
	}
	settings.Replace(cfg.Nav)
	log.Info("navigation settings reloaded", "generation", settings.Generation())
}
