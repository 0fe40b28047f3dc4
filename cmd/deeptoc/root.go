package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/deeptoc/internal/augment"
	"github.com/dgallion1/deeptoc/internal/config"
	"github.com/dgallion1/deeptoc/internal/parser"
	"github.com/dgallion1/deeptoc/internal/toc"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	title   string
	offset  float64
)

var rootCmd = &cobra.Command{
	Use:   "deeptoc",
	Short: "Full-depth navigation for rendered documentation pages",
	Long: `deeptoc collects every heading of a page's content region, builds a
flat indented navigation from them and mounts it in place of the page's
shallow native table of contents.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "deeptoc.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&title, "title", "", "navigation title (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&offset, "offset", -1, "scroll offset in pixels (overrides config)")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadSettings reads the navigation section of the config file and
// applies flag overrides.
func loadSettings() (*toc.Settings, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	opts := cfg.Nav
	if title != "" {
		opts.Title = title
	}
	if offset >= 0 {
		opts.ScrollOffset = offset
	}
	if err := config.ValidateNav(opts); err != nil {
		return nil, err
	}
	return toc.NewSettings(opts), nil
}

// augmentFile renders a source document into a page and mounts the
// navigation on it.
func augmentFile(path string) (*augment.Result, error) {
	if !parser.IsSupportedExtension(path) {
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	r, err := parser.ForFile(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	page, err := r.Render(bytes.NewReader(data), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", path, err)
	}
	log := newLogger().With("file", path)
	return augment.Page(bytes.NewReader(page), settings, log, augment.Options{})
}
