package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dgallion1/deeptoc/internal/toc"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides: DEEPTOC_UPSTREAM_URL sets
// upstream_url, DEEPTOC_NAV__TITLE sets nav.title.
const EnvPrefix = "DEEPTOC_"

type Config struct {
	Port string `koanf:"port" yaml:"port"`

	// Content platform
	UpstreamURL    string `koanf:"upstream_url" yaml:"upstream_url"`
	UpstreamAPIKey string `koanf:"upstream_api_key" yaml:"upstream_api_key"`

	// Local pages, used instead of the platform when set.
	SourceDir string `koanf:"source_dir" yaml:"source_dir"`

	// Auth for mutating endpoints
	APIKey string `koanf:"api_key" yaml:"api_key"`

	MaxPageBytes  int64         `koanf:"max_page_bytes" yaml:"max_page_bytes"`
	CacheTTL      time.Duration `koanf:"cache_ttl" yaml:"cache_ttl"`
	FrameInterval time.Duration `koanf:"frame_interval" yaml:"frame_interval"`

	CORSOrigins []string `koanf:"cors_origins" yaml:"cors_origins"`

	Nav toc.Options `koanf:"nav" yaml:"nav"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() Config {
	return Config{
		Port:          "8090",
		MaxPageBytes:  10 << 20,
		CacheTTL:      10 * time.Minute,
		FrameInterval: 16 * time.Millisecond,
		CORSOrigins:   []string{"*"},
		Nav:           toc.DefaultOptions(),
	}
}

// Load reads defaults, then the YAML file at path if it exists, then
// DEEPTOC_* environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return cfg, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.UpstreamURL == "" && c.SourceDir == "" {
		return fmt.Errorf("one of upstream_url or source_dir is required")
	}
	if c.SourceDir != "" {
		info, err := os.Stat(c.SourceDir)
		if err != nil {
			return fmt.Errorf("source_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("source_dir %s is not a directory", c.SourceDir)
		}
	}
	if c.MaxPageBytes <= 0 {
		return fmt.Errorf("max_page_bytes must be positive")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be non-negative")
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame_interval must be positive")
	}
	return ValidateNav(c.Nav)
}

// ValidateNav rejects navigation settings the engine cannot work with.
func ValidateNav(o toc.Options) error {
	if len(o.ContentSelectors) == 0 {
		return fmt.Errorf("nav.content_selectors must not be empty")
	}
	if len(o.WidgetSelectors) == 0 {
		return fmt.Errorf("nav.widget_selectors must not be empty")
	}
	if o.ScrollOffset < 0 {
		return fmt.Errorf("nav.scroll_offset must be non-negative")
	}
	return nil
}
