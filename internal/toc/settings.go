package toc

import (
	"slices"
	"sync"
)

// Version identifies the navigation engine.
const Version = "1.4.0"

// Options is a point-in-time copy of the navigation settings.
type Options struct {
	// ContentSelectors locate the content region; the first selector
	// that matches wins.
	ContentSelectors []string `json:"content_selectors" koanf:"content_selectors" yaml:"content_selectors"`
	// WidgetSelectors locate the platform's native navigation widget.
	WidgetSelectors []string `json:"widget_selectors" koanf:"widget_selectors" yaml:"widget_selectors"`
	Title           string   `json:"title" koanf:"title" yaml:"title"`
	// ScrollOffset is the distance in pixels between the viewport top
	// and a heading scrolled to by a click.
	ScrollOffset float64 `json:"scroll_offset" koanf:"scroll_offset" yaml:"scroll_offset"`
	// ExcludeClass marks containers whose headings are left out.
	ExcludeClass string `json:"exclude_class" koanf:"exclude_class" yaml:"exclude_class"`
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ContentSelectors: []string{".wiki-content", "#main-content", "article", "main", "body"},
		WidgetSelectors:  []string{".toc-macro", "#toc", "nav.toc"},
		Title:            "Contents",
		ScrollOffset:     80,
		ExcludeClass:     "tabs-container",
	}
}

func (o Options) clone() Options {
	o.ContentSelectors = slices.Clone(o.ContentSelectors)
	o.WidgetSelectors = slices.Clone(o.WidgetSelectors)
	return o
}

// Settings is the live, shared navigation configuration. Components
// hold a *Settings and take a Snapshot each time they need a value, so
// a change is seen by the next regeneration or scroll evaluation.
type Settings struct {
	mu         sync.RWMutex
	opts       Options
	generation uint64
}

// NewSettings returns settings initialised to opts.
func NewSettings(opts Options) *Settings {
	return &Settings{opts: opts.clone()}
}

// Snapshot returns a copy of the current options.
func (s *Settings) Snapshot() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts.clone()
}

// Replace swaps in a new set of options.
func (s *Settings) Replace(opts Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts.clone()
	s.generation++
}

// Update applies fn to the current options under the write lock.
func (s *Settings) Update(fn func(*Options)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.opts)
	s.generation++
}

// Generation increases on every change.
func (s *Settings) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}
