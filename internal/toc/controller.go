// Package toc builds a full-depth navigation from a rendered page's
// headings, mounts it in place of the platform's shallow widget and
// keeps the entry for the reader's position highlighted.
//
// Everything runs on the goroutine that drives the dom.Document.
package toc

import (
	"errors"
	"log/slog"

	"github.com/dgallion1/deeptoc/internal/dom"
)

// StyleID is the id of the injected style element.
const StyleID = "deeptoc-style"

// Controller sequences collection, synthesis, mounting, binding and
// tracking for one document.
type Controller struct {
	doc      dom.Document
	settings *Settings
	log      *slog.Logger
	tracker  *Tracker

	initialized bool
	entries     []Entry
}

// NewController returns a controller for doc. settings is read afresh
// on every use.
func NewController(doc dom.Document, settings *Settings, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		doc:      doc,
		settings: settings,
		log:      log,
		tracker:  NewTracker(doc, settings),
	}
}

// Settings returns the live settings record.
func (c *Controller) Settings() *Settings { return c.settings }

// Tracker returns the scroll tracker.
func (c *Controller) Tracker() *Tracker { return c.tracker }

// Entries returns the entries of the last successful generation.
func (c *Controller) Entries() []Entry { return c.entries }

// Init injects the stylesheet once, subscribes to scroll and generates
// the navigation. Before the document is ready the work is deferred
// until it is. Later calls are no-ops.
func (c *Controller) Init() {
	if c.initialized {
		return
	}
	c.initialized = true
	c.doc.OnReady(func() {
		c.injectStyle()
		c.tracker.Start()
		c.generate()
	})
}

// Refresh tears down and regenerates the navigation. On a controller
// that was never initialised it performs Init instead.
func (c *Controller) Refresh() {
	if !c.initialized {
		c.Init()
		return
	}
	if !c.doc.Ready() {
		c.log.Info("document not ready, refresh deferred")
		c.doc.OnReady(c.generate)
		return
	}
	c.generate()
}

// Remove detaches the navigation and restores the native widget. The
// stylesheet stays. Safe to call repeatedly.
func (c *Controller) Remove() {
	Unmount(c.doc)
	c.entries = nil
	c.tracker.UpdateElements()
}

// UpdateElements re-reads the links and headings the tracker follows
// and re-evaluates the active entry.
func (c *Controller) UpdateElements() {
	c.tracker.UpdateElements()
	c.tracker.Evaluate()
}

func (c *Controller) generate() {
	c.Remove()

	opts := c.settings.Snapshot()
	headings, err := Collect(c.doc, opts)
	switch {
	case errors.Is(err, ErrNoContent):
		c.log.Info("content region not found, navigation skipped", "selectors", opts.ContentSelectors)
		return
	case errors.Is(err, ErrNoHeadings):
		c.log.Info("no headings found, navigation skipped")
		return
	case err != nil:
		c.log.Warn("collect headings", "error", err)
		return
	}
	resolveAnchors(headings)

	entries := Synthesize(headings)
	markup, err := Markup(opts.Title, entries)
	if err != nil {
		c.log.Warn("synthesize navigation", "error", err)
		return
	}
	nav, err := c.doc.Fragment(markup)
	if err != nil {
		c.log.Warn("build navigation fragment", "error", err)
		return
	}
	if !Mount(c.doc, opts, nav) {
		c.log.Info("native widget not found, navigation not mounted", "selectors", opts.WidgetSelectors)
		return
	}
	c.entries = entries

	Bind(c.doc, c.settings, nav.QueryAll(linkSelector), c.log)
	c.tracker.UpdateElements()
	c.tracker.Evaluate()
	c.log.Debug("navigation generated", "entries", len(entries))
}

func (c *Controller) injectStyle() {
	if c.doc.ByID(StyleID) != nil {
		return
	}
	head := c.doc.Head()
	if head == nil {
		c.log.Info("document has no head, stylesheet not injected")
		return
	}
	style, err := c.doc.Fragment(`<style id="` + StyleID + `">` + stylesheet + `</style>`)
	if err != nil {
		c.log.Warn("build stylesheet", "error", err)
		return
	}
	head.AppendChild(style)
}
