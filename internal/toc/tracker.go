package toc

import (
	"github.com/dgallion1/deeptoc/internal/dom"
)

const (
	// activationTolerance is added to the scroll offset when deciding
	// whether a heading's start has been passed.
	activationTolerance = 10
	// panelMargin is kept between a revealed link and the panel edge.
	panelMargin = 10
)

// Tracker keeps the active navigation link in step with the page
// scroll position.
type Tracker struct {
	doc      dom.Document
	settings *Settings
	sched    *Coalescer

	panel    dom.Element
	links    []dom.Element
	headings []dom.Element
	active   int

	unsubscribe func()
}

// NewTracker returns an idle tracker with no elements.
func NewTracker(doc dom.Document, settings *Settings) *Tracker {
	t := &Tracker{doc: doc, settings: settings, active: -1}
	t.sched = NewCoalescer(doc.RequestFrame, t.Evaluate)
	return t
}

// Start subscribes to page scroll. Bursts of scroll events collapse
// into one evaluation per frame. Calling Start again is a no-op.
func (t *Tracker) Start() {
	if t.unsubscribe != nil {
		return
	}
	t.unsubscribe = t.doc.OnScroll(t.sched.Signal)
}

// Stop unsubscribes from page scroll.
func (t *Tracker) Stop() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

// UpdateElements re-reads the navigation links and their headings from
// the document. Links whose heading is missing are skipped.
func (t *Tracker) UpdateElements() {
	t.panel, t.links, t.headings = nil, nil, nil
	t.active = -1

	nav := t.doc.ByID(ContainerID)
	if nav == nil {
		return
	}
	t.panel = nav
	for _, link := range nav.QueryAll(linkSelector) {
		target, _ := link.Attr(targetAttr)
		heading := t.doc.ByID(target)
		if heading == nil {
			continue
		}
		t.links = append(t.links, link)
		t.headings = append(t.headings, heading)
	}
}

// Len reports how many headings are tracked.
func (t *Tracker) Len() int { return len(t.headings) }

// Active returns the target id of the active link, or "" when none.
func (t *Tracker) Active() string {
	if t.active < 0 || t.active >= len(t.links) {
		return ""
	}
	target, _ := t.links[t.active].Attr(targetAttr)
	return target
}

// ActiveIndex picks the last heading whose top is at or above
// scrollTop+threshold, or the first heading when none is.
func ActiveIndex(tops []float64, scrollTop, threshold float64) int {
	for i := len(tops) - 1; i >= 0; i-- {
		if tops[i] <= scrollTop+threshold {
			return i
		}
	}
	return 0
}

// Evaluate recomputes the active heading from the current scroll
// position and settings.
func (t *Tracker) Evaluate() {
	if len(t.headings) == 0 {
		return
	}
	tops := make([]float64, len(t.headings))
	for i, h := range t.headings {
		tops[i] = h.Rect().Top
	}
	threshold := t.settings.Snapshot().ScrollOffset + activationTolerance
	idx := ActiveIndex(tops, t.doc.ScrollY(), threshold)
	if idx == t.active {
		return
	}
	t.activate(idx)
}

func (t *Tracker) activate(idx int) {
	for _, link := range t.links {
		link.RemoveClass(activeClass)
	}
	link := t.links[idx]
	link.AddClass(activeClass)
	t.active = idx
	t.reveal(link)
}

// reveal scrolls the panel, never the page, so link is fully visible.
func (t *Tracker) reveal(link dom.Element) {
	if t.panel == nil {
		return
	}
	panel := t.panel.Rect()
	if panel.Height <= 0 {
		return
	}
	lr := link.Rect()
	top := lr.Top - panel.Top
	bottom := top + lr.Height
	scroll := t.panel.ScrollTop()

	switch {
	case top < scroll:
		t.panel.ScrollTo(top-panelMargin, true)
	case bottom > scroll+panel.Height:
		t.panel.ScrollTo(bottom-panel.Height+panelMargin, true)
	}
}
