// Package session mirrors a reader's page view on the server. The
// browser reports layout, scroll and clicks; the navigation engine runs
// against a server-side copy of the page and every change it makes is
// streamed back as an operation the browser replays.
package session

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/dgallion1/deeptoc/internal/dom"
	"github.com/dgallion1/deeptoc/internal/htmldoc"
	"github.com/dgallion1/deeptoc/internal/toc"
	"github.com/google/uuid"
)

// Message types sent by the browser.
const (
	MsgLayout         = "layout"
	MsgScroll         = "scroll"
	MsgClick          = "click"
	MsgRefresh        = "refresh"
	MsgRemove         = "remove"
	MsgUpdateElements = "updateElements"
)

// Rect is the box of the first element matching Selector. Heading tops
// are page coordinates; navigation link tops are measured against the
// unscrolled panel content.
type Rect struct {
	Selector string  `json:"selector"`
	Top      float64 `json:"top"`
	Height   float64 `json:"height"`
}

// ClientMessage is one browser report.
type ClientMessage struct {
	Type           string   `json:"type"`
	Rects          []Rect   `json:"rects,omitempty"`
	ScrollY        *float64 `json:"scrollY,omitempty"`
	PanelScrollTop *float64 `json:"panelScrollTop,omitempty"`
	Y              float64  `json:"y,omitempty"`
	Target         string   `json:"target,omitempty"`
}

// Hello is the first frame a client receives.
type Hello struct {
	Op      string `json:"op"`
	Session string `json:"session"`
	Version string `json:"version"`
}

// Session owns one server-side page and its navigation controller.
// Nothing in it is safe for concurrent use; Run drives it from a single
// goroutine.
type Session struct {
	ID string

	doc    *htmldoc.Document
	ctrl   *toc.Controller
	outbox []htmldoc.Mutation
	log    *slog.Logger
}

// New parses page, which is the markup the browser is showing, and
// initialises the navigation on it. Operations produced by the initial
// generation are queued for the first flush.
func New(page []byte, settings *toc.Settings, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Session{ID: uuid.NewString()}
	s.log = log.With("session", s.ID)

	doc, err := htmldoc.Parse(bytes.NewReader(page), htmldoc.WithObserver(func(m htmldoc.Mutation) {
		s.outbox = append(s.outbox, m)
	}))
	if err != nil {
		return nil, fmt.Errorf("session page: %w", err)
	}
	s.doc = doc
	s.ctrl = toc.NewController(doc, settings, s.log)
	s.ctrl.Init()
	return s, nil
}

// Document returns the server-side page.
func (s *Session) Document() *htmldoc.Document { return s.doc }

// Controller returns the navigation controller of the page.
func (s *Session) Controller() *toc.Controller { return s.ctrl }

// Apply handles one browser message.
func (s *Session) Apply(msg ClientMessage) error {
	switch msg.Type {
	case MsgLayout:
		s.applyLayout(msg)
	case MsgScroll:
		s.doc.Scroll(msg.Y)
	case MsgClick:
		link := s.link(msg.Target)
		if link == nil {
			s.log.Debug("click on unknown link", "target", msg.Target)
			return nil
		}
		s.doc.Click(link)
	case MsgRefresh:
		s.ctrl.Refresh()
	case MsgRemove:
		s.ctrl.Remove()
	case MsgUpdateElements:
		s.ctrl.UpdateElements()
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

// Tick runs one animation frame.
func (s *Session) Tick() int {
	return s.doc.Frame()
}

// Drain returns and clears the queued operations.
func (s *Session) Drain() []htmldoc.Mutation {
	out := s.outbox
	s.outbox = nil
	return out
}

func (s *Session) applyLayout(msg ClientMessage) {
	missed := 0
	for _, r := range msg.Rects {
		if !s.doc.SetRectSelector(r.Selector, dom.Rect{Top: r.Top, Height: r.Height}) {
			missed++
		}
	}
	if missed > 0 {
		s.log.Debug("layout selectors not found", "missed", missed)
	}
	if msg.PanelScrollTop != nil {
		if nav := s.doc.ByID(toc.ContainerID); nav != nil {
			s.doc.SetPanelScroll(nav, *msg.PanelScrollTop)
		}
	}
	if msg.ScrollY != nil {
		s.doc.Scroll(*msg.ScrollY)
	}
	s.ctrl.UpdateElements()
}

func (s *Session) link(target string) dom.Element {
	nav := s.doc.ByID(toc.ContainerID)
	if nav == nil {
		return nil
	}
	for _, a := range nav.QueryAll("a.deeptoc-link") {
		if t, _ := a.Attr("data-target"); t == target {
			return a
		}
	}
	return nil
}
