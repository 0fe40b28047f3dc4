// Package htmldoc hosts the navigation engine on a parsed HTML tree.
//
// A Document keeps the parts of a browser the engine depends on as
// plain data: element boxes, the page scroll offset, per-element panel
// scroll offsets, a frame queue and listener tables. The server feeds
// that data from a live browser over a websocket; tests set it
// directly.
package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/dgallion1/deeptoc/internal/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Option configures a Document.
type Option func(*Document)

// WithObserver streams every mutation of the attached tree to fn.
func WithObserver(fn func(Mutation)) Option {
	return func(d *Document) { d.observe = fn }
}

// Pending leaves the document not ready until SetReady is called.
func Pending() Option {
	return func(d *Document) { d.ready = false }
}

// Document is a dom.Document over an x/net/html tree. It is not safe
// for concurrent use; one goroutine drives it.
type Document struct {
	root *html.Node

	ready    bool
	readyFns []func()

	scrollY    float64
	layout     map[*html.Node]dom.Rect
	panelTops  map[*html.Node]float64
	clicks     map[*html.Node][]func(*dom.Event)
	scrollSubs map[int]func()
	nextSub    int
	frames     []func()

	selectors map[string]cascadia.Selector
	observe   func(Mutation)
}

// Parse reads an HTML page into a ready Document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return New(root, opts...), nil
}

// New wraps an already parsed tree.
func New(root *html.Node, opts ...Option) *Document {
	d := &Document{
		root:       root,
		ready:      true,
		layout:     make(map[*html.Node]dom.Rect),
		panelTops:  make(map[*html.Node]float64),
		clicks:     make(map[*html.Node][]func(*dom.Event)),
		scrollSubs: make(map[int]func()),
		selectors:  make(map[string]cascadia.Selector),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Render serializes the current tree.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *Document) Ready() bool { return d.ready }

func (d *Document) OnReady(fn func()) {
	if d.ready {
		fn()
		return
	}
	d.readyFns = append(d.readyFns, fn)
}

// SetReady marks the structure as available and runs deferred callbacks
// in registration order.
func (d *Document) SetReady() {
	if d.ready {
		return
	}
	d.ready = true
	fns := d.readyFns
	d.readyFns = nil
	for _, fn := range fns {
		fn()
	}
}

func (d *Document) Query(selector string) dom.Element {
	sel, ok := d.compile(selector)
	if !ok {
		return nil
	}
	return d.wrap(cascadia.Query(d.root, sel))
}

func (d *Document) QueryAll(selector string) []dom.Element {
	sel, ok := d.compile(selector)
	if !ok {
		return nil
	}
	return d.wrapAll(cascadia.QueryAll(d.root, sel))
}

func (d *Document) ByID(id string) dom.Element {
	if id == "" {
		return nil
	}
	return d.wrap(findByID(d.root, id))
}

func (d *Document) Head() dom.Element {
	return d.Query("head")
}

func (d *Document) Fragment(markup string) (dom.Element, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return d.wrap(n), nil
		}
	}
	return nil, fmt.Errorf("parse fragment: no element in markup")
}

func (d *Document) ScrollY() float64 { return d.scrollY }

func (d *Document) ScrollTo(y float64, smooth bool) {
	if y < 0 {
		y = 0
	}
	d.emit(Mutation{Kind: MutScroll, Top: y, Smooth: smooth})
	d.Scroll(y)
}

// Scroll moves the page as the reader would and notifies scroll
// listeners.
func (d *Document) Scroll(y float64) {
	d.scrollY = y
	for i := 0; i < d.nextSub; i++ {
		if fn, ok := d.scrollSubs[i]; ok {
			fn()
		}
	}
}

func (d *Document) OnScroll(fn func()) func() {
	id := d.nextSub
	d.nextSub++
	d.scrollSubs[id] = fn
	return func() { delete(d.scrollSubs, id) }
}

func (d *Document) RequestFrame(fn func()) {
	d.frames = append(d.frames, fn)
}

// Frame runs the callbacks queued so far and returns how many ran.
// Callbacks requested while the frame runs wait for the next one.
func (d *Document) Frame() int {
	fns := d.frames
	d.frames = nil
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// PendingFrames reports queued frame callbacks.
func (d *Document) PendingFrames() int { return len(d.frames) }

// SetRect records the layout box of el.
func (d *Document) SetRect(el dom.Element, r dom.Rect) {
	if e, ok := el.(*Element); ok && e != nil {
		d.layout[e.n] = r
	}
}

// SetRectSelector records r for the first element matching selector.
func (d *Document) SetRectSelector(selector string, r dom.Rect) bool {
	el := d.Query(selector)
	if el == nil {
		return false
	}
	d.SetRect(el, r)
	return true
}

// SetPanelScroll records a panel scroll offset reported by the host
// without emitting a mutation.
func (d *Document) SetPanelScroll(el dom.Element, top float64) {
	if e, ok := el.(*Element); ok && e != nil {
		d.panelTops[e.n] = top
	}
}

// Click dispatches a click to el's listeners and returns the event.
func (d *Document) Click(el dom.Element) *dom.Event {
	ev := &dom.Event{}
	e, ok := el.(*Element)
	if !ok || e == nil {
		return ev
	}
	for _, fn := range d.clicks[e.n] {
		fn(ev)
	}
	return ev
}

func (d *Document) compile(selector string) (cascadia.Selector, bool) {
	if sel, ok := d.selectors[selector]; ok {
		return sel, true
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, false
	}
	d.selectors[selector] = sel
	return sel, true
}

func (d *Document) wrap(n *html.Node) dom.Element {
	if n == nil {
		return nil
	}
	return &Element{d: d, n: n}
}

func (d *Document) wrapAll(nodes []*html.Node) []dom.Element {
	out := make([]dom.Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &Element{d: d, n: n})
	}
	return out
}

func (d *Document) attached(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == d.root {
			return true
		}
	}
	return false
}

func (d *Document) emit(m Mutation) {
	if d.observe != nil {
		d.observe(m)
	}
}

// forget drops listener and layout state for a detached subtree.
func (d *Document) forget(n *html.Node) {
	delete(d.layout, n)
	delete(d.panelTops, n)
	delete(d.clicks, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && getAttr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
