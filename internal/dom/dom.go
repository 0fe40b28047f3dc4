// Package dom describes the document access capability the navigation
// engine works against. Implementations wrap a concrete rendering host;
// the engine never touches a host directly.
package dom

// Rect is an element's box in layout coordinates. Top is measured from
// the top of the scrollable content that contains the element and does
// not change when that content scrolls.
type Rect struct {
	Top    float64
	Height float64
}

// Bottom returns the lower edge of the box.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Event is delivered to click listeners.
type Event struct {
	defaultPrevented bool
}

// PreventDefault suppresses the host's default action for the event.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Element is a handle to one element of the hosting document.
// Query methods return nil when nothing matches.
type Element interface {
	Tag() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	HasClass(name string) bool
	AddClass(name string)
	RemoveClass(name string)

	// Style reads one inline style property; SetStyle with an empty
	// value removes the property.
	Style(prop string) string
	SetStyle(prop, value string)

	// Text is the element's text content with whitespace collapsed.
	Text() string

	Query(selector string) Element
	QueryAll(selector string) []Element
	// Closest returns the nearest strict ancestor matching selector.
	Closest(selector string) Element

	// InsertBefore places el immediately before the receiver.
	InsertBefore(el Element)
	AppendChild(el Element)
	Remove()

	Rect() Rect
	// ScrollTop and ScrollTo address the element's own scrollable
	// viewport. They never move the page.
	ScrollTop() float64
	ScrollTo(top float64, smooth bool)

	OnClick(fn func(*Event))
}

// Document is the hosting document.
type Document interface {
	// Ready reports whether the document structure is parsed and
	// available. OnReady runs fn once it is, immediately if already so.
	Ready() bool
	OnReady(fn func())

	Query(selector string) Element
	QueryAll(selector string) []Element
	ByID(id string) Element
	Head() Element

	// Fragment parses markup into a detached element.
	Fragment(markup string) (Element, error)

	// ScrollY is the page's vertical scroll offset. ScrollTo starts a
	// scroll and returns immediately; completion is not observable.
	ScrollY() float64
	ScrollTo(y float64, smooth bool)
	OnScroll(fn func()) (unsubscribe func())

	// RequestFrame runs fn before the next paint.
	RequestFrame(fn func())
}
