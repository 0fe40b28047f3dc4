package htmldoc

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// MutationKind names a change to the attached tree or its scroll state.
type MutationKind string

const (
	MutInsert      MutationKind = "insert"
	MutAppend      MutationKind = "append"
	MutRemove      MutationKind = "remove"
	MutAttr        MutationKind = "attr"
	MutScroll      MutationKind = "scroll"
	MutPanelScroll MutationKind = "panelScroll"
)

// Mutation describes one change. Target is a CSS locator of the
// affected element computed before the change was applied: the
// reference sibling for inserts, the parent for appends.
type Mutation struct {
	Kind    MutationKind `json:"op"`
	Target  string       `json:"target,omitempty"`
	HTML    string       `json:"html,omitempty"`
	Name    string       `json:"name,omitempty"`
	Value   string       `json:"value,omitempty"`
	Present bool         `json:"present,omitempty"`
	Top     float64      `json:"top,omitempty"`
	Smooth  bool         `json:"smooth,omitempty"`
}

// Locator returns a selector that finds n in an identical tree. Elements
// with an id are addressed by it; others by an :nth-child path from the
// nearest ancestor that has one.
func Locator(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	if id := getAttr(n, "id"); id != "" {
		return `[id="` + escapeAttr(id) + `"]`
	}
	step := n.Data + ":nth-child(" + strconv.Itoa(elementIndex(n)) + ")"
	if n.Parent == nil || n.Parent.Type != html.ElementNode {
		return n.Data
	}
	return Locator(n.Parent) + " > " + step
}

func elementIndex(n *html.Node) int {
	i := 1
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			i++
		}
	}
	return i
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
