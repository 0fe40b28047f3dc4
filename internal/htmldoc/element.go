package htmldoc

import (
	"bytes"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/dgallion1/deeptoc/internal/dom"
	"golang.org/x/net/html"
)

// Element is a dom.Element backed by an *html.Node.
type Element struct {
	d *Document
	n *html.Node
}

// Node exposes the underlying node.
func (e *Element) Node() *html.Node { return e.n }

func (e *Element) Tag() string { return e.n.Data }

func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *Element) SetAttr(name, value string) {
	target := e.target()
	set := false
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			set = true
			break
		}
	}
	if !set {
		e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
	}
	e.attrChanged(target, name, value, true)
}

func (e *Element) RemoveAttr(name string) {
	target := e.target()
	before := len(e.n.Attr)
	e.n.Attr = slices.DeleteFunc(e.n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == name
	})
	if len(e.n.Attr) != before {
		e.attrChanged(target, name, "", false)
	}
}

func (e *Element) HasClass(name string) bool {
	v, _ := e.Attr("class")
	return slices.Contains(strings.Fields(v), name)
}

func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	v, _ := e.Attr("class")
	e.SetAttr("class", strings.TrimSpace(v+" "+name))
}

func (e *Element) RemoveClass(name string) {
	if !e.HasClass(name) {
		return
	}
	v, _ := e.Attr("class")
	classes := slices.DeleteFunc(strings.Fields(v), func(c string) bool { return c == name })
	if len(classes) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(classes, " "))
}

func (e *Element) Style(prop string) string {
	v, _ := e.Attr("style")
	for _, decl := range parseStyle(v) {
		if decl.prop == prop {
			return decl.value
		}
	}
	return ""
}

func (e *Element) SetStyle(prop, value string) {
	v, _ := e.Attr("style")
	decls := parseStyle(v)
	idx := slices.IndexFunc(decls, func(s styleDecl) bool { return s.prop == prop })
	switch {
	case value == "" && idx < 0:
		return
	case value == "":
		decls = slices.Delete(decls, idx, idx+1)
	case idx < 0:
		decls = append(decls, styleDecl{prop: prop, value: value})
	default:
		decls[idx].value = value
	}
	if len(decls) == 0 {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", formatStyle(decls))
}

func (e *Element) Text() string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func (e *Element) Query(selector string) dom.Element {
	sel, ok := e.d.compile(selector)
	if !ok {
		return nil
	}
	return e.d.wrap(cascadia.Query(e.n, sel))
}

func (e *Element) QueryAll(selector string) []dom.Element {
	sel, ok := e.d.compile(selector)
	if !ok {
		return nil
	}
	return e.d.wrapAll(cascadia.QueryAll(e.n, sel))
}

func (e *Element) Closest(selector string) dom.Element {
	sel, ok := e.d.compile(selector)
	if !ok {
		return nil
	}
	for p := e.n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && sel.Match(p) {
			return e.d.wrap(p)
		}
	}
	return nil
}

func (e *Element) InsertBefore(el dom.Element) {
	other, ok := el.(*Element)
	if !ok || other == nil || e.n.Parent == nil {
		return
	}
	if other.n.Parent != nil {
		other.n.Parent.RemoveChild(other.n)
	}
	attached := e.d.attached(e.n)
	var ref string
	if attached {
		ref = Locator(e.n)
	}
	e.n.Parent.InsertBefore(other.n, e.n)
	if attached {
		e.d.emit(Mutation{Kind: MutInsert, Target: ref, HTML: outerHTML(other.n)})
	}
}

func (e *Element) AppendChild(el dom.Element) {
	other, ok := el.(*Element)
	if !ok || other == nil {
		return
	}
	if other.n.Parent != nil {
		other.n.Parent.RemoveChild(other.n)
	}
	e.n.AppendChild(other.n)
	if e.d.attached(e.n) {
		e.d.emit(Mutation{Kind: MutAppend, Target: Locator(e.n), HTML: outerHTML(other.n)})
	}
}

func (e *Element) Remove() {
	if e.n.Parent == nil {
		return
	}
	if e.d.attached(e.n) {
		e.d.emit(Mutation{Kind: MutRemove, Target: Locator(e.n)})
	}
	e.n.Parent.RemoveChild(e.n)
	e.d.forget(e.n)
}

func (e *Element) Rect() dom.Rect { return e.d.layout[e.n] }

func (e *Element) ScrollTop() float64 { return e.d.panelTops[e.n] }

func (e *Element) ScrollTo(top float64, smooth bool) {
	if top < 0 {
		top = 0
	}
	e.d.panelTops[e.n] = top
	if e.d.attached(e.n) {
		e.d.emit(Mutation{Kind: MutPanelScroll, Target: Locator(e.n), Top: top, Smooth: smooth})
	}
}

func (e *Element) OnClick(fn func(*dom.Event)) {
	e.d.clicks[e.n] = append(e.d.clicks[e.n], fn)
}

// target is the element's locator as it stands now, or "" when the
// element is detached. Attribute writes resolve it first since an id
// change moves the locator.
func (e *Element) target() string {
	if !e.d.attached(e.n) {
		return ""
	}
	return Locator(e.n)
}

func (e *Element) attrChanged(target, name, value string, present bool) {
	if target == "" {
		return
	}
	e.d.emit(Mutation{Kind: MutAttr, Target: target, Name: name, Value: value, Present: present})
}

type styleDecl struct {
	prop  string
	value string
}

func parseStyle(s string) []styleDecl {
	var decls []styleDecl
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" {
			continue
		}
		decls = append(decls, styleDecl{prop: prop, value: value})
	}
	return decls
}

func formatStyle(decls []styleDecl) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.value)
	}
	return strings.Join(parts, "; ")
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func outerHTML(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}
