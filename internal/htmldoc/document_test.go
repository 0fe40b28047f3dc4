package htmldoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgallion1/deeptoc/internal/dom"
)

func mustParse(t *testing.T, page string, opts ...Option) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(page), opts...)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestQueryAndClosest(t *testing.T) {
	doc := mustParse(t, `<body><div class="tabs"><section><h2 id="x">X <em>y</em></h2></section></div></body>`)

	h := doc.ByID("x")
	if h == nil {
		t.Fatal("ByID returned nil")
	}
	if got := h.Text(); got != "X y" {
		t.Errorf("expected text %q, got %q", "X y", got)
	}
	if h.Closest(".tabs") == nil {
		t.Error("expected .tabs ancestor")
	}
	if h.Closest("h2") != nil {
		t.Error("Closest must not match the element itself")
	}
	if doc.Query(".missing") != nil {
		t.Error("expected nil for a missing element")
	}
	if doc.Query("[[invalid") != nil {
		t.Error("expected nil for an invalid selector")
	}
	if n := len(doc.Query("div").QueryAll("div")); n != 0 {
		t.Errorf("QueryAll must exclude the receiver, got %d", n)
	}
}

func TestStyleAndClass(t *testing.T) {
	doc := mustParse(t, `<body><p id="p" class="a b" style="color: red; display: block">x</p></body>`)
	p := doc.ByID("p")

	p.SetStyle("display", "none")
	if got, _ := p.Attr("style"); got != "color: red; display: none" {
		t.Errorf("unexpected style %q", got)
	}
	p.SetStyle("color", "")
	p.SetStyle("display", "")
	if _, ok := p.Attr("style"); ok {
		t.Error("expected empty style attribute to be removed")
	}

	p.AddClass("c")
	p.AddClass("c")
	p.RemoveClass("a")
	if got, _ := p.Attr("class"); got != "b c" {
		t.Errorf("unexpected class %q", got)
	}
}

func TestMutationsCarryPreChangeLocators(t *testing.T) {
	var muts []Mutation
	doc := mustParse(t, `<body><div id="side"><p>a</p><nav>b</nav></div></body>`, WithObserver(func(m Mutation) {
		muts = append(muts, m)
	}))

	nav := doc.Query("nav")
	frag, err := doc.Fragment(`<div id="n"><a href="#x">x</a></div>`)
	if err != nil {
		t.Fatal(err)
	}
	frag.AddClass("detached")
	nav.InsertBefore(frag)
	nav.SetStyle("display", "none")
	doc.ByID("n").Remove()

	if len(muts) != 3 {
		t.Fatalf("expected 3 mutations, got %+v", muts)
	}
	if muts[0].Kind != MutInsert || muts[0].Target != `[id="side"] > nav:nth-child(2)` {
		t.Errorf("unexpected insert %+v", muts[0])
	}
	if !strings.Contains(muts[0].HTML, `class="detached"`) {
		t.Errorf("insert html missing class: %s", muts[0].HTML)
	}
	if muts[1].Kind != MutAttr || muts[1].Target != `[id="side"] > nav:nth-child(3)` || muts[1].Value != "display: none" {
		t.Errorf("unexpected attr %+v", muts[1])
	}
	if muts[2].Kind != MutRemove || muts[2].Target != `[id="n"]` {
		t.Errorf("unexpected remove %+v", muts[2])
	}
}

func TestIDChangesUseTheOldLocator(t *testing.T) {
	var muts []Mutation
	doc := mustParse(t, `<body><div id="side"><h3>Note</h3><h4 id="old">Old</h4></div></body>`, WithObserver(func(m Mutation) {
		muts = append(muts, m)
	}))

	doc.Query("h3").SetAttr("id", "note")
	doc.ByID("old").SetAttr("id", "renamed")
	doc.ByID("renamed").RemoveAttr("id")

	want := []string{
		`[id="side"] > h3:nth-child(1)`,
		`[id="old"]`,
		`[id="renamed"]`,
	}
	if len(muts) != len(want) {
		t.Fatalf("expected %d mutations, got %+v", len(want), muts)
	}
	for i, w := range want {
		if muts[i].Kind != MutAttr || muts[i].Name != "id" || muts[i].Target != w {
			t.Errorf("mutation %d: expected id change at %q, got %+v", i, w, muts[i])
		}
	}
	if muts[2].Present {
		t.Error("removal must be reported as absent")
	}
}

func TestLocatorRoundTrip(t *testing.T) {
	doc := mustParse(t, `<body><div><ul><li>a</li><li><span>b</span></li></ul></div></body>`)
	span := doc.Query("span").(*Element)
	loc := Locator(span.Node())
	found := doc.Query(loc)
	if found == nil || found.Text() != "b" {
		t.Errorf("locator %q did not find the span", loc)
	}
}

func TestScrollFramesAndClicks(t *testing.T) {
	doc := mustParse(t, `<body><a id="l">x</a></body>`)

	calls := 0
	unsubscribe := doc.OnScroll(func() { calls++ })
	doc.Scroll(10)
	doc.ScrollTo(-5, true)
	if doc.ScrollY() != 0 {
		t.Errorf("expected clamp to 0, got %v", doc.ScrollY())
	}
	unsubscribe()
	doc.Scroll(20)
	if calls != 2 {
		t.Errorf("expected 2 scroll notifications, got %d", calls)
	}

	ran := 0
	doc.RequestFrame(func() {
		ran++
		doc.RequestFrame(func() { ran++ })
	})
	if n := doc.Frame(); n != 1 || ran != 1 {
		t.Errorf("first frame ran %d callbacks, counter %d", n, ran)
	}
	doc.Frame()
	if ran != 2 {
		t.Errorf("expected nested frame on next tick, counter %d", ran)
	}

	link := doc.ByID("l")
	link.OnClick(func(ev *dom.Event) { ev.PreventDefault() })
	if !doc.Click(link).DefaultPrevented() {
		t.Error("expected click listener to run")
	}
}

func TestPendingReady(t *testing.T) {
	doc := mustParse(t, `<body></body>`, Pending())
	ran := false
	doc.OnReady(func() { ran = true })
	if ran || doc.Ready() {
		t.Fatal("callback ran before ready")
	}
	doc.SetReady()
	if !ran {
		t.Error("callback did not run on ready")
	}
}

func TestRender(t *testing.T) {
	doc := mustParse(t, `<body><h1>Hi</h1></body>`)
	doc.Query("h1").SetAttr("id", "hi")
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<h1 id="hi">Hi</h1>`) {
		t.Errorf("unexpected output %s", buf.String())
	}
}
