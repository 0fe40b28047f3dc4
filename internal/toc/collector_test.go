package toc

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/dgallion1/deeptoc/internal/htmldoc"
)

func parse(t *testing.T, page string) *htmldoc.Document {
	t.Helper()
	doc, err := htmldoc.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return doc
}

func TestCollect_PreservesOrderAndLevels(t *testing.T) {
	doc := parse(t, `<body><div class="wiki-content">
<h1>One</h1>
<p>text</p>
<h3>Three</h3>
<section><h2>Two</h2></section>
</div></body>`)

	headings, err := Collect(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var levels []int
	var texts []string
	for i, h := range headings {
		levels = append(levels, h.Level)
		texts = append(texts, h.Text)
		if h.Order != i {
			t.Errorf("heading %d has order %d", i, h.Order)
		}
	}
	if !slices.Equal(levels, []int{1, 3, 2}) {
		t.Errorf("expected levels [1 3 2], got %v", levels)
	}
	if !slices.Equal(texts, []string{"One", "Three", "Two"}) {
		t.Errorf("unexpected texts %v", texts)
	}
}

func TestCollect_SkipsExclusionZones(t *testing.T) {
	doc := parse(t, `<body><main>
<h2>Outside</h2>
<div class="tabs-container"><div class="pane"><h2>Tab A</h2><h4>Tab A detail</h4></div></div>
<h2>After</h2>
</main></body>`)

	headings, err := Collect(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, h := range headings {
		if strings.HasPrefix(h.Text, "Tab A") {
			t.Errorf("heading %q inside exclusion zone was collected", h.Text)
		}
	}
	if len(headings) != 2 {
		t.Errorf("expected 2 headings, got %d", len(headings))
	}
}

func TestCollect_FallbackSelectors(t *testing.T) {
	doc := parse(t, `<body><article><h2>In article</h2></article><h2>Outside</h2></body>`)
	opts := DefaultOptions()
	opts.ContentSelectors = []string{".missing", "article", "body"}

	headings, err := Collect(doc, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headings) != 1 || headings[0].Text != "In article" {
		t.Errorf("expected only the article heading, got %+v", headings)
	}
}

func TestCollect_NoContent(t *testing.T) {
	doc := parse(t, `<body><h2>x</h2></body>`)
	opts := DefaultOptions()
	opts.ContentSelectors = []string{".nowhere"}
	if _, err := Collect(doc, opts); !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
}

func TestCollect_NoHeadings(t *testing.T) {
	doc := parse(t, `<body><main><p>only prose</p><div class="tabs-container"><h2>hidden</h2></div></main></body>`)
	if _, err := Collect(doc, DefaultOptions()); !errors.Is(err, ErrNoHeadings) {
		t.Errorf("expected ErrNoHeadings, got %v", err)
	}
}

func TestSynthesize_Indent(t *testing.T) {
	headings := []Heading{
		{Level: 1, Text: "A", AnchorID: "a"},
		{Level: 3, Text: "B", AnchorID: "b"},
		{Level: 6, Text: "C", AnchorID: "c"},
	}
	entries := Synthesize(headings)
	want := []Entry{
		{Level: 1, Text: "A", Target: "a", Indent: 5},
		{Level: 3, Text: "B", Target: "b", Indent: 29},
		{Level: 6, Text: "C", Target: "c", Indent: 65},
	}
	if !slices.Equal(entries, want) {
		t.Errorf("got %+v, want %+v", entries, want)
	}
}

func TestMarkup_EscapesText(t *testing.T) {
	markup, err := Markup("Contents <b>", []Entry{{Level: 2, Text: `<script>x</script>`, Target: "s", Indent: 17}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(markup, "<script>") || strings.Contains(markup, "<b>") {
		t.Errorf("markup not escaped: %s", markup)
	}
	if !strings.Contains(markup, `data-target="s"`) {
		t.Errorf("missing data-target: %s", markup)
	}
	if !strings.Contains(markup, "padding-left: 17px") {
		t.Errorf("missing indent: %s", markup)
	}
}
