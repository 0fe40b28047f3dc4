package parser

import (
	"strings"
	"testing"
)

func TestTextRenderer_UnderlinedHeadings(t *testing.T) {
	input := "Overview\n========\n\nFirst paragraph\ncontinues here.\n\nDetails\n-------\n\n<b>not markup</b>\n"

	p := &TextRenderer{}
	out, err := p.Render(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	page := string(out)

	for _, want := range []string{
		"<h1>Overview</h1>",
		"<h2>Details</h2>",
		"<p>First paragraph<br>continues here.</p>",
		"&lt;b&gt;not markup&lt;/b&gt;",
		"<title>notes</title>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("expected %q in page, got %s", want, page)
		}
	}
}

func TestTextRenderer_EmptyInput(t *testing.T) {
	p := &TextRenderer{}
	out, err := p.Render(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), "<h1>") {
		t.Errorf("expected no headings, got %s", out)
	}
}

func TestCSVRenderer_Sections(t *testing.T) {
	var b strings.Builder
	b.WriteString("name,score\n")
	for i := 0; i < 25; i++ {
		b.WriteString("row,1\n")
	}
	p := &CSVRenderer{}
	out, err := p.Render(strings.NewReader(b.String()), "scores.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	page := string(out)
	if !strings.Contains(page, "<h2>Rows 2-21</h2>") || !strings.Contains(page, "<h2>Rows 22-26</h2>") {
		t.Errorf("expected two row sections, got %s", page)
	}
	if strings.Count(page, "<tr>") != 27 {
		t.Errorf("expected 2 header rows and 25 data rows, got %d", strings.Count(page, "<tr>"))
	}
}
