package toc

import (
	"strconv"
	"strings"
	"testing"
	"unicode"

	"pgregory.net/rapid"
)

func TestDeriveIdentifier(t *testing.T) {
	tests := []struct {
		text  string
		index int
		want  string
	}{
		{"Getting Started", 0, "getting-started"},
		{"  Install -- the CLI!  ", 1, "install-the-cli"},
		{"API v2.1", 2, "api-v2-1"},
		{"安装 指南", 3, "安装-指南"},
		{"Q&A: 常见问题", 4, "q-a-常见问题"},
		{"!!!", 5, "heading-5"},
		{"🚀🚀", 6, "heading-6"},
		{"", 7, "heading-7"},
		{"Ünïcödé", 8, "n-c-d"},
	}
	for _, tt := range tests {
		if got := DeriveIdentifier(tt.text, tt.index); got != tt.want {
			t.Errorf("DeriveIdentifier(%q, %d) = %q, want %q", tt.text, tt.index, got, tt.want)
		}
	}
}

func TestDeriveIdentifier_Shape(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")
		index := rapid.IntRange(0, 500).Draw(t, "index")
		id := DeriveIdentifier(text, index)

		if id == "" {
			t.Fatalf("empty id for %q", text)
		}
		if strings.HasPrefix(id, "-") || strings.HasSuffix(id, "-") {
			t.Fatalf("id %q has a leading or trailing hyphen", id)
		}
		if strings.Contains(id, "--") {
			t.Fatalf("id %q has a hyphen run", id)
		}
		for _, r := range id {
			if r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.Is(unicode.Han, r) {
				continue
			}
			t.Fatalf("id %q contains %q", id, r)
		}
	})
}

func TestDeriveIdentifier_SymbolsFallBack(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringOf(rapid.SampledFrom([]rune("!@#$%^&*()_+=-[]{};:'\",.<>/? \t🙂✓"))).Draw(t, "text")
		index := rapid.IntRange(0, 500).Draw(t, "index")
		want := "heading-" + strconv.Itoa(index)
		if got := DeriveIdentifier(text, index); got != want {
			t.Fatalf("DeriveIdentifier(%q, %d) = %q, want %q", text, index, got, want)
		}
	})
}

func TestResolveIdentifier_Order(t *testing.T) {
	doc := parse(t, `<body>
<h2 id="kept">Kept Title</h2>
<h2><a href="#from-link">¶</a> Linked</h2>
<h2>Derived Title</h2>
<h2>***</h2>
</body>`)
	hs := doc.QueryAll("h2")
	want := []string{"kept", "from-link", "derived-title", "heading-3"}
	for i, h := range hs {
		if got := ResolveIdentifier(h, h.Text(), i); got != want[i] {
			t.Errorf("heading %d: got %q, want %q", i, got, want[i])
		}
		if id, _ := h.Attr("id"); id != want[i] {
			t.Errorf("heading %d: id attribute %q, want %q", i, id, want[i])
		}
	}
}

func TestResolveIdentifier_Idempotent(t *testing.T) {
	doc := parse(t, `<body><h3>Repeat Me</h3></body>`)
	h := doc.Query("h3")
	first := ResolveIdentifier(h, h.Text(), 0)
	// A different index must not matter once the id is written.
	second := ResolveIdentifier(h, h.Text(), 9)
	if first != second {
		t.Errorf("expected stable id, got %q then %q", first, second)
	}
}
