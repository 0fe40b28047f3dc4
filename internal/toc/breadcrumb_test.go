package toc

import (
	"slices"
	"testing"
)

func TestBreadcrumbs(t *testing.T) {
	entries := []Entry{
		{Level: 1, Text: "Guide"},
		{Level: 3, Text: "Deep"},
		{Level: 2, Text: "Install"},
		{Level: 3, Text: "Linux"},
		{Level: 2, Text: "Usage"},
		{Level: 1, Text: "Appendix"},
	}
	want := [][]string{
		{"Guide"},
		{"Guide", "Deep"},
		{"Guide", "Install"},
		{"Guide", "Install", "Linux"},
		{"Guide", "Usage"},
		{"Appendix"},
	}
	got := Breadcrumbs(entries)
	if len(got) != len(want) {
		t.Fatalf("expected %d breadcrumbs, got %d", len(want), len(got))
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("entry %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBreadcrumbs_Empty(t *testing.T) {
	if got := Breadcrumbs(nil); len(got) != 0 {
		t.Errorf("expected no breadcrumbs, got %v", got)
	}
}
