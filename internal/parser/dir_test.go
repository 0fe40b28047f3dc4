package parser

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	full := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDir_ResolvesExtensionlessPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "guide/intro.md", "# Intro\n\n## Setup\n")
	d := NewDir(root, 1<<20)

	page, err := d.FetchPage(context.Background(), "guide/intro")
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if !strings.Contains(string(page), "<h2>Setup</h2>") {
		t.Errorf("expected rendered markdown, got %s", page)
	}
}

func TestDir_ExplicitExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.txt", "Notes\n=====\n\nbody\n")
	d := NewDir(root, 1<<20)

	page, err := d.FetchPage(context.Background(), "/notes.txt")
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if !strings.Contains(string(page), "<h1>Notes</h1>") {
		t.Errorf("expected text heading, got %s", page)
	}
}

func TestDir_NotFoundAndTraversal(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(filepath.Dir(root), "secret.md")
	writeFile(t, filepath.Dir(root), "secret.md", "# secret\n")
	t.Cleanup(func() { os.Remove(outside) })

	d := NewDir(root, 1<<20)
	for _, p := range []string{"missing", "../secret", "../secret.md"} {
		if _, err := d.FetchPage(context.Background(), p); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("%s: expected not-exist error, got %v", p, err)
		}
	}
}

func TestDir_MaxBytes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big.html", strings.Repeat("x", 100))
	d := NewDir(root, 10)
	_, err := d.FetchPage(context.Background(), "big")
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected size error, got %v", err)
	}
}
