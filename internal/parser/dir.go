package parser

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// lookupOrder is tried for extensionless page paths.
var lookupOrder = []string{".html", ".htm", ".md", ".markdown", ".docx", ".pdf", ".txt", ".csv"}

// Dir serves pages rendered from files under a local directory.
type Dir struct {
	root     string
	maxBytes int64
}

func NewDir(root string, maxBytes int64) *Dir {
	return &Dir{root: root, maxBytes: maxBytes}
}

// FetchPage renders the file for page path p. A path with a supported
// extension names the file directly; otherwise each supported extension
// is tried in turn. Missing files yield an error wrapping
// fs.ErrNotExist.
func (d *Dir) FetchPage(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel := strings.TrimPrefix(path.Clean("/"+p), "/")
	if rel == "" {
		rel = "index"
	}

	candidates := []string{rel}
	if !IsSupportedExtension(rel) {
		candidates = candidates[:0]
		for _, ext := range lookupOrder {
			candidates = append(candidates, rel+ext)
		}
	}
	for _, name := range candidates {
		full := filepath.Join(d.root, filepath.FromSlash(name))
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}
		if d.maxBytes > 0 && info.Size() > d.maxBytes {
			return nil, fmt.Errorf("page %s exceeds max size (%d bytes)", p, d.maxBytes)
		}
		return d.render(full, name)
	}
	return nil, fmt.Errorf("page %s: %w", p, fs.ErrNotExist)
}

func (d *Dir) render(full, name string) ([]byte, error) {
	r, err := ForFile(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	page, err := r.Render(bytes.NewReader(data), filepath.Base(name))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return page, nil
}
