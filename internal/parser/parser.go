// Package parser turns source documents into HTML pages shaped like the
// content platform's page view: a content region plus a shallow native
// navigation widget.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Renderer converts raw document bytes into an HTML page.
type Renderer interface {
	Render(r io.Reader, filename string) ([]byte, error)
}

// SupportedExtensions lists file extensions this service can render.
var SupportedExtensions = map[string]bool{
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
	".txt":      true,
	".csv":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate renderer for a filename.
func ForFile(filename string) (Renderer, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".html", ".htm":
		return &HTMLRenderer{}, nil
	case ".md", ".markdown":
		return &MarkdownRenderer{}, nil
	case ".txt":
		return &TextRenderer{}, nil
	case ".csv":
		return &CSVRenderer{}, nil
	case ".pdf":
		return &PDFRenderer{}, nil
	case ".docx":
		return &DOCXRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

func baseTitle(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
