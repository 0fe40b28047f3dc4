// Package augment runs the navigation engine once over a complete page
// and returns the rewritten markup.
package augment

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/dgallion1/deeptoc/internal/htmldoc"
	"github.com/dgallion1/deeptoc/internal/toc"
	"golang.org/x/net/html"
)

// Options controls the rewrite.
type Options struct {
	// ClientScript, when set, is the src of a script tag appended to the
	// body so the browser can open a live session.
	ClientScript string
	// SessionURL is exposed to the client script as data-session.
	SessionURL string
}

// Result is an augmented page.
type Result struct {
	HTML    []byte
	Entries []toc.Entry
	ETag    string
}

// Page parses src, builds and mounts the navigation, and renders the
// page. A page the engine cannot augment comes back unchanged apart
// from serialization.
func Page(src io.Reader, settings *toc.Settings, log *slog.Logger, opts Options) (*Result, error) {
	doc, err := htmldoc.Parse(src)
	if err != nil {
		return nil, err
	}
	ctrl := toc.NewController(doc, settings, log)
	ctrl.Init()

	if opts.ClientScript != "" {
		if err := appendClientScript(doc, opts); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return &Result{
		HTML:    buf.Bytes(),
		Entries: ctrl.Entries(),
		ETag:    ETag(buf.Bytes()),
	}, nil
}

// ETag returns a strong entity tag for b.
func ETag(b []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(b), 16) + `"`
}

func appendClientScript(doc *htmldoc.Document, opts Options) error {
	body := doc.Query("body")
	if body == nil {
		return nil
	}
	tag := `<script defer src="` + html.EscapeString(opts.ClientScript) + `" data-session="` + html.EscapeString(opts.SessionURL) + `"></script>`
	script, err := doc.Fragment(tag)
	if err != nil {
		return fmt.Errorf("build client script tag: %w", err)
	}
	body.AppendChild(script)
	return nil
}
