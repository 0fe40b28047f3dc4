package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFRenderer handles PDF files. PDFs carry no heading markup, so the
// file name becomes the level 1 heading and every page with text a
// level 2 section.
type PDFRenderer struct{}

func (p *PDFRenderer) Render(r io.Reader, filename string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	title := baseTitle(filename)
	var body bodyWriter
	body.heading(1, title)
	for i := 1; i <= reader.NumPage(); i++ {
		text := pageText(reader.Page(i))
		if text == "" {
			continue
		}
		body.heading(2, fmt.Sprintf("Page %d", i))
		for para := range strings.SplitSeq(text, "\n\n") {
			if para = strings.TrimSpace(para); para != "" {
				body.paragraph(para)
			}
		}
	}
	return writePage(title, body.String())
}

// pageText returns the plain text of page, or "" when it has none or
// cannot be decoded.
func pageText(page pdflib.Page) string {
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
