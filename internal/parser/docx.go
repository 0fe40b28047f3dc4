package parser

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXRenderer handles .docx files. Paragraphs styled Heading1..Heading6
// (or "Heading 1".."Heading 6") become headings of the same level; a
// Title-styled paragraph names the page.
type DOCXRenderer struct{}

func (p *DOCXRenderer) Render(r io.Reader, filename string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	title := baseTitle(filename)
	var body bodyWriter
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := runText(para)
		if text == "" {
			continue
		}
		switch style := paragraphStyle(para); {
		case style == "title":
			title = text
			body.heading(1, text)
		case headingStyleLevel(style) > 0:
			body.heading(headingStyleLevel(style), text)
		default:
			body.paragraph(text)
		}
	}
	return writePage(title, body.String())
}

// paragraphStyle returns the lower-cased style id without spaces.
func paragraphStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
}

func headingStyleLevel(style string) int {
	rest, ok := strings.CutPrefix(style, "heading")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || n > 6 {
		return 0
	}
	return n
}

func runText(para *docx.Paragraph) string {
	var sb strings.Builder
	for _, child := range para.Children {
		if run, ok := child.(*docx.Run); ok {
			for _, rc := range run.Children {
				if t, ok := rc.(*docx.Text); ok {
					sb.WriteString(t.Text)
				}
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
