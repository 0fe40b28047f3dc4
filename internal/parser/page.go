package parser

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// outlineItem is one line of the platform's native two-level widget.
type outlineItem struct {
	Level int
	Text  string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<aside class="sidebar"><div class="toc-macro"><ul>{{range .Outline}}<li class="toc-level-{{.Level}}"><a href="#">{{.Text}}</a></li>{{end}}</ul></div></aside>
<main id="main-content" class="wiki-content">
{{.Body}}
</main>
</body></html>
`))

// writePage wraps a rendered body in the page shell. The native widget
// lists level 1 and 2 headings only, as the platform does.
func writePage(title, body string) ([]byte, error) {
	outline, err := nativeOutline(body)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, struct {
		Title   string
		Outline []outlineItem
		Body    template.HTML
	}{title, outline, template.HTML(body)})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

func nativeOutline(body string) ([]outlineItem, error) {
	context := &html.Node{Type: html.ElementNode, Data: "main", DataAtom: atom.Main}
	nodes, err := html.ParseFragment(strings.NewReader(body), context)
	if err != nil {
		return nil, fmt.Errorf("parse body: %w", err)
	}

	var items []outlineItem
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if level, ok := shallowLevels[n.DataAtom]; ok && n.Type == html.ElementNode {
			items = append(items, outlineItem{Level: level, Text: nodeText(n)})
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return items, nil
}

// shallowLevels are the heading levels the native widget lists.
var shallowLevels = map[atom.Atom]int{atom.H1: 1, atom.H2: 2}

// nodeText joins the text under n with single spaces.
func nodeText(n *html.Node) string {
	var words []string
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			words = append(words, strings.Fields(d.Data)...)
		}
	}
	return strings.Join(words, " ")
}

// bodyWriter accumulates escaped body markup.
type bodyWriter struct {
	strings.Builder
}

func (b *bodyWriter) heading(level int, text string) {
	fmt.Fprintf(b, "<h%d>%s</h%d>\n", level, html.EscapeString(text), level)
}

func (b *bodyWriter) paragraph(text string) {
	b.WriteString("<p>")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString("<br>")
		}
		b.WriteString(html.EscapeString(line))
	}
	b.WriteString("</p>\n")
}
