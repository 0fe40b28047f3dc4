package toc

import (
	"bytes"
	"fmt"
	"html/template"
)

// ContainerID is the id of the synthesized navigation container.
const ContainerID = "deeptoc"

const (
	linkClass    = "deeptoc-link"
	activeClass  = "active"
	targetAttr   = "data-target"
	linkSelector = "a." + linkClass
)

// Entry is one line of the navigation.
type Entry struct {
	Level  int    `json:"level"`
	Text   string `json:"text"`
	Target string `json:"target"`
	Indent int    `json:"indent"`
}

// Indent returns the left padding in pixels for a heading level.
// Hierarchy is shown by padding alone, so skipped levels need no repair.
func Indent(level int) int {
	return (level-1)*12 + 5
}

// Synthesize maps headings one-to-one onto navigation entries.
func Synthesize(headings []Heading) []Entry {
	entries := make([]Entry, 0, len(headings))
	for _, h := range headings {
		entries = append(entries, Entry{
			Level:  h.Level,
			Text:   h.Text,
			Target: h.AnchorID,
			Indent: Indent(h.Level),
		})
	}
	return entries
}

var navTemplate = template.Must(template.New("nav").Parse(
	`<div id="{{.ID}}" class="deeptoc" data-version="{{.Version}}">` +
		`<div class="deeptoc-title">{{.Title}}</div>` +
		`<ul class="deeptoc-list">` +
		`{{range .Entries}}<li class="deeptoc-item deeptoc-level-{{.Level}}">` +
		`<a class="deeptoc-link" href="#{{.Target}}" data-target="{{.Target}}" style="padding-left: {{.Indent}}px">{{.Text}}</a>` +
		`</li>{{end}}` +
		`</ul></div>`))

// Markup renders the navigation container for entries.
func Markup(title string, entries []Entry) (string, error) {
	var buf bytes.Buffer
	err := navTemplate.Execute(&buf, struct {
		ID      string
		Version string
		Title   string
		Entries []Entry
	}{ContainerID, Version, title, entries})
	if err != nil {
		return "", fmt.Errorf("render navigation: %w", err)
	}
	return buf.String(), nil
}
