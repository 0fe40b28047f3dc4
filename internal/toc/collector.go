package toc

import (
	"errors"

	"github.com/dgallion1/deeptoc/internal/dom"
)

var (
	// ErrNoContent means no content selector matched.
	ErrNoContent = errors.New("content region not found")
	// ErrNoHeadings means the content region has no qualifying headings.
	ErrNoHeadings = errors.New("no headings in content region")
)

const headingSelector = "h1, h2, h3, h4, h5, h6"

// Heading is one heading that survived filtering.
type Heading struct {
	Level    int
	Text     string
	AnchorID string
	Order    int
	Element  dom.Element
}

// ContentRegion returns the first element matched by selectors, tried
// in order.
func ContentRegion(doc dom.Document, selectors []string) dom.Element {
	for _, sel := range selectors {
		if el := doc.Query(sel); el != nil {
			return el
		}
	}
	return nil
}

// Collect returns the headings of the content region in document
// order, skipping any nested inside an element carrying the exclusion
// class. Levels are kept exactly as written. Anchor ids are not
// resolved here.
func Collect(doc dom.Document, opts Options) ([]Heading, error) {
	region := ContentRegion(doc, opts.ContentSelectors)
	if region == nil {
		return nil, ErrNoContent
	}

	var exclude string
	if opts.ExcludeClass != "" {
		exclude = "." + opts.ExcludeClass
	}

	var headings []Heading
	for _, el := range region.QueryAll(headingSelector) {
		if exclude != "" && el.Closest(exclude) != nil {
			continue
		}
		headings = append(headings, Heading{
			Level:   headingLevel(el.Tag()),
			Text:    el.Text(),
			Order:   len(headings),
			Element: el,
		})
	}
	if len(headings) == 0 {
		return nil, ErrNoHeadings
	}
	return headings, nil
}

// headingLevel maps h1..h6 to 1..6 and anything else to 0.
func headingLevel(tag string) int {
	if len(tag) != 2 || (tag[0] != 'h' && tag[0] != 'H') || tag[1] < '1' || tag[1] > '6' {
		return 0
	}
	return int(tag[1] - '0')
}

// resolveAnchors assigns every heading its anchor id.
func resolveAnchors(headings []Heading) {
	for i := range headings {
		headings[i].AnchorID = ResolveIdentifier(headings[i].Element, headings[i].Text, i)
	}
}
