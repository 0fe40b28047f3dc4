package toc

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/dgallion1/deeptoc/internal/dom"
)

// ResolveIdentifier returns the anchor id for heading h at position
// index of the filtered heading list. An id already on the heading
// wins; then the target of a self-anchor link inside it; then one
// derived from text. Any id the heading did not already carry is
// written onto it.
func ResolveIdentifier(h dom.Element, text string, index int) string {
	if id, ok := h.Attr("id"); ok && id != "" {
		return id
	}
	id := selfAnchor(h)
	if id == "" {
		id = DeriveIdentifier(text, index)
	}
	h.SetAttr("id", id)
	return id
}

// DeriveIdentifier builds an id from heading text: lower-cased, every
// run of characters other than ASCII letters, digits and Han ideographs
// folded into one hyphen, hyphens trimmed from both ends. Text with
// nothing usable yields "heading-<index>".
func DeriveIdentifier(text string, index int) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		if isIDRune(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	if b.Len() == 0 {
		return "heading-" + strconv.Itoa(index)
	}
	return b.String()
}

func isIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	return unicode.Is(unicode.Han, r)
}

// selfAnchor returns the fragment of the first in-page link inside h.
func selfAnchor(h dom.Element) string {
	for _, a := range h.QueryAll(`a[href^="#"]`) {
		href, _ := a.Attr("href")
		if id := strings.TrimPrefix(href, "#"); id != "" {
			return id
		}
	}
	return ""
}
