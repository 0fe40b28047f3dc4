package toc

import (
	"log/slog"

	"github.com/dgallion1/deeptoc/internal/dom"
)

// Bind makes each link scroll the page smoothly to its heading, leaving
// the heading top ScrollOffset pixels below the viewport top. The
// offset is read at click time. A link whose heading has gone away does
// nothing.
func Bind(doc dom.Document, settings *Settings, links []dom.Element, log *slog.Logger) {
	for _, link := range links {
		target, _ := link.Attr(targetAttr)
		link.OnClick(func(ev *dom.Event) {
			ev.PreventDefault()
			heading := doc.ByID(target)
			if heading == nil {
				log.Debug("navigation target missing", "target", target)
				return
			}
			offset := settings.Snapshot().ScrollOffset
			doc.ScrollTo(heading.Rect().Top-offset, true)
		})
	}
}
