package toc

import (
	"github.com/dgallion1/deeptoc/internal/dom"
)

const (
	hiddenAttr  = "data-deeptoc-hidden"
	displayAttr = "data-deeptoc-display"
)

// Unmount detaches the synthesized container, if any, and restores the
// display of every widget Mount hid. Safe to call when nothing is
// mounted.
func Unmount(doc dom.Document) {
	for {
		nav := doc.ByID(ContainerID)
		if nav == nil {
			break
		}
		nav.Remove()
	}
	for _, w := range doc.QueryAll("[" + hiddenAttr + "]") {
		original, _ := w.Attr(displayAttr)
		w.SetStyle("display", original)
		w.RemoveAttr(displayAttr)
		w.RemoveAttr(hiddenAttr)
	}
}

// NativeWidget returns the first element matched by selectors, tried in
// order.
func NativeWidget(doc dom.Document, selectors []string) dom.Element {
	for _, sel := range selectors {
		if el := doc.Query(sel); el != nil {
			return el
		}
	}
	return nil
}

// Mount inserts nav immediately before the native widget and hides the
// widget, remembering its inline display value. It reports false and
// changes nothing when no widget is found.
func Mount(doc dom.Document, opts Options, nav dom.Element) bool {
	widget := NativeWidget(doc, opts.WidgetSelectors)
	if widget == nil {
		return false
	}
	widget.InsertBefore(nav)
	if _, hidden := widget.Attr(hiddenAttr); !hidden {
		widget.SetAttr(displayAttr, widget.Style("display"))
		widget.SetAttr(hiddenAttr, "")
		widget.SetStyle("display", "none")
	}
	return true
}
