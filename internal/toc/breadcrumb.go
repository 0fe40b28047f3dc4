package toc

// Breadcrumbs returns, for each entry, the texts of the enclosing
// entries from outermost to innermost, ending with the entry itself.
// An entry encloses the ones after it until an entry of the same or a
// shallower level appears; skipped levels are simply absent.
func Breadcrumbs(entries []Entry) [][]string {
	out := make([][]string, len(entries))
	var stack []Entry
	for i, e := range entries {
		for len(stack) > 0 && stack[len(stack)-1].Level >= e.Level {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, e)
		bc := make([]string, len(stack))
		for j, s := range stack {
			bc[j] = s.Text
		}
		out[i] = bc
	}
	return out
}
