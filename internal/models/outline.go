package models

// OutlineItem is an entry with its nesting depth on a page.
type OutlineItem struct {
	Entry Entry
	Depth int
}

// Outline orders entries depth-first, children after their parent in the
// given order. Entries whose parent is not in the slice stay at the top level.
func Outline(entries []Entry) []OutlineItem {
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.ID] = true
	}
	children := make(map[string][]Entry)
	var roots []Entry
	for _, e := range entries {
		if e.ParentID != nil && present[*e.ParentID] && *e.ParentID != e.ID {
			children[*e.ParentID] = append(children[*e.ParentID], e)
			continue
		}
		roots = append(roots, e)
	}

	out := make([]OutlineItem, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	var walk func(e Entry, depth int)
	walk = func(e Entry, depth int) {
		if seen[e.ID] {
			return
		}
		seen[e.ID] = true
		out = append(out, OutlineItem{Entry: e, Depth: depth})
		for _, c := range children[e.ID] {
			walk(c, depth+1)
		}
	}
	for _, e := range roots {
		walk(e, 0)
	}
	// Parent cycles have no root; surface them at the top level
	for _, e := range entries {
		walk(e, 0)
	}
	return out
}
