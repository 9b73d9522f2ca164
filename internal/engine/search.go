package engine

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/panelspace/panelspace/internal/workspace"
)

// DragEnabled reports whether drag gestures and drag-reorder are allowed.
// They are disabled while a search term filters the list, because positions
// in a filtered, ranked view do not map onto the real list order.
func DragEnabled(searchTerm string) bool {
	return strings.TrimSpace(searchTerm) == ""
}

// FilterPanels returns the panels matching term, best match first. A blank
// term returns the list unchanged.
func FilterPanels(panels []workspace.Panel, term string) []workspace.Panel {
	query := strings.TrimSpace(term)
	if query == "" {
		return panels
	}

	searchStrings := make([]string, len(panels))
	for i, p := range panels {
		searchStrings[i] = p.Name + " " + p.Kind.Label()
	}
	matches := fuzzy.Find(query, searchStrings)
	out := make([]workspace.Panel, 0, len(matches))
	for _, m := range matches {
		out = append(out, panels[m.Index])
	}
	return out
}
