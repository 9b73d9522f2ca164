package engine

import (
	"slices"
	"sort"

	"github.com/panelspace/panelspace/internal/geom"
	"github.com/panelspace/panelspace/internal/workspace"
)

// InteractionOrder tracks which panels the user touched most recently. Each
// id appears at most once; ids never recorded rank below all others.
type InteractionOrder struct {
	ids []string
}

// Record moves id to the most-recent end.
func (o *InteractionOrder) Record(id string) {
	o.Forget(id)
	o.ids = append(o.ids, id)
}

// Forget drops id, e.g. when its panel is deleted.
func (o *InteractionOrder) Forget(id string) {
	o.ids = slices.DeleteFunc(o.ids, func(s string) bool { return s == id })
}

// Rank returns a value that grows with recency, or -1 if id was never
// recorded.
func (o *InteractionOrder) Rank(id string) int {
	return slices.Index(o.ids, id)
}

// Order returns the ids from least to most recent.
func (o *InteractionOrder) Order() []string {
	return slices.Clone(o.ids)
}

// Len returns the number of tracked ids.
func (o *InteractionOrder) Len() int {
	return len(o.ids)
}

// ByRecency returns panels most recent first. Panels never recorded follow
// in list order.
func (o *InteractionOrder) ByRecency(panels []workspace.Panel) []workspace.Panel {
	out := slices.Clone(panels)
	sort.SliceStable(out, func(i, j int) bool {
		return o.Rank(out[i].ID) > o.Rank(out[j].ID)
	})
	return out
}

// PanelAt returns the topmost panel containing the world-space point. It uses
// the same paint order as Cull, so the result is the panel drawn on top.
func PanelAt(panels []workspace.Panel, pt geom.Point) (workspace.Panel, bool) {
	ordered := PaintOrder(panels)
	for i := len(ordered) - 1; i >= 0; i-- {
		if ordered[i].Rect().ContainsPoint(pt) {
			return ordered[i], true
		}
	}
	return workspace.Panel{}, false
}
