package engine

import (
	"sort"

	"github.com/panelspace/panelspace/internal/geom"
	"github.com/panelspace/panelspace/internal/workspace"
)

// DefaultCullBuffer is the margin, in screen pixels, kept around the viewport
// so panels just off screen are already mounted when the user pans.
const DefaultCullBuffer = 200.0

// CullParams describes the viewport a panel list is culled against.
type CullParams struct {
	Viewport        geom.Viewport
	ContainerWidth  float64
	ContainerHeight float64
	Buffer          float64
}

// CullResult is the read-only view of the panels under the viewport.
type CullResult struct {
	// Bounds is the inverse-transformed, buffered viewport in world space.
	Bounds geom.Rect
	// Visible is in input list order.
	Visible []workspace.Panel
	// Sorted is Visible in paint order: ascending z-order, ties by list order.
	Sorted []workspace.Panel
	// ByKind groups Visible by panel kind.
	ByKind map[workspace.Kind][]workspace.Panel

	ids map[string]struct{}
}

// Cull filters panels to those whose rectangle overlaps the viewport. It is a
// pure function of its inputs and runs in O(n) plus the paint-order sort.
func Cull(panels []workspace.Panel, params CullParams) CullResult {
	buffer := max(params.Buffer, 0)
	bounds := params.Viewport.WorldBounds(params.ContainerWidth, params.ContainerHeight, buffer)

	res := CullResult{
		Bounds: bounds,
		ByKind: make(map[workspace.Kind][]workspace.Panel),
		ids:    make(map[string]struct{}),
	}
	for _, p := range panels {
		if !p.Rect().Intersects(bounds) {
			continue
		}
		res.Visible = append(res.Visible, p)
		res.ByKind[p.Kind] = append(res.ByKind[p.Kind], p)
		res.ids[p.ID] = struct{}{}
	}
	res.Sorted = PaintOrder(res.Visible)
	return res
}

// IsPanelVisible reports whether the panel survived culling.
func (r CullResult) IsPanelVisible(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// PanelsByType returns the visible panels of one kind.
func (r CullResult) PanelsByType(kind workspace.Kind) []workspace.Panel {
	return r.ByKind[kind]
}

// VisibleIDs returns the ids of the visible panels in paint order.
func (r CullResult) VisibleIDs() []string {
	ids := make([]string, len(r.Sorted))
	for i, p := range r.Sorted {
		ids[i] = p.ID
	}
	return ids
}

// PaintOrder returns a copy of panels sorted back to front. Equal z-orders
// keep list order, so the later panel paints on top.
func PaintOrder(panels []workspace.Panel) []workspace.Panel {
	out := make([]workspace.Panel, len(panels))
	copy(out, panels)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZOrder < out[j].ZOrder
	})
	return out
}
