package engine

import (
	"math/rand"
	"testing"

	"github.com/panelspace/panelspace/internal/geom"
	"github.com/panelspace/panelspace/internal/workspace"
)

func panel(id string, kind workspace.Kind, x, y, w, h float64, z int64) workspace.Panel {
	return workspace.Panel{ID: id, Kind: kind, Name: id, X: x, Y: y, Width: w, Height: h, ZOrder: z}
}

func ids(panels []workspace.Panel) []string {
	out := make([]string, len(panels))
	for i, p := range panels {
		out[i] = p.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCullBasic(t *testing.T) {
	panels := []workspace.Panel{
		panel("inside", workspace.KindDataset, 100, 100, 300, 200, 3),
		panel("partial", workspace.KindGraph, 700, 500, 400, 300, 1),
		panel("far-right", workspace.KindGraph, 5000, 0, 300, 200, 2),
		panel("in-buffer", workspace.KindModel, 850, 0, 300, 200, 4),
		panel("far-up", workspace.KindDataset, 0, -1000, 300, 200, 5),
	}
	res := Cull(panels, CullParams{
		Viewport:        geom.Viewport{Zoom: 1},
		ContainerWidth:  800,
		ContainerHeight: 600,
		Buffer:          100,
	})

	if got, want := ids(res.Visible), []string{"inside", "partial", "in-buffer"}; !equalIDs(got, want) {
		t.Errorf("Visible = %v, want %v", got, want)
	}
	if got, want := ids(res.Sorted), []string{"partial", "inside", "in-buffer"}; !equalIDs(got, want) {
		t.Errorf("Sorted = %v, want %v", got, want)
	}
	if !res.IsPanelVisible("inside") || res.IsPanelVisible("far-right") {
		t.Error("IsPanelVisible disagrees with Visible")
	}
	if got := ids(res.PanelsByType(workspace.KindGraph)); !equalIDs(got, []string{"partial"}) {
		t.Errorf("PanelsByType(graph) = %v", got)
	}
	if len(res.PanelsByType(workspace.KindReport)) != 0 {
		t.Error("PanelsByType(report) should be empty")
	}
}

func TestCullZoomAndPan(t *testing.T) {
	// At zoom 2 panned by (-1000, 0) the world window is x in [500, 900].
	vp := geom.Viewport{X: -1000, Y: 0, Zoom: 2}
	panels := []workspace.Panel{
		panel("left", workspace.KindDataset, 0, 0, 400, 100, 1),
		panel("center", workspace.KindDataset, 600, 100, 100, 100, 2),
		panel("right", workspace.KindDataset, 1000, 0, 100, 100, 3),
	}
	res := Cull(panels, CullParams{Viewport: vp, ContainerWidth: 800, ContainerHeight: 600})
	if got := ids(res.Visible); !equalIDs(got, []string{"center"}) {
		t.Errorf("Visible = %v, want [center]", got)
	}

	// A 200px buffer is 100 world units at zoom 2: x in [400, 1000].
	res = Cull(panels, CullParams{Viewport: vp, ContainerWidth: 800, ContainerHeight: 600, Buffer: 200})
	if got := ids(res.Visible); !equalIDs(got, []string{"left", "center", "right"}) {
		t.Errorf("Visible with buffer = %v", got)
	}
}

func TestCullTiesKeepListOrder(t *testing.T) {
	panels := []workspace.Panel{
		panel("a", workspace.KindDataset, 0, 0, 10, 10, 7),
		panel("b", workspace.KindDataset, 0, 0, 10, 10, 7),
		panel("c", workspace.KindDataset, 0, 0, 10, 10, 1),
	}
	res := Cull(panels, CullParams{Viewport: geom.Viewport{Zoom: 1}, ContainerWidth: 100, ContainerHeight: 100})
	if got := ids(res.Sorted); !equalIDs(got, []string{"c", "a", "b"}) {
		t.Errorf("Sorted = %v, want [c a b]", got)
	}
}

func TestCullProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		var panels []workspace.Panel
		for i := 0; i < 40; i++ {
			panels = append(panels, panel(
				string(rune('a'+i%26))+string(rune('0'+i/26)),
				workspace.Kinds[rng.Intn(len(workspace.Kinds))],
				rng.Float64()*6000-3000, rng.Float64()*6000-3000,
				50+rng.Float64()*500, 50+rng.Float64()*500,
				int64(rng.Intn(20)),
			))
		}
		params := CullParams{
			Viewport:        geom.Viewport{X: rng.Float64()*2000 - 1000, Y: rng.Float64()*2000 - 1000, Zoom: 0.2 + rng.Float64()*3},
			ContainerWidth:  400 + rng.Float64()*1200,
			ContainerHeight: 300 + rng.Float64()*900,
			Buffer:          rng.Float64() * 300,
		}
		res := Cull(panels, params)
		b := res.Bounds

		inInput := make(map[string]bool)
		for _, p := range panels {
			inInput[p.ID] = true
			r := p.Rect()
			outside := r.Right() < b.X || r.X > b.Right() || r.Bottom() < b.Y || r.Y > b.Bottom()
			inside := r.X >= b.X && r.Right() <= b.Right() && r.Y >= b.Y && r.Bottom() <= b.Bottom()
			if outside && res.IsPanelVisible(p.ID) {
				t.Fatalf("iter %d: panel %s outside %+v reported visible", iter, p.ID, b)
			}
			if inside && !res.IsPanelVisible(p.ID) {
				t.Fatalf("iter %d: panel %s inside %+v culled", iter, p.ID, b)
			}
		}
		for _, p := range res.Visible {
			if !inInput[p.ID] {
				t.Fatalf("iter %d: visible panel %s not in input", iter, p.ID)
			}
		}
		for i := 1; i < len(res.Sorted); i++ {
			if res.Sorted[i].ZOrder < res.Sorted[i-1].ZOrder {
				t.Fatalf("iter %d: Sorted not non-decreasing at %d", iter, i)
			}
		}
		if len(res.Sorted) != len(res.Visible) {
			t.Fatalf("iter %d: Sorted has %d panels, Visible %d", iter, len(res.Sorted), len(res.Visible))
		}
	}
}
