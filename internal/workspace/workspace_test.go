package workspace

import (
	"encoding/json"
	"testing"
)

func TestKindsComplete(t *testing.T) {
	for _, k := range Kinds {
		t.Run(string(k), func(t *testing.T) {
			if !k.Valid() {
				t.Fatalf("%q not valid", k)
			}
			if k.Label() == "Panel" || k.Icon() == "square" || k.Color() == "#9ca3af" {
				t.Errorf("%q falls through to the default presentation", k)
			}
			w, h := k.MinSize()
			if w < DefaultMinWidth || h < DefaultMinHeight {
				t.Errorf("%q min size %vx%v below default floor", k, w, h)
			}
			if !k.Allows(OpDrag) {
				t.Errorf("%q should allow drag", k)
			}
			if k.Allows(OpResize) == k.Allows(OpAutoSize) {
				t.Errorf("%q must be either hand-resized or auto-sized", k)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("data-editor"); err != nil || k != KindDataEditor {
		t.Errorf("ParseKind(data-editor) = %q, %v", k, err)
	}
	if _, err := ParseKind("spreadsheet"); err == nil {
		t.Error("ParseKind(spreadsheet) = nil error")
	}
}

func TestPanelMinSizeOverride(t *testing.T) {
	p := Panel{Kind: KindGraph}
	if w, h := p.MinSize(); w != 360 || h != 260 {
		t.Errorf("MinSize = %vx%v, want 360x260", w, h)
	}
	p.MinWidth = 500
	if w, h := p.MinSize(); w != 500 || h != 260 {
		t.Errorf("MinSize = %vx%v, want 500x260", w, h)
	}
}

func TestVisibleSet(t *testing.T) {
	ws := NewEmpty("ws_1", "test")
	ws.Panels = []Panel{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	ws.SetVisible("c", true)
	ws.SetVisible("a", true)
	ws.SetVisible("a", true)

	if len(ws.VisiblePanelIDs) != 2 {
		t.Fatalf("VisiblePanelIDs = %v", ws.VisiblePanelIDs)
	}
	shown := ws.ShownPanels()
	if len(shown) != 2 || shown[0].ID != "a" || shown[1].ID != "c" {
		t.Errorf("ShownPanels = %v, want [a c] in list order", shown)
	}
	ws.SetVisible("a", false)
	if ws.IsVisible("a") {
		t.Error("a still visible")
	}
}

func TestCloneIsDeep(t *testing.T) {
	ws := NewSample("ws_sample")
	c := ws.Clone()
	c.Panels[0].X = 9999
	c.Folders[0].Name = "changed"
	if ws.Panels[0].X == 9999 || ws.Folders[0].Name == "changed" {
		t.Error("Clone shares slices with the original")
	}
}

func TestSampleRoundTrip(t *testing.T) {
	ws := NewSample("ws_sample")
	data, err := json.Marshal(ws)
	if err != nil {
		t.Fatal(err)
	}
	var back Workspace
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Panels) != len(ws.Panels) || len(back.Folders) != 1 {
		t.Fatalf("round trip lost data: %d panels, %d folders", len(back.Panels), len(back.Folders))
	}
	if members := back.Members(back.Folders[0].ID); len(members) != 1 || members[0].Kind != KindReport {
		t.Errorf("folder members = %v", members)
	}
	for _, p := range back.Panels {
		if !back.IsVisible(p.ID) {
			t.Errorf("sample panel %s not visible", p.Name)
		}
	}
}
