package engine

import (
	"testing"

	"github.com/panelspace/panelspace/internal/geom"
	"github.com/panelspace/panelspace/internal/workspace"
)

func TestDropPositionFor(t *testing.T) {
	target := geom.Rect{Y: 100, Height: 40}
	tests := []struct {
		y    float64
		want DropPosition
	}{
		{100, DropBefore},
		{119.9, DropBefore},
		{120, DropAfter},
		{139, DropAfter},
	}
	for _, tt := range tests {
		if got := DropPositionFor(tt.y, target); got != tt.want {
			t.Errorf("DropPositionFor(%v) = %s, want %s", tt.y, got, tt.want)
		}
	}
	if ParseDropPosition("after") != DropAfter || ParseDropPosition("x") != DropBefore {
		t.Error("ParseDropPosition")
	}
}

func TestDropOnPanel(t *testing.T) {
	tests := []struct {
		name       string
		panels     []workspace.Panel
		dragged    string
		target     string
		pos        DropPosition
		wantOrder  []string
		wantFolder []string
	}{
		{
			name:   "before later target",
			panels: listPanels("a", "b", "c", "d"), dragged: "a", target: "c", pos: DropBefore,
			wantOrder: []string{"b", "a", "c", "d"}, wantFolder: []string{"", "", "", ""},
		},
		{
			name:   "after later target",
			panels: listPanels("a", "b", "c", "d"), dragged: "a", target: "c", pos: DropAfter,
			wantOrder: []string{"b", "c", "a", "d"}, wantFolder: []string{"", "", "", ""},
		},
		{
			name:   "before earlier target",
			panels: listPanels("a", "b", "c", "d"), dragged: "d", target: "b", pos: DropBefore,
			wantOrder: []string{"a", "d", "b", "c"}, wantFolder: []string{"", "", "", ""},
		},
		{
			name:   "after last",
			panels: listPanels("a", "b", "c"), dragged: "a", target: "c", pos: DropAfter,
			wantOrder: []string{"b", "c", "a"}, wantFolder: []string{"", "", ""},
		},
		{
			name:   "adopts target folder",
			panels: listPanels("a", "b@f", "c@f"), dragged: "a", target: "c", pos: DropBefore,
			wantOrder: []string{"b", "a", "c"}, wantFolder: []string{"f", "f", "f"},
		},
		{
			name:   "leaves folder for root target",
			panels: listPanels("a", "b@f", "c"), dragged: "b", target: "a", pos: DropBefore,
			wantOrder: []string{"b", "a", "c"}, wantFolder: []string{"", "", ""},
		},
		{
			name:   "self is no-op",
			panels: listPanels("a", "b", "c"), dragged: "b", target: "b", pos: DropAfter,
			wantOrder: []string{"a", "b", "c"}, wantFolder: []string{"", "", ""},
		},
		{
			name:   "unknown target",
			panels: listPanels("a", "b"), dragged: "a", target: "z", pos: DropAfter,
			wantOrder: []string{"a", "b"}, wantFolder: []string{"", ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DropOnPanel(tt.panels, tt.dragged, tt.target, tt.pos)
			if !equalIDs(ids(got), tt.wantOrder) {
				t.Errorf("order = %v, want %v", ids(got), tt.wantOrder)
			}
			if !equalIDs(folderIDs(got), tt.wantFolder) {
				t.Errorf("folders = %v, want %v", folderIDs(got), tt.wantFolder)
			}
			if len(got) != len(tt.panels) {
				t.Errorf("len = %d, want %d", len(got), len(tt.panels))
			}
		})
	}
}

func TestDropOnPanelPreservesOthers(t *testing.T) {
	panels := listPanels("a", "b", "c", "d", "e", "f", "g")
	got := DropOnPanel(panels, "c", "f", DropAfter)

	var rest []string
	for _, id := range ids(got) {
		if id != "c" {
			rest = append(rest, id)
		}
	}
	if !equalIDs(rest, []string{"a", "b", "d", "e", "f", "g"}) {
		t.Errorf("relative order broken: %v", ids(got))
	}
}

func TestDropOnFolderHeader(t *testing.T) {
	folders := []workspace.Folder{{ID: "f"}, {ID: "empty"}}

	got := DropOnFolderHeader(listPanels("a", "b@f", "c@f", "d"), folders, "a", "f")
	if !equalIDs(ids(got), []string{"b", "c", "a", "d"}) {
		t.Errorf("order = %v", ids(got))
	}
	if got[2].FolderID != "f" {
		t.Errorf("folder = %q", got[2].FolderID)
	}

	got = DropOnFolderHeader(listPanels("a", "b", "c"), folders, "a", "empty")
	if !equalIDs(ids(got), []string{"b", "c", "a"}) || got[2].FolderID != "empty" {
		t.Errorf("empty folder: order = %v folder = %q", ids(got), got[2].FolderID)
	}

	got = DropOnFolderHeader(listPanels("a", "b"), folders, "a", "missing")
	if !equalIDs(ids(got), []string{"a", "b"}) || got[0].FolderID != "" {
		t.Error("unknown folder changed the list")
	}
}

func TestDropOnRoot(t *testing.T) {
	got := DropOnRoot(listPanels("a", "b@f", "c", "d@f"), "d")
	if !equalIDs(ids(got), []string{"a", "b", "c", "d"}) {
		t.Errorf("order = %v", ids(got))
	}
	if !equalIDs(folderIDs(got), []string{"", "f", "", ""}) {
		t.Errorf("folders = %v", folderIDs(got))
	}

	got = DropOnRoot(listPanels("a@f", "b", "c@f"), "a")
	if !equalIDs(ids(got), []string{"b", "a", "c"}) || got[1].FolderID != "" {
		t.Errorf("order = %v folders = %v", ids(got), folderIDs(got))
	}

	got = DropOnRoot(listPanels("a", "b"), "a")
	if !equalIDs(ids(got), []string{"a", "b"}) {
		t.Error("root panel moved")
	}
}
