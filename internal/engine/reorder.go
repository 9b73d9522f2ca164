package engine

import (
	"slices"

	"github.com/panelspace/panelspace/internal/geom"
	"github.com/panelspace/panelspace/internal/workspace"
)

// DropPosition says on which side of the target the dragged panel lands.
type DropPosition int

const (
	DropBefore DropPosition = iota
	DropAfter
)

func (d DropPosition) String() string {
	if d == DropAfter {
		return "after"
	}
	return "before"
}

// ParseDropPosition accepts "before" and "after"; anything else is before.
func ParseDropPosition(s string) DropPosition {
	if s == "after" {
		return DropAfter
	}
	return DropBefore
}

// DropPositionFor compares the pointer's vertical offset into the target's
// rectangle against its midpoint.
func DropPositionFor(pointerY float64, target geom.Rect) DropPosition {
	if pointerY-target.Y < target.Height/2 {
		return DropBefore
	}
	return DropAfter
}

// DropOnPanel moves dragged immediately before or after target in a single
// pass over the list and gives it the target's folder. Every other panel
// keeps its relative order. Dropping a panel on itself, or referencing an
// unknown id, returns the list unchanged.
func DropOnPanel(panels []workspace.Panel, draggedID, targetID string, pos DropPosition) []workspace.Panel {
	if draggedID == targetID {
		return panels
	}
	di := indexPanel(panels, draggedID)
	ti := indexPanel(panels, targetID)
	if di < 0 || ti < 0 {
		return panels
	}

	moved := panels[di]
	moved.FolderID = panels[ti].FolderID

	out := make([]workspace.Panel, 0, len(panels))
	for i, p := range panels {
		if i == di {
			continue
		}
		if i == ti && pos == DropBefore {
			out = append(out, moved)
		}
		out = append(out, p)
		if i == ti && pos == DropAfter {
			out = append(out, moved)
		}
	}
	return out
}

// DropOnFolderHeader appends dragged after the last member of the folder. An
// empty folder receives it at the end of the list.
func DropOnFolderHeader(panels []workspace.Panel, folders []workspace.Folder, draggedID, folderID string) []workspace.Panel {
	if indexFolder(folders, folderID) < 0 {
		return panels
	}
	di := indexPanel(panels, draggedID)
	if di < 0 {
		return panels
	}

	moved := panels[di]
	moved.FolderID = folderID
	rest := slices.Delete(slices.Clone(panels), di, di+1)

	at := len(rest)
	for i := len(rest) - 1; i >= 0; i-- {
		if rest[i].FolderID == folderID {
			at = i + 1
			break
		}
	}
	return slices.Insert(rest, at, moved)
}

// DropOnRoot moves a folder member out to the root level, placing it after
// the last root panel. Panels already at root are left alone.
func DropOnRoot(panels []workspace.Panel, draggedID string) []workspace.Panel {
	di := indexPanel(panels, draggedID)
	if di < 0 || panels[di].InRoot() {
		return panels
	}

	moved := panels[di]
	moved.FolderID = ""
	rest := slices.Delete(slices.Clone(panels), di, di+1)

	at := len(rest)
	for i := len(rest) - 1; i >= 0; i-- {
		if rest[i].InRoot() {
			at = i + 1
			break
		}
	}
	return slices.Insert(rest, at, moved)
}
