package engine

import (
	"slices"
	"strings"

	"github.com/panelspace/panelspace/internal/typeid"
	"github.com/panelspace/panelspace/internal/workspace"
)

// The folder operations below take the caller's lists and return new ones;
// inputs are never modified. Unknown panel or folder ids leave the lists
// unchanged, since a drop can race with the host deleting the panel.

// NewFolder builds an empty, expanded folder. The color rotates through the
// palette by the number of folders that already exist.
func NewFolder(existing []workspace.Folder, name string) workspace.Folder {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "New Folder"
	}
	return workspace.Folder{
		ID:       typeid.NewFolderID(),
		Name:     name,
		Color:    workspace.FolderPalette[len(existing)%len(workspace.FolderPalette)],
		Expanded: true,
	}
}

// CreateFolder appends a new empty folder and returns the list and its id.
func CreateFolder(folders []workspace.Folder, name string) ([]workspace.Folder, string) {
	f := NewFolder(folders, name)
	out := append(slices.Clone(folders), f)
	return out, f.ID
}

// DeleteFolder removes the folder and every panel in it.
func DeleteFolder(panels []workspace.Panel, folders []workspace.Folder, folderID string) ([]workspace.Panel, []workspace.Folder) {
	if indexFolder(folders, folderID) < 0 {
		return panels, folders
	}
	outPanels := make([]workspace.Panel, 0, len(panels))
	for _, p := range panels {
		if p.FolderID != folderID {
			outPanels = append(outPanels, p)
		}
	}
	return outPanels, removeFolder(folders, folderID)
}

// DeleteFolderContentsOnly removes the folder but keeps its panels: each
// member's folder id is cleared and it stays where it is in the list.
func DeleteFolderContentsOnly(panels []workspace.Panel, folders []workspace.Folder, folderID string) ([]workspace.Panel, []workspace.Folder) {
	if indexFolder(folders, folderID) < 0 {
		return panels, folders
	}
	outPanels := slices.Clone(panels)
	for i := range outPanels {
		if outPanels[i].FolderID == folderID {
			outPanels[i].FolderID = ""
		}
	}
	return outPanels, removeFolder(folders, folderID)
}

// RenameFolder sets a folder's name. Blank names are ignored.
func RenameFolder(folders []workspace.Folder, folderID, name string) []workspace.Folder {
	name = strings.TrimSpace(name)
	i := indexFolder(folders, folderID)
	if i < 0 || name == "" {
		return folders
	}
	out := slices.Clone(folders)
	out[i].Name = name
	return out
}

// ToggleFolderExpanded flips a folder's expanded flag.
func ToggleFolderExpanded(folders []workspace.Folder, folderID string) []workspace.Folder {
	i := indexFolder(folders, folderID)
	if i < 0 {
		return folders
	}
	out := slices.Clone(folders)
	out[i].Expanded = !out[i].Expanded
	return out
}

// MovePanelToFolder reassigns a panel's folder. An empty folderID moves it to
// the root level. List order is unchanged.
func MovePanelToFolder(panels []workspace.Panel, folders []workspace.Folder, panelID, folderID string) []workspace.Panel {
	i := indexPanel(panels, panelID)
	if i < 0 {
		return panels
	}
	if folderID != "" && indexFolder(folders, folderID) < 0 {
		return panels
	}
	out := slices.Clone(panels)
	out[i].FolderID = folderID
	return out
}

// ReorderPanels replaces the list order with newOrder. newOrder must hold
// exactly the same panel ids; otherwise the current list is returned. Panel
// data is taken from current so stale copies in newOrder cannot overwrite
// geometry committed since.
func ReorderPanels(current []workspace.Panel, newOrder []string) []workspace.Panel {
	if len(newOrder) != len(current) {
		return current
	}
	byID := make(map[string]workspace.Panel, len(current))
	for _, p := range current {
		byID[p.ID] = p
	}
	out := make([]workspace.Panel, 0, len(current))
	seen := make(map[string]bool, len(newOrder))
	for _, id := range newOrder {
		p, ok := byID[id]
		if !ok || seen[id] {
			return current
		}
		seen[id] = true
		out = append(out, p)
	}
	return out
}

func indexPanel(panels []workspace.Panel, id string) int {
	return slices.IndexFunc(panels, func(p workspace.Panel) bool { return p.ID == id })
}

func indexFolder(folders []workspace.Folder, id string) int {
	return slices.IndexFunc(folders, func(f workspace.Folder) bool { return f.ID == id })
}

func removeFolder(folders []workspace.Folder, id string) []workspace.Folder {
	return slices.DeleteFunc(slices.Clone(folders), func(f workspace.Folder) bool { return f.ID == id })
}
