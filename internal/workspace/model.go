package workspace

import (
	"encoding/json"
	"slices"

	"github.com/panelspace/panelspace/internal/geom"
)

// Workspace is the caller-owned snapshot of a canvas: the ordered panel list,
// the folders, the set of visible panel ids and the last viewport.
type Workspace struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	OwnerID         string        `json:"ownerId,omitempty"`
	Version         int           `json:"version"`
	CreatedAt       string        `json:"createdAt"`
	UpdatedAt       string        `json:"updatedAt"`
	Panels          []Panel       `json:"panels"`
	Folders         []Folder      `json:"folders"`
	VisiblePanelIDs []string      `json:"visiblePanelIds"`
	Viewport        geom.Viewport `json:"viewport"`
}

// Panel is a rectangle placed on the canvas.
type Panel struct {
	ID       string  `json:"id"`
	Kind     Kind    `json:"kind"`
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	ZOrder   int64   `json:"zOrder"`
	FolderID string  `json:"folderId,omitempty"` // empty means root level
	ParentID string  `json:"parentId,omitempty"` // panel this one was derived from
	Locked   bool    `json:"locked"`
	Expanded bool    `json:"expanded"`

	// Optional per-panel size floor; zero falls back to the kind's minimum.
	MinWidth  float64 `json:"minWidth,omitempty"`
	MinHeight float64 `json:"minHeight,omitempty"`

	Content json.RawMessage `json:"content,omitempty"`
}

// Folder is a named grouping. Membership lives on Panel.FolderID.
type Folder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Expanded bool   `json:"isExpanded"`
}

// Rect returns the panel's world-space rectangle.
func (p Panel) Rect() geom.Rect {
	return geom.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// MinSize returns the effective resize floor.
func (p Panel) MinSize() (float64, float64) {
	w, h := p.Kind.MinSize()
	if p.MinWidth > 0 {
		w = p.MinWidth
	}
	if p.MinHeight > 0 {
		h = p.MinHeight
	}
	return w, h
}

// InRoot reports whether the panel is not in any folder.
func (p Panel) InRoot() bool {
	return p.FolderID == ""
}

// NewEmpty creates an empty workspace.
func NewEmpty(id, name string) *Workspace {
	return &Workspace{
		ID:              id,
		Name:            name,
		Version:         1,
		Panels:          []Panel{},
		Folders:         []Folder{},
		VisiblePanelIDs: []string{},
		Viewport:        geom.DefaultViewport(),
	}
}

// PanelIndex returns the list position of a panel, or -1.
func (w *Workspace) PanelIndex(id string) int {
	return slices.IndexFunc(w.Panels, func(p Panel) bool { return p.ID == id })
}

// Panel looks up a panel by id.
func (w *Workspace) Panel(id string) (Panel, bool) {
	if i := w.PanelIndex(id); i >= 0 {
		return w.Panels[i], true
	}
	return Panel{}, false
}

// FolderIndex returns the list position of a folder, or -1.
func (w *Workspace) FolderIndex(id string) int {
	return slices.IndexFunc(w.Folders, func(f Folder) bool { return f.ID == id })
}

// Folder looks up a folder by id.
func (w *Workspace) Folder(id string) (Folder, bool) {
	if i := w.FolderIndex(id); i >= 0 {
		return w.Folders[i], true
	}
	return Folder{}, false
}

// Members returns the panels of a folder in list order. An empty folderID
// returns the root-level panels.
func (w *Workspace) Members(folderID string) []Panel {
	var out []Panel
	for _, p := range w.Panels {
		if p.FolderID == folderID {
			out = append(out, p)
		}
	}
	return out
}

// IsVisible reports whether the panel id is in the visible set.
func (w *Workspace) IsVisible(id string) bool {
	return slices.Contains(w.VisiblePanelIDs, id)
}

// SetVisible adds or removes id from the visible set.
func (w *Workspace) SetVisible(id string, visible bool) {
	i := slices.Index(w.VisiblePanelIDs, id)
	switch {
	case visible && i < 0:
		w.VisiblePanelIDs = append(w.VisiblePanelIDs, id)
	case !visible && i >= 0:
		w.VisiblePanelIDs = slices.Delete(w.VisiblePanelIDs, i, i+1)
	}
}

// ShownPanels returns the panels in the visible set, in list order.
func (w *Workspace) ShownPanels() []Panel {
	set := make(map[string]struct{}, len(w.VisiblePanelIDs))
	for _, id := range w.VisiblePanelIDs {
		set[id] = struct{}{}
	}
	out := make([]Panel, 0, len(set))
	for _, p := range w.Panels {
		if _, ok := set[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Bounds returns the union of every panel rectangle.
func (w *Workspace) Bounds() geom.Rect {
	var r geom.Rect
	for _, p := range w.Panels {
		r = r.Union(p.Rect())
	}
	return r
}

// Clone returns a deep copy. Content payloads are shared; they are never
// mutated.
func (w *Workspace) Clone() *Workspace {
	c := *w
	c.Panels = slices.Clone(w.Panels)
	c.Folders = slices.Clone(w.Folders)
	c.VisiblePanelIDs = slices.Clone(w.VisiblePanelIDs)
	if c.Panels == nil {
		c.Panels = []Panel{}
	}
	if c.Folders == nil {
		c.Folders = []Folder{}
	}
	if c.VisiblePanelIDs == nil {
		c.VisiblePanelIDs = []string{}
	}
	return &c
}
