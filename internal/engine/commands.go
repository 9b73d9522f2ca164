package engine

import (
	"encoding/json"

	"github.com/panelspace/panelspace/internal/geom"
	"github.com/panelspace/panelspace/internal/workspace"
)

// DrawCommand tells the frontend where to mount one panel. The frontend
// receives a list of these in painter's order and renders each panel's
// content inside the given screen rectangle.
type DrawCommand struct {
	Op        string         `json:"op"`                 // "panel"
	PanelID   string         `json:"panelId"`            // For hit correlation
	Kind      workspace.Kind `json:"kind"`               // Content family
	Name      string         `json:"name,omitempty"`     // Header title
	Icon      string         `json:"icon,omitempty"`     // Header icon
	Color     string         `json:"color,omitempty"`    // Header accent
	Transform []float64      `json:"transform"`          // [a, b, c, d, e, f] world -> screen
	Screen    geom.Rect      `json:"screen"`             // Panel rect in screen pixels
	ZIndex    int            `json:"zIndex"`             // Position in paint order
	ZOrder    int64          `json:"zOrder"`             // Stacking value
	FolderID  string         `json:"folderId,omitempty"` // Folder membership
	Locked    bool           `json:"locked,omitempty"`
	Expanded  bool           `json:"expanded,omitempty"`
	Active    bool           `json:"active,omitempty"` // Under drag/resize
}

// CompileDrawCommands generates draw commands for panels already in paint
// order (as returned in CullResult.Sorted). activeID marks the panel under
// gesture, if any.
func CompileDrawCommands(sorted []workspace.Panel, vp geom.Viewport, activeID string) []DrawCommand {
	if len(sorted) == 0 {
		return nil
	}

	m := vp.Matrix()
	transform := m.ToSlice()
	commands := make([]DrawCommand, 0, len(sorted))
	for i, p := range sorted {
		commands = append(commands, DrawCommand{
			Op:        "panel",
			PanelID:   p.ID,
			Kind:      p.Kind,
			Name:      p.Name,
			Icon:      p.Kind.Icon(),
			Color:     p.Kind.Color(),
			Transform: transform,
			Screen:    m.TransformRect(p.Rect()),
			ZIndex:    i,
			ZOrder:    p.ZOrder,
			FolderID:  p.FolderID,
			Locked:    p.Locked,
			Expanded:  p.Expanded,
			Active:    p.ID == activeID,
		})
	}
	return commands
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// HitTestResult is the answer to a hit test. X and Y are the probed point in
// world space; Screen is the hit panel's rectangle in screen pixels, for
// drawing a selection outline. PanelID is empty when nothing was hit.
type HitTestResult struct {
	PanelID string     `json:"panelId"`
	X       float64    `json:"x"`
	Y       float64    `json:"y"`
	Screen  *geom.Rect `json:"screen,omitempty"`
}
