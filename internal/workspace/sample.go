package workspace

import (
	"encoding/json"
	"time"

	"github.com/panelspace/panelspace/internal/geom"
	"github.com/panelspace/panelspace/internal/typeid"
)

// NewSample builds a small workspace that exercises every panel kind: two
// uploads of the same dataset, a graph and a model derived from the first,
// an editor, a merge panel and a profiling report inside a folder.
func NewSample(workspaceID string) *Workspace {
	now := time.Now().UTC().Format(time.RFC3339)

	salesID := typeid.NewPanelID()
	salesV2ID := typeid.NewPanelID()
	graphID := typeid.NewPanelID()
	modelID := typeid.NewPanelID()
	editorID := typeid.NewPanelID()
	mergeID := typeid.NewPanelID()
	reportID := typeid.NewPanelID()
	folderID := typeid.NewFolderID()

	panels := []Panel{
		{
			ID: salesID, Kind: KindDataset, Name: "sales.csv",
			X: 0, Y: 0, Width: 480, Height: 320, ZOrder: 1,
			Expanded: true,
			Content:  json.RawMessage(`{"datasetId":1}`),
		},
		{
			ID: graphID, Kind: KindGraph, Name: "Revenue by region",
			X: 540, Y: 0, Width: 420, Height: 300, ZOrder: 2,
			ParentID: salesID, Expanded: true,
			Content: json.RawMessage(`{"datasetId":1,"chart":"bar","x":"region","y":"revenue"}`),
		},
		{
			ID: modelID, Kind: KindModel, Name: "Churn classifier",
			X: 540, Y: 360, Width: 380, Height: 280, ZOrder: 3,
			ParentID: salesID, Expanded: true,
			Content: json.RawMessage(`{"datasetId":1,"target":"churned","algorithm":"random_forest"}`),
		},
		{
			ID: salesV2ID, Kind: KindDataset, Name: "sales.csv",
			X: 0, Y: 380, Width: 480, Height: 320, ZOrder: 4,
			Content: json.RawMessage(`{"datasetId":2}`),
		},
		{
			ID: editorID, Kind: KindDataEditor, Name: "Edit customers",
			X: 1000, Y: 0, Width: 440, Height: 300, ZOrder: 5,
			Expanded: true,
			Content:  json.RawMessage(`{"datasetId":3}`),
		},
		{
			ID: mergeID, Kind: KindMerge, Name: "Merge sales + customers",
			X: 1000, Y: 360, Width: 360, Height: 240, ZOrder: 6,
			ParentID: editorID,
			Content:  json.RawMessage(`{"strategy":"merge_on_column","column":"customer_id"}`),
		},
		{
			ID: reportID, Kind: KindReport, Name: "Cleaning report",
			X: -420, Y: 0, Width: 360, Height: 220, ZOrder: 7,
			FolderID: folderID,
			Content:  json.RawMessage(`{"datasetId":1}`),
		},
	}

	visible := make([]string, 0, len(panels))
	for _, p := range panels {
		visible = append(visible, p.ID)
	}

	return &Workspace{
		ID:        workspaceID,
		Name:      "Sample workspace",
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
		Panels:    panels,
		Folders: []Folder{
			{ID: folderID, Name: "Reports", Color: FolderPalette[0], Expanded: true},
		},
		VisiblePanelIDs: visible,
		Viewport:        geom.Viewport{X: 460, Y: 40, Zoom: 0.75},
	}
}

// FolderPalette is the rotation of colors given to new folders.
var FolderPalette = []string{
	"#6366f1", "#14b8a6", "#f97316", "#a855f7", "#ef4444", "#22c55e", "#eab308", "#0ea5e9",
}
