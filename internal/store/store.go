// Package store persists workspace snapshots. The engine never talks to a
// store directly; hosts load a workspace, hand it to an engine and save the
// engine's copy back.
package store

import (
	"context"
	"errors"

	"github.com/panelspace/panelspace/internal/workspace"
)

var (
	ErrNotFound = errors.New("workspace not found")
	ErrNoID     = errors.New("workspace has no id")
)

// Store loads and saves whole workspaces.
type Store interface {
	Load(ctx context.Context, id string) (*workspace.Workspace, error)
	// Save inserts or replaces the workspace and bumps its version.
	Save(ctx context.Context, ws *workspace.Workspace) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, ownerID string) ([]Summary, error)
}

// Summary is the listing view of a workspace.
type Summary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OwnerID    string `json:"ownerId"`
	Version    int    `json:"version"`
	PanelCount int    `json:"panelCount"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

func summarize(ws *workspace.Workspace) Summary {
	return Summary{
		ID:         ws.ID,
		Name:       ws.Name,
		OwnerID:    ws.OwnerID,
		Version:    ws.Version,
		PanelCount: len(ws.Panels),
		CreatedAt:  ws.CreatedAt,
		UpdatedAt:  ws.UpdatedAt,
	}
}
