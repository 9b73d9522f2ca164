package session

import (
	"encoding/json"

	"github.com/panelspace/panelspace/internal/engine"
	"github.com/panelspace/panelspace/internal/geom"
	"github.com/panelspace/panelspace/internal/workspace"
)

type Message struct {
	Type        string          `json:"type"`
	WorkspaceID string          `json:"workspaceId,omitempty"`
	ClientID    string          `json:"clientId,omitempty"`
	UserID      string          `json:"userId,omitempty"`
	Seq         int64           `json:"seq,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

const (
	// Pointer input, screen coordinates
	TypePointerDown = "pointer.down"
	TypePointerMove = "pointer.move"
	TypePointerUp   = "pointer.up"
	TypeWindowBlur  = "window.blur"

	// Viewport
	TypeViewportSet  = "viewport.set"
	TypeViewportZoom = "viewport.zoom"
	TypeViewportFit  = "viewport.fit"
	TypeContainerSet = "container.set"

	// Panels
	TypePanelAdd     = "panel.add"
	TypePanelRemove  = "panel.remove"
	TypePanelVisible = "panel.visible"
	TypePanelLock    = "panel.lock"
	TypePanelExpand  = "panel.expand"
	TypePanelFocus   = "panel.focus"

	// Folders and list order
	TypeFolderCreate      = "folder.create"
	TypeFolderDelete      = "folder.delete"
	TypeFolderRename      = "folder.rename"
	TypeFolderToggle      = "folder.toggle"
	TypePanelMove         = "panel.move"
	TypePanelsReorder     = "panels.reorder"
	TypeDropPanel         = "drop.panel"
	TypeDropFolder        = "drop.folder"
	TypeDropRoot          = "drop.root"
	TypeGroupType         = "group.type"
	TypeGroupRelationship = "group.relationship"
	TypeSearchSet         = "search.set"

	// Queries
	TypeHitTest    = "hit.test"
	TypeDocRequest = "doc.request"

	// Server to client
	TypeWelcome        = "welcome"
	TypeDocSync        = "doc.sync"
	TypeFrame          = "frame"
	TypeGeometryUpdate = "geometry.update"
	TypeHitResult      = "hit.result"
	TypeFolderCreated  = "folder.created"
	TypeError          = "error"
)

type PointerPayload struct {
	PanelID string  `json:"panelId,omitempty"`
	Handle  string  `json:"handle,omitempty"` // Resize direction; empty means drag
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

type ZoomPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Factor float64 `json:"factor"`
}

type FitPayload struct {
	Margin float64 `json:"margin"`
}

type ContainerPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PanelAddPayload struct {
	Panel workspace.Panel `json:"panel"`
}

type PanelPayload struct {
	PanelID  string `json:"panelId"`
	Visible  *bool  `json:"visible,omitempty"`
	Expanded *bool  `json:"expanded,omitempty"`
}

type FolderPayload struct {
	FolderID   string `json:"folderId,omitempty"`
	Name       string `json:"name,omitempty"`
	KeepPanels bool   `json:"keepPanels,omitempty"`
}

type PanelMovePayload struct {
	PanelID  string `json:"panelId"`
	FolderID string `json:"folderId"`
}

type ReorderPayload struct {
	PanelIDs []string `json:"panelIds"`
}

type DropPayload struct {
	PanelID  string `json:"panelId"`
	TargetID string `json:"targetId,omitempty"`
	FolderID string `json:"folderId,omitempty"`
	Position string `json:"position,omitempty"` // "before" or "after"
}

type SearchPayload struct {
	Term string `json:"term"`
}

type HitPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type WelcomePayload struct {
	ClientID    string `json:"clientId"`
	WorkspaceID string `json:"workspaceId"`
}

type FramePayload struct {
	Revision uint64               `json:"revision"`
	Viewport geom.Viewport        `json:"viewport"`
	Gesture  string               `json:"gesture"`
	PanelID  string               `json:"panelId,omitempty"`
	Commands []engine.DrawCommand `json:"commands"`
}

type GeometryPayload struct {
	Updates []engine.GeometryUpdate `json:"updates"`
}

type HitResultPayload = engine.HitTestResult

type FolderCreatedPayload struct {
	FolderID string `json:"folderId"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newMessage(msgType string, payload any) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: msgType, Payload: data}
}
