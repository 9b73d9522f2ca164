package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/panelspace/panelspace/internal/engine"
	"github.com/panelspace/panelspace/internal/geom"
)

var (
	ErrUnknownType = errors.New("unknown message type")
	ErrBadPayload  = errors.New("invalid payload")
)

func decode[T any](msg *Message) (T, error) {
	var p T
	if len(msg.Payload) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return p, fmt.Errorf("%w for %s: %v", ErrBadPayload, msg.Type, err)
	}
	return p, nil
}

// apply runs one client message against the engine. Queries return their
// answer; commands return nil and the caller follows up with a frame.
func apply(e *engine.Engine, msg *Message) (*Message, error) {
	switch msg.Type {
	case TypePointerDown:
		p, err := decode[PointerPayload](msg)
		if err != nil {
			return nil, err
		}
		return nil, e.PointerDown(p.PanelID, p.Handle, p.X, p.Y)
	case TypePointerMove:
		p, err := decode[PointerPayload](msg)
		if err != nil {
			return nil, err
		}
		e.PointerMove(p.X, p.Y)
	case TypePointerUp:
		p, err := decode[PointerPayload](msg)
		if err != nil {
			return nil, err
		}
		e.PointerUp(p.X, p.Y)
	case TypeWindowBlur:
		e.Blur()

	case TypeViewportSet:
		vp, err := decode[geom.Viewport](msg)
		if err != nil {
			return nil, err
		}
		e.SetViewport(vp)
	case TypeViewportZoom:
		p, err := decode[ZoomPayload](msg)
		if err != nil {
			return nil, err
		}
		if p.Factor <= 0 {
			return nil, fmt.Errorf("%w: zoom factor must be positive", ErrBadPayload)
		}
		e.ZoomAt(p.X, p.Y, p.Factor)
	case TypeViewportFit:
		p, err := decode[FitPayload](msg)
		if err != nil {
			return nil, err
		}
		e.FitAll(p.Margin)
	case TypeContainerSet:
		p, err := decode[ContainerPayload](msg)
		if err != nil {
			return nil, err
		}
		e.SetContainer(p.Width, p.Height)

	case TypePanelAdd:
		p, err := decode[PanelAddPayload](msg)
		if err != nil {
			return nil, err
		}
		if !p.Panel.Kind.Valid() {
			return nil, fmt.Errorf("%w: unknown panel kind %q", ErrBadPayload, p.Panel.Kind)
		}
		e.AddPanel(p.Panel)
	case TypePanelRemove:
		p, err := decode[PanelPayload](msg)
		if err != nil {
			return nil, err
		}
		e.RemovePanel(p.PanelID)
	case TypePanelVisible:
		p, err := decode[PanelPayload](msg)
		if err != nil {
			return nil, err
		}
		if p.Visible == nil {
			e.TogglePanelVisible(p.PanelID)
		} else {
			e.SetPanelVisible(p.PanelID, *p.Visible)
		}
	case TypePanelLock:
		p, err := decode[PanelPayload](msg)
		if err != nil {
			return nil, err
		}
		e.TogglePanelLocked(p.PanelID)
	case TypePanelExpand:
		p, err := decode[PanelPayload](msg)
		if err != nil {
			return nil, err
		}
		if p.Expanded == nil {
			return nil, fmt.Errorf("%w: expanded is required", ErrBadPayload)
		}
		e.SetPanelExpanded(p.PanelID, *p.Expanded)
	case TypePanelFocus:
		p, err := decode[PanelPayload](msg)
		if err != nil {
			return nil, err
		}
		e.Focus(p.PanelID)

	case TypeFolderCreate:
		p, err := decode[FolderPayload](msg)
		if err != nil {
			return nil, err
		}
		id := e.CreateFolder(p.Name)
		return newMessage(TypeFolderCreated, FolderCreatedPayload{FolderID: id}), nil
	case TypeFolderDelete:
		p, err := decode[FolderPayload](msg)
		if err != nil {
			return nil, err
		}
		if p.KeepPanels {
			e.DeleteFolderContentsOnly(p.FolderID)
		} else {
			e.DeleteFolder(p.FolderID)
		}
	case TypeFolderRename:
		p, err := decode[FolderPayload](msg)
		if err != nil {
			return nil, err
		}
		e.RenameFolder(p.FolderID, p.Name)
	case TypeFolderToggle:
		p, err := decode[FolderPayload](msg)
		if err != nil {
			return nil, err
		}
		e.ToggleFolderExpanded(p.FolderID)
	case TypePanelMove:
		p, err := decode[PanelMovePayload](msg)
		if err != nil {
			return nil, err
		}
		e.MovePanelToFolder(p.PanelID, p.FolderID)
	case TypePanelsReorder:
		p, err := decode[ReorderPayload](msg)
		if err != nil {
			return nil, err
		}
		e.ReorderPanels(p.PanelIDs)
	case TypeDropPanel:
		p, err := decode[DropPayload](msg)
		if err != nil {
			return nil, err
		}
		return nil, e.DropOnPanel(p.PanelID, p.TargetID, engine.ParseDropPosition(p.Position))
	case TypeDropFolder:
		p, err := decode[DropPayload](msg)
		if err != nil {
			return nil, err
		}
		return nil, e.DropOnFolder(p.PanelID, p.FolderID)
	case TypeDropRoot:
		p, err := decode[DropPayload](msg)
		if err != nil {
			return nil, err
		}
		return nil, e.DropOnRoot(p.PanelID)
	case TypeGroupType:
		e.GroupByType()
	case TypeGroupRelationship:
		e.GroupByRelationship()
	case TypeSearchSet:
		p, err := decode[SearchPayload](msg)
		if err != nil {
			return nil, err
		}
		e.SetSearchTerm(p.Term)

	case TypeHitTest:
		p, err := decode[HitPayload](msg)
		if err != nil {
			return nil, err
		}
		return newMessage(TypeHitResult, e.Hit(p.X, p.Y)), nil
	case TypeDocRequest:
		return &Message{Type: TypeDocSync, Payload: json.RawMessage(e.GetDocument())}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, msg.Type)
	}
	return nil, nil
}

// errorCode maps an error onto the code sent to the client.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnknownType):
		return "unknown_type"
	case errors.Is(err, ErrBadPayload):
		return "bad_payload"
	case errors.Is(err, engine.ErrPanelNotFound):
		return "not_found"
	case errors.Is(err, engine.ErrPanelLocked):
		return "locked"
	case errors.Is(err, engine.ErrNotAllowed), errors.Is(err, engine.ErrInvalidDirection):
		return "not_allowed"
	case errors.Is(err, engine.ErrDragDisabled):
		return "drag_disabled"
	default:
		return "internal"
	}
}
