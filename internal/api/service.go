package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/panelspace/panelspace/internal/engine"
	"github.com/panelspace/panelspace/internal/geom"
	"github.com/panelspace/panelspace/internal/store"
	"github.com/panelspace/panelspace/internal/typeid"
	"github.com/panelspace/panelspace/internal/workspace"
)

var (
	ErrNotFound  = errors.New("workspace not found")
	ErrForbidden = errors.New("forbidden")
	ErrInvalid   = errors.New("invalid request")
)

type Service struct {
	store store.Store
	opts  engine.Options
}

func NewService(st store.Store, opts engine.Options) *Service {
	return &Service{store: st, opts: opts}
}

func (s *Service) Create(ctx context.Context, name, ownerID string, sample bool) (*workspace.Workspace, error) {
	id := typeid.NewWorkspaceID()
	var ws *workspace.Workspace
	if sample {
		ws = workspace.NewSample(id)
	} else {
		ws = workspace.NewEmpty(id, name)
	}
	if name = strings.TrimSpace(name); name != "" {
		ws.Name = name
	}
	ws.OwnerID = ownerID
	now := time.Now().UTC().Format(time.RFC3339)
	ws.CreatedAt, ws.UpdatedAt = now, now

	if err := s.store.Save(ctx, ws); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return ws, nil
}

func (s *Service) Get(ctx context.Context, workspaceID, userID string) (*workspace.Workspace, error) {
	ws, err := s.store.Load(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	if ws.OwnerID != "" && ws.OwnerID != userID {
		return nil, ErrForbidden
	}
	return ws, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]store.Summary, error) {
	list, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return list, nil
}

func (s *Service) Delete(ctx context.Context, workspaceID, userID string) error {
	if _, err := s.Get(ctx, workspaceID, userID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, workspaceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}

// Mutate loads the workspace into a fresh engine, runs fn and saves the
// result if fn changed anything.
func (s *Service) Mutate(ctx context.Context, workspaceID, userID string, fn func(e *engine.Engine) error) (*workspace.Workspace, error) {
	e, err := s.open(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(e); err != nil {
		return nil, err
	}

	ws := e.Workspace()
	if e.Revision() == 0 {
		return ws, nil
	}
	if err := s.store.Save(ctx, ws); err != nil {
		return nil, fmt.Errorf("save workspace: %w", err)
	}
	return ws, nil
}

// View describes a canvas for read-only queries. A nil viewport uses the
// one stored with the workspace.
type View struct {
	Viewport *geom.Viewport `json:"viewport,omitempty"`
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	Buffer   *float64       `json:"buffer,omitempty"`
}

type CullResponse struct {
	Bounds   geom.Rect            `json:"bounds"`
	Visible  []string             `json:"visible"`
	Sorted   []string             `json:"sorted"`
	Commands []engine.DrawCommand `json:"commands"`
}

func (s *Service) Cull(ctx context.Context, workspaceID, userID string, view View) (*CullResponse, error) {
	e, err := s.openView(ctx, workspaceID, userID, view)
	if err != nil {
		return nil, err
	}
	result := e.Cull()
	commands := e.DrawCommands()
	if commands == nil {
		commands = []engine.DrawCommand{}
	}
	return &CullResponse{
		Bounds:   result.Bounds,
		Visible:  panelIDs(result.Visible),
		Sorted:   panelIDs(result.Sorted),
		Commands: commands,
	}, nil
}

// HitTest resolves a screen position to the topmost shown panel.
func (s *Service) HitTest(ctx context.Context, workspaceID, userID string, view View, x, y float64) (*engine.HitTestResult, error) {
	e, err := s.openView(ctx, workspaceID, userID, view)
	if err != nil {
		return nil, err
	}
	result := e.Hit(x, y)
	return &result, nil
}

func (s *Service) open(ctx context.Context, workspaceID, userID string) (*engine.Engine, error) {
	ws, err := s.Get(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	e := engine.NewEngine(s.opts)
	e.Load(ws)
	return e, nil
}

func (s *Service) openView(ctx context.Context, workspaceID, userID string, view View) (*engine.Engine, error) {
	if view.Width < 0 || view.Height < 0 {
		return nil, fmt.Errorf("%w: negative container size", ErrInvalid)
	}
	e, err := s.open(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if view.Viewport != nil {
		e.SetViewport(*view.Viewport)
	}
	if view.Buffer != nil {
		e.SetBuffer(*view.Buffer)
	}
	e.SetContainer(view.Width, view.Height)
	return e, nil
}

func panelIDs(panels []workspace.Panel) []string {
	out := make([]string, len(panels))
	for i, p := range panels {
		out[i] = p.ID
	}
	return out
}
