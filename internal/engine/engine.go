package engine

import (
	"encoding/json"
	"slices"

	"github.com/panelspace/panelspace/internal/geom"
	"github.com/panelspace/panelspace/internal/typeid"
	"github.com/panelspace/panelspace/internal/workspace"
)

// Options configures an Engine.
type Options struct {
	// Buffer is the culling margin in screen pixels. Zero means DefaultCullBuffer;
	// use SetBuffer for an exact zero margin.
	Buffer float64
	// Stacker hands out z-orders. Nil means DefaultStacker().
	Stacker *Stacker
	// MinWidth and MinHeight raise the resize floor for every panel.
	MinWidth, MinHeight float64
}

// Engine drives one workspace for a host. The host feeds it the viewport,
// container size and pointer input; the engine keeps the panel list as the
// host's working copy, commits gesture geometry into it, and answers render
// and hit-test queries. An Engine is not safe for concurrent use; hosts call
// it from a single event loop.
type Engine struct {
	ws *workspace.Workspace

	containerWidth  float64
	containerHeight float64
	buffer          float64

	stacker      *Stacker
	interactions InteractionOrder

	pointers *PointerBus
	gesture  *Gesture
	updates  []GeometryUpdate

	searchTerm string

	// Incremented on every mutation of the workspace.
	revision uint64
}

// NewEngine creates an engine holding an empty workspace.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		ws:       workspace.NewEmpty("", ""),
		buffer:   opts.Buffer,
		stacker:  opts.Stacker,
		pointers: NewPointerBus(),
	}
	if e.buffer == 0 {
		e.buffer = DefaultCullBuffer
	}
	if e.stacker == nil {
		e.stacker = DefaultStacker()
	}
	e.gesture = NewGesture(e.pointers, e.commit)
	e.gesture.SetMinimum(opts.MinWidth, opts.MinHeight)
	return e
}

// --- Commands (host → engine) ---

// Load replaces the workspace with a copy of ws. Panels without a z-order
// are registered with the stacker in list order; existing values are kept
// and the stacker is moved past them.
func (e *Engine) Load(ws *workspace.Workspace) {
	e.gesture.Abort()
	e.ws = ws.Clone()
	for i := range e.ws.Panels {
		p := &e.ws.Panels[i]
		if p.ZOrder <= 0 {
			p.ZOrder = e.stacker.AssignInitial()
		} else {
			e.stacker.Observe(p.ZOrder)
		}
	}
	e.interactions = InteractionOrder{}
	e.updates = nil
	e.searchTerm = ""
	e.revision = 0
}

// LoadJSON loads a workspace snapshot from JSON.
func (e *Engine) LoadJSON(data []byte) error {
	var ws workspace.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return err
	}
	e.Load(&ws)
	return nil
}

// SetViewport sets the pan/zoom transform.
func (e *Engine) SetViewport(vp geom.Viewport) {
	if vp.Zoom <= 0 {
		vp.Zoom = 1
	}
	if e.ws.Viewport != vp {
		e.ws.Viewport = vp
		e.touch()
	}
}

// SetContainer sets the canvas size in screen pixels.
func (e *Engine) SetContainer(width, height float64) {
	e.containerWidth = max(width, 0)
	e.containerHeight = max(height, 0)
}

// SetBuffer sets the culling margin in screen pixels.
func (e *Engine) SetBuffer(buffer float64) {
	e.buffer = max(buffer, 0)
}

// ZoomAt zooms by factor around a screen position.
func (e *Engine) ZoomAt(screenX, screenY, factor float64) {
	e.SetViewport(e.ws.Viewport.ZoomAt(geom.Point{X: screenX, Y: screenY}, factor))
}

// FitAll frames every panel in the container.
func (e *Engine) FitAll(margin float64) {
	e.SetViewport(geom.FitViewport(e.ws.Bounds(), e.containerWidth, e.containerHeight, margin))
}

// AddPanel registers a new panel created by the host. It gets an id if it
// has none, a fresh z-order on top of everything, and is made visible.
func (e *Engine) AddPanel(p workspace.Panel) string {
	if p.ID == "" {
		p.ID = typeid.NewPanelID()
	}
	if e.ws.PanelIndex(p.ID) >= 0 {
		return p.ID
	}
	if p.FolderID != "" && e.ws.FolderIndex(p.FolderID) < 0 {
		p.FolderID = ""
	}
	e.stacker.BringToFront(&p)
	e.ws.Panels = append(e.ws.Panels, p)
	e.ws.SetVisible(p.ID, true)
	e.interactions.Record(p.ID)
	e.touch()
	return p.ID
}

// RemovePanel deletes a panel. A gesture on it is aborted.
func (e *Engine) RemovePanel(id string) {
	i := e.ws.PanelIndex(id)
	if i < 0 {
		return
	}
	if e.gesture.PanelID() == id {
		e.gesture.Abort()
	}
	e.ws.Panels = slices.Delete(e.ws.Panels, i, i+1)
	e.ws.SetVisible(id, false)
	e.interactions.Forget(id)
	e.touch()
}

// SetPanelVisible adds or removes the panel from the visible set. Locked
// panels may still be hidden and shown.
func (e *Engine) SetPanelVisible(id string, visible bool) {
	if e.ws.PanelIndex(id) < 0 || e.ws.IsVisible(id) == visible {
		return
	}
	e.ws.SetVisible(id, visible)
	e.touch()
}

// TogglePanelVisible flips the panel's visibility.
func (e *Engine) TogglePanelVisible(id string) {
	e.SetPanelVisible(id, !e.ws.IsVisible(id))
}

// TogglePanelLocked flips the panel's lock. Locking a panel mid-gesture
// aborts the gesture.
func (e *Engine) TogglePanelLocked(id string) {
	i := e.ws.PanelIndex(id)
	if i < 0 {
		return
	}
	e.ws.Panels[i].Locked = !e.ws.Panels[i].Locked
	if e.ws.Panels[i].Locked && e.gesture.PanelID() == id {
		e.gesture.Abort()
	}
	e.touch()
}

// SetPanelExpanded sets whether a panel shows full content or only a header.
func (e *Engine) SetPanelExpanded(id string, expanded bool) {
	i := e.ws.PanelIndex(id)
	if i < 0 || e.ws.Panels[i].Expanded == expanded {
		return
	}
	e.ws.Panels[i].Expanded = expanded
	e.touch()
}

// Focus brings a panel to the front and records the interaction.
func (e *Engine) Focus(id string) {
	i := e.ws.PanelIndex(id)
	if i < 0 {
		return
	}
	e.stacker.BringToFront(&e.ws.Panels[i])
	e.interactions.Record(id)
	e.touch()
}

// PointerDown starts a gesture on a panel at a screen position. An empty
// handle starts a drag; otherwise handle names the resize direction. On
// success the panel is brought to the front.
func (e *Engine) PointerDown(panelID, handle string, screenX, screenY float64) error {
	if !DragEnabled(e.searchTerm) {
		return ErrDragDisabled
	}
	i := e.ws.PanelIndex(panelID)
	if i < 0 {
		return ErrPanelNotFound
	}

	pt := e.toWorld(screenX, screenY)
	var err error
	if handle == "" {
		err = e.gesture.BeginDrag(e.ws.Panels[i], pt)
	} else {
		var dir Direction
		dir, err = ParseDirection(handle)
		if err == nil {
			err = e.gesture.BeginResize(e.ws.Panels[i], dir, pt)
		}
	}
	if err != nil {
		return err
	}

	e.stacker.BringToFront(&e.ws.Panels[i])
	e.interactions.Record(panelID)
	e.touch()
	return nil
}

// PointerMove feeds a pointer-move in screen space. It is ignored when no
// gesture is active.
func (e *Engine) PointerMove(screenX, screenY float64) {
	e.pointers.Move(e.toWorld(screenX, screenY))
}

// PointerUp ends the active gesture, if any.
func (e *Engine) PointerUp(screenX, screenY float64) {
	e.pointers.Up(e.toWorld(screenX, screenY))
}

// Blur force-terminates a gesture whose pointer-up will never arrive, e.g.
// when the window loses focus or the page is hidden.
func (e *Engine) Blur() bool {
	if !e.gesture.Active() {
		return false
	}
	e.gesture.Abort()
	return true
}

// TakeUpdates returns and clears the geometry updates committed since the
// last call.
func (e *Engine) TakeUpdates() []GeometryUpdate {
	u := e.updates
	e.updates = nil
	return u
}

// CreateFolder adds an empty folder and returns its id.
func (e *Engine) CreateFolder(name string) string {
	folders, id := CreateFolder(e.ws.Folders, name)
	e.ws.Folders = folders
	e.touch()
	return id
}

// DeleteFolder removes a folder and its panels.
func (e *Engine) DeleteFolder(folderID string) {
	removed := e.ws.Members(folderID)
	panels, folders := DeleteFolder(e.ws.Panels, e.ws.Folders, folderID)
	if len(folders) == len(e.ws.Folders) {
		return
	}
	for _, p := range removed {
		if e.gesture.PanelID() == p.ID {
			e.gesture.Abort()
		}
		e.ws.SetVisible(p.ID, false)
		e.interactions.Forget(p.ID)
	}
	e.ws.Panels, e.ws.Folders = panels, folders
	e.touch()
}

// DeleteFolderContentsOnly removes a folder and moves its panels to root.
func (e *Engine) DeleteFolderContentsOnly(folderID string) {
	panels, folders := DeleteFolderContentsOnly(e.ws.Panels, e.ws.Folders, folderID)
	if len(folders) == len(e.ws.Folders) {
		return
	}
	e.ws.Panels, e.ws.Folders = panels, folders
	e.touch()
}

// RenameFolder renames a folder.
func (e *Engine) RenameFolder(folderID, name string) {
	e.ws.Folders = RenameFolder(e.ws.Folders, folderID, name)
	e.touch()
}

// ToggleFolderExpanded flips a folder's expanded flag.
func (e *Engine) ToggleFolderExpanded(folderID string) {
	e.ws.Folders = ToggleFolderExpanded(e.ws.Folders, folderID)
	e.touch()
}

// MovePanelToFolder reassigns a panel; an empty folderID means root.
func (e *Engine) MovePanelToFolder(panelID, folderID string) {
	e.ws.Panels = MovePanelToFolder(e.ws.Panels, e.ws.Folders, panelID, folderID)
	e.touch()
}

// ReorderPanels replaces the list order.
func (e *Engine) ReorderPanels(ids []string) {
	e.ws.Panels = ReorderPanels(e.ws.Panels, ids)
	e.touch()
}

// DropOnPanel handles a drag-reorder drop onto another panel's list entry.
func (e *Engine) DropOnPanel(draggedID, targetID string, pos DropPosition) error {
	if !DragEnabled(e.searchTerm) {
		return ErrDragDisabled
	}
	e.ws.Panels = DropOnPanel(e.ws.Panels, draggedID, targetID, pos)
	e.touch()
	return nil
}

// DropOnFolder handles a drop onto a folder header.
func (e *Engine) DropOnFolder(draggedID, folderID string) error {
	if !DragEnabled(e.searchTerm) {
		return ErrDragDisabled
	}
	e.ws.Panels = DropOnFolderHeader(e.ws.Panels, e.ws.Folders, draggedID, folderID)
	e.touch()
	return nil
}

// DropOnRoot handles a drop onto the root-level drop zone.
func (e *Engine) DropOnRoot(draggedID string) error {
	if !DragEnabled(e.searchTerm) {
		return ErrDragDisabled
	}
	e.ws.Panels = DropOnRoot(e.ws.Panels, draggedID)
	e.touch()
	return nil
}

// GroupByType folders panels by kind.
func (e *Engine) GroupByType() {
	e.ws.Panels, e.ws.Folders = GroupByType(e.ws.Panels, e.ws.Folders)
	e.touch()
}

// GroupByRelationship folders panels by parent linkage and dataset name.
func (e *Engine) GroupByRelationship() {
	e.ws.Panels, e.ws.Folders = GroupByRelationship(e.ws.Panels, e.ws.Folders)
	e.touch()
}

// SetSearchTerm sets the list filter. A non-empty term disables dragging
// and aborts a drag in progress.
func (e *Engine) SetSearchTerm(term string) {
	e.searchTerm = term
	if !DragEnabled(term) {
		e.gesture.Abort()
	}
}

// SetStored copies the store's bookkeeping (version and timestamps) from a
// saved snapshot. It does not count as a change to the workspace.
func (e *Engine) SetStored(saved *workspace.Workspace) {
	e.ws.Version = saved.Version
	e.ws.CreatedAt = saved.CreatedAt
	e.ws.UpdatedAt = saved.UpdatedAt
}

// --- Queries (host ← engine) ---

// Cull returns the visible panels under the current viewport. Panels outside
// the visible set are not considered.
func (e *Engine) Cull() CullResult {
	return Cull(e.ws.ShownPanels(), CullParams{
		Viewport:        e.ws.Viewport,
		ContainerWidth:  e.containerWidth,
		ContainerHeight: e.containerHeight,
		Buffer:          e.buffer,
	})
}

// DrawCommands returns the draw commands for the visible panels.
func (e *Engine) DrawCommands() []DrawCommand {
	return CompileDrawCommands(e.Cull().Sorted, e.ws.Viewport, e.gesture.PanelID())
}

// Render returns the draw commands as JSON.
func (e *Engine) Render() string {
	result, _ := DrawCommandsToJSON(e.DrawCommands())
	return result
}

// Hit resolves a screen position to the topmost shown panel under it.
func (e *Engine) Hit(screenX, screenY float64) HitTestResult {
	pt := e.toWorld(screenX, screenY)
	result := HitTestResult{X: pt.X, Y: pt.Y}
	if p, ok := PanelAt(e.ws.ShownPanels(), pt); ok {
		screen := e.ws.Viewport.Matrix().TransformRect(p.Rect())
		result.PanelID = p.ID
		result.Screen = &screen
	}
	return result
}

// HitTest returns the id of the topmost shown panel under a screen position,
// or the empty string.
func (e *Engine) HitTest(screenX, screenY float64) string {
	return e.Hit(screenX, screenY).PanelID
}

// Workspace returns a copy of the current workspace.
func (e *Engine) Workspace() *workspace.Workspace {
	return e.ws.Clone()
}

// Panel returns a panel by id.
func (e *Engine) Panel(id string) (workspace.Panel, bool) {
	return e.ws.Panel(id)
}

// Viewport returns the current viewport.
func (e *Engine) Viewport() geom.Viewport {
	return e.ws.Viewport
}

// GetDocument returns the workspace as JSON.
func (e *Engine) GetDocument() string {
	data, _ := json.Marshal(e.ws)
	return string(data)
}

// GestureState returns the state machine's state.
func (e *Engine) GestureState() (GestureKind, string, Direction) {
	return e.gesture.Kind(), e.gesture.PanelID(), e.gesture.Direction()
}

// GetGestureState returns the gesture state as JSON.
func (e *Engine) GetGestureState() string {
	data, _ := json.Marshal(map[string]interface{}{
		"state":     e.gesture.Kind().String(),
		"panelId":   e.gesture.PanelID(),
		"direction": e.gesture.Direction(),
	})
	return string(data)
}

// PointerSubscriptions returns the number of live pointer subscriptions.
// It is zero whenever no gesture is active.
func (e *Engine) PointerSubscriptions() int {
	return e.pointers.Len()
}

// SearchTerm returns the list filter.
func (e *Engine) SearchTerm() string {
	return e.searchTerm
}

// FilteredPanels returns the list filtered by the search term.
func (e *Engine) FilteredPanels() []workspace.Panel {
	return FilterPanels(e.ws.Panels, e.searchTerm)
}

// InteractionOrder returns panel ids from least to most recently touched.
func (e *Engine) InteractionOrder() []string {
	return e.interactions.Order()
}

// PanelsByRecency returns panels most recently touched first.
func (e *Engine) PanelsByRecency() []workspace.Panel {
	return e.interactions.ByRecency(e.ws.Panels)
}

// Revision increases every time the workspace changes.
func (e *Engine) Revision() uint64 {
	return e.revision
}

func (e *Engine) commit(u GeometryUpdate) {
	i := e.ws.PanelIndex(u.PanelID)
	if i < 0 {
		return
	}
	u.Apply(&e.ws.Panels[i])
	e.updates = append(e.updates, u)
	e.touch()
}

func (e *Engine) toWorld(screenX, screenY float64) geom.Point {
	return e.ws.Viewport.ScreenToWorld(geom.Point{X: screenX, Y: screenY})
}

func (e *Engine) touch() {
	e.revision++
}
