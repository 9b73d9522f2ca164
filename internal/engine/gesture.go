package engine

import (
	"errors"
	"fmt"

	"github.com/panelspace/panelspace/internal/geom"
	"github.com/panelspace/panelspace/internal/workspace"
)

var (
	ErrPanelLocked      = errors.New("panel is locked")
	ErrPanelNotFound    = errors.New("panel not found")
	ErrInvalidDirection = errors.New("invalid resize direction")
	ErrNotAllowed       = errors.New("operation not allowed for panel kind")
	ErrDragDisabled     = errors.New("dragging is disabled while a search term is set")
)

// Direction is the handle a resize gesture started from.
type Direction string

const (
	DirN  Direction = "n"
	DirS  Direction = "s"
	DirE  Direction = "e"
	DirW  Direction = "w"
	DirNE Direction = "ne"
	DirNW Direction = "nw"
	DirSE Direction = "se"
	DirSW Direction = "sw"
)

// ParseDirection validates a resize handle name.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	switch d {
	case DirN, DirS, DirE, DirW, DirNE, DirNW, DirSE, DirSW:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// edges returns which horizontal and vertical edge the handle moves:
// -1 for west/north, +1 for east/south, 0 for none.
func (d Direction) edges() (h, v int) {
	switch d {
	case DirN:
		return 0, -1
	case DirS:
		return 0, 1
	case DirE:
		return 1, 0
	case DirW:
		return -1, 0
	case DirNE:
		return 1, -1
	case DirNW:
		return -1, -1
	case DirSE:
		return 1, 1
	case DirSW:
		return -1, 1
	}
	return 0, 0
}

// GestureKind is the state of a Gesture.
type GestureKind int

const (
	GestureIdle GestureKind = iota
	GestureDragging
	GestureResizing
)

func (k GestureKind) String() string {
	switch k {
	case GestureDragging:
		return "dragging"
	case GestureResizing:
		return "resizing"
	default:
		return "idle"
	}
}

// GeometryUpdate is a proposed change to one panel. Nil fields are unchanged.
type GeometryUpdate struct {
	PanelID string   `json:"panelId"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Width   *float64 `json:"width,omitempty"`
	Height  *float64 `json:"height,omitempty"`
}

// Apply writes the update into p.
func (u GeometryUpdate) Apply(p *workspace.Panel) {
	if u.X != nil {
		p.X = *u.X
	}
	if u.Y != nil {
		p.Y = *u.Y
	}
	if u.Width != nil {
		p.Width = *u.Width
	}
	if u.Height != nil {
		p.Height = *u.Height
	}
}

// ResizeRect computes the rectangle for a resize from start by the pointer
// delta (dx, dy). Each axis is handled on its own: the dragged edge follows
// the pointer, the size never drops below the minimum, and once the minimum
// is hit the opposite edge stays where it was at gesture start.
func ResizeRect(start geom.Rect, dir Direction, dx, dy, minW, minH float64) geom.Rect {
	h, v := dir.edges()
	out := start
	out.X, out.Width = resizeAxis(start.X, start.Width, dx, h, minW)
	out.Y, out.Height = resizeAxis(start.Y, start.Height, dy, v, minH)
	return out
}

func resizeAxis(pos, size, delta float64, edge int, minSize float64) (float64, float64) {
	switch edge {
	case 1:
		return pos, max(minSize, size+delta)
	case -1:
		newSize := size - delta
		if newSize < minSize {
			return pos + size - minSize, minSize
		}
		return pos + delta, newSize
	default:
		return pos, size
	}
}

// Gesture is the drag/resize state machine for one pointer device. It is
// idle, dragging one panel, or resizing one panel from one handle. Every
// proposed geometry is derived from the state captured at gesture start and
// the latest pointer position, never accumulated from earlier moves.
//
// While a gesture is active the machine holds a subscription on its
// PointerSource. The subscription is released on every exit: End, Abort, and
// a new Begin that replaces an unfinished gesture.
type Gesture struct {
	kind      GestureKind
	panelID   string
	direction Direction

	startPointer geom.Point
	startRect    geom.Rect
	minW, minH   float64
	last         geom.Rect

	// Floor applied on top of each panel's own minimum.
	floorW, floorH float64

	source      PointerSource
	unsubscribe func()
	onUpdate    func(GeometryUpdate)
}

// NewGesture creates an idle machine. source may be nil when the host drives
// Move and End directly; onUpdate may be nil when the host only uses return
// values.
func NewGesture(source PointerSource, onUpdate func(GeometryUpdate)) *Gesture {
	return &Gesture{source: source, onUpdate: onUpdate}
}

// SetMinimum sets a size floor for every resize, in addition to the panel's
// own minimum. It takes effect at the next Begin.
func (g *Gesture) SetMinimum(width, height float64) {
	g.floorW, g.floorH = max(width, 0), max(height, 0)
}

// Kind returns the current state.
func (g *Gesture) Kind() GestureKind { return g.kind }

// Active reports whether a drag or resize is in progress.
func (g *Gesture) Active() bool { return g.kind != GestureIdle }

// PanelID returns the panel under gesture, or "" when idle.
func (g *Gesture) PanelID() string { return g.panelID }

// Direction returns the resize handle, or "" when not resizing.
func (g *Gesture) Direction() Direction { return g.direction }

// BeginDrag moves the machine into dragging for p.
func (g *Gesture) BeginDrag(p workspace.Panel, pointer geom.Point) error {
	if p.Locked {
		return ErrPanelLocked
	}
	if !p.Kind.Allows(workspace.OpDrag) {
		return ErrNotAllowed
	}
	g.begin(GestureDragging, p, "", pointer)
	return nil
}

// BeginResize moves the machine into resizing p from the given handle.
func (g *Gesture) BeginResize(p workspace.Panel, dir Direction, pointer geom.Point) error {
	if _, err := ParseDirection(string(dir)); err != nil {
		return err
	}
	if p.Locked {
		return ErrPanelLocked
	}
	if !p.Kind.Allows(workspace.OpResize) {
		return ErrNotAllowed
	}
	g.begin(GestureResizing, p, dir, pointer)
	return nil
}

func (g *Gesture) begin(kind GestureKind, p workspace.Panel, dir Direction, pointer geom.Point) {
	if g.Active() {
		g.Abort()
	}
	g.kind = kind
	g.panelID = p.ID
	g.direction = dir
	g.startPointer = pointer
	g.startRect = p.Rect()
	g.last = g.startRect
	minW, minH := p.MinSize()
	g.minW, g.minH = max(minW, g.floorW), max(minH, g.floorH)
	if g.source != nil {
		g.unsubscribe = g.source.Subscribe(g)
	}
}

// Move computes the geometry for the pointer position. The second return
// value is false when idle.
func (g *Gesture) Move(pointer geom.Point) (GeometryUpdate, bool) {
	if !g.Active() {
		return GeometryUpdate{}, false
	}
	next := g.propose(pointer)
	u := g.update(next)
	g.last = next
	if g.onUpdate != nil {
		g.onUpdate(u)
	}
	return u, true
}

// End finishes the gesture at the pointer position and returns the machine
// to idle. An update is emitted only if the final geometry differs from the
// last one emitted, so an up without any move is a no-op.
func (g *Gesture) End(pointer geom.Point) (GeometryUpdate, bool) {
	if !g.Active() {
		return GeometryUpdate{}, false
	}
	next := g.propose(pointer)
	changed := next != g.last
	u := g.update(next)
	g.reset()
	if !changed {
		return GeometryUpdate{}, false
	}
	if g.onUpdate != nil {
		g.onUpdate(u)
	}
	return u, true
}

// Abort discards the gesture without emitting anything. Geometry already
// emitted by Move stays with the host. Used when the pointer-up is lost, e.g.
// on window blur.
func (g *Gesture) Abort() {
	if !g.Active() {
		return
	}
	g.reset()
}

// PointerMove implements PointerHandler.
func (g *Gesture) PointerMove(p geom.Point) { g.Move(p) }

// PointerUp implements PointerHandler.
func (g *Gesture) PointerUp(p geom.Point) { g.End(p) }

func (g *Gesture) propose(pointer geom.Point) geom.Rect {
	dx := pointer.X - g.startPointer.X
	dy := pointer.Y - g.startPointer.Y
	if g.kind == GestureDragging {
		r := g.startRect
		r.X += dx
		r.Y += dy
		return r
	}
	return ResizeRect(g.startRect, g.direction, dx, dy, g.minW, g.minH)
}

func (g *Gesture) update(r geom.Rect) GeometryUpdate {
	u := GeometryUpdate{PanelID: g.panelID}
	x, y := r.X, r.Y
	if g.kind == GestureDragging {
		u.X, u.Y = &x, &y
		return u
	}
	w, h := r.Width, r.Height
	u.Width, u.Height = &w, &h
	hEdge, vEdge := g.direction.edges()
	if hEdge == -1 {
		u.X = &x
	}
	if vEdge == -1 {
		u.Y = &y
	}
	return u
}

func (g *Gesture) reset() {
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
	g.kind = GestureIdle
	g.panelID = ""
	g.direction = ""
	g.startPointer = geom.Point{}
	g.startRect = geom.Rect{}
	g.last = geom.Rect{}
}
