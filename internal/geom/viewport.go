package geom

import "math"

// Zoom limits applied by ZoomAt and FitViewport.
const (
	MinZoom = 0.1
	MaxZoom = 4.0
)

// Viewport is the pan/zoom transform of the canvas. X and Y are the pan offset
// in screen pixels; Zoom is the world-to-screen scale.
//
//	screen = world*Zoom + (X, Y)
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// DefaultViewport is the untransformed view.
func DefaultViewport() Viewport {
	return Viewport{Zoom: 1}
}

// Scale returns the zoom factor, treating a non-positive zoom as 1.
func (v Viewport) Scale() float64 {
	if v.Zoom <= 0 || math.IsNaN(v.Zoom) {
		return 1
	}
	return v.Zoom
}

// Matrix returns the world-to-screen transform.
func (v Viewport) Matrix() Affine {
	z := v.Scale()
	return Translate(v.X, v.Y).Multiply(Scale(z, z))
}

// WorldToScreen maps a world-space point into screen pixels.
func (v Viewport) WorldToScreen(p Point) Point {
	x, y := v.Matrix().TransformPoint(p.X, p.Y)
	return Point{X: x, Y: y}
}

// ScreenToWorld maps a screen pixel into world space.
func (v Viewport) ScreenToWorld(p Point) Point {
	x, y := v.Matrix().Invert().TransformPoint(p.X, p.Y)
	return Point{X: x, Y: y}
}

// WorldBounds returns the world-space rectangle visible in a container of the
// given pixel size, grown by buffer screen pixels on every side.
func (v Viewport) WorldBounds(containerWidth, containerHeight, buffer float64) Rect {
	z := v.Scale()
	left := (-v.X - buffer) / z
	right := (containerWidth - v.X + buffer) / z
	top := (-v.Y - buffer) / z
	bottom := (containerHeight - v.Y + buffer) / z
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// ZoomAt scales the viewport by factor while keeping the world point under the
// given screen position fixed. The result is clamped to [MinZoom, MaxZoom].
func (v Viewport) ZoomAt(screen Point, factor float64) Viewport {
	if factor <= 0 {
		return v
	}
	anchor := v.ScreenToWorld(screen)
	z := clampZoom(v.Scale() * factor)
	return Viewport{
		X:    screen.X - anchor.X*z,
		Y:    screen.Y - anchor.Y*z,
		Zoom: z,
	}
}

// FitViewport returns a viewport that shows bounds centered in the container
// with margin screen pixels around it.
func FitViewport(bounds Rect, containerWidth, containerHeight, margin float64) Viewport {
	if bounds.IsEmpty() || containerWidth <= 0 || containerHeight <= 0 {
		return DefaultViewport()
	}
	availW := max(containerWidth-2*margin, 1)
	availH := max(containerHeight-2*margin, 1)
	z := clampZoom(min(availW/bounds.Width, availH/bounds.Height))

	cx, cy := bounds.Center()
	return Viewport{
		X:    containerWidth/2 - cx*z,
		Y:    containerHeight/2 - cy*z,
		Zoom: z,
	}
}

func clampZoom(z float64) float64 {
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}
