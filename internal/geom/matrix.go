package geom

import "math"

// Affine is a 2D affine map stored as [a b c d e f]:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
//
// The viewport only ever produces scale plus translation, but hit testing and
// culling go through the general form so both directions share one inverse.
type Affine [6]float64

func Identity() Affine {
	return Affine{1, 0, 0, 1, 0, 0}
}

func Translate(tx, ty float64) Affine {
	return Affine{1, 0, 0, 1, tx, ty}
}

func Scale(sx, sy float64) Affine {
	return Affine{sx, 0, 0, sy, 0, 0}
}

// Multiply returns m∘n: n is applied first.
func (m Affine) Multiply(n Affine) Affine {
	return Affine{
		m[0]*n[0] + m[2]*n[1],
		m[1]*n[0] + m[3]*n[1],
		m[0]*n[2] + m[2]*n[3],
		m[1]*n[2] + m[3]*n[3],
		m[0]*n[4] + m[2]*n[5] + m[4],
		m[1]*n[4] + m[3]*n[5] + m[5],
	}
}

func (m Affine) TransformPoint(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformRect maps r and returns the axis-aligned box around the result.
func (m Affine) TransformRect(r Rect) Rect {
	xs := [4]float64{}
	ys := [4]float64{}
	xs[0], ys[0] = m.TransformPoint(r.X, r.Y)
	xs[1], ys[1] = m.TransformPoint(r.Right(), r.Y)
	xs[2], ys[2] = m.TransformPoint(r.Right(), r.Bottom())
	xs[3], ys[3] = m.TransformPoint(r.X, r.Bottom())

	left, right := min(xs[0], xs[1], xs[2], xs[3]), max(xs[0], xs[1], xs[2], xs[3])
	top, bottom := min(ys[0], ys[1], ys[2], ys[3]), max(ys[0], ys[1], ys[2], ys[3])
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Invert returns the inverse map. A singular map inverts to Identity so a
// zero zoom never produces NaN coordinates.
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return Identity()
	}
	k := 1 / det
	return Affine{
		m[3] * k,
		-m[1] * k,
		-m[2] * k,
		m[0] * k,
		(m[2]*m[5] - m[3]*m[4]) * k,
		(m[1]*m[4] - m[0]*m[5]) * k,
	}
}

// ToSlice copies the six coefficients, in [a b c d e f] order, for
// serialization.
func (m Affine) ToSlice() []float64 {
	out := make([]float64, len(m))
	copy(out, m[:])
	return out
}

// IsIdentity reports whether m is the identity within floating point noise.
func (m Affine) IsIdentity() bool {
	id := Identity()
	for i := range m {
		if math.Abs(m[i]-id[i]) > 1e-10 {
			return false
		}
	}
	return true
}
