package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect builds a rectangle from two opposite corners in any order.
func NewRect(a, b cp.Vector) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func (r Rect) Min() cp.Vector {
	return cp.Vector{X: r.X, Y: r.Y}
}

func (r Rect) Max() cp.Vector {
	return cp.Vector{X: r.X + r.W, Y: r.Y + r.H}
}

func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Rect) HalfSize() cp.Vector {
	return cp.Vector{X: r.W / 2, Y: r.H / 2}
}

// Union returns the smallest rectangle containing both a and b.
func Union(a, b Rect) Rect {
	minX := math.Min(a.X, b.X)
	minY := math.Min(a.Y, b.Y)
	maxX := math.Max(a.X+a.W, b.X+b.W)
	maxY := math.Max(a.Y+a.H, b.Y+b.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Offset returns a copy of r translated by v.
func (r Rect) Offset(v cp.Vector) Rect {
	r.X += v.X
	r.Y += v.Y
	return r
}

// Inflate grows r by radius on every side.
func (r Rect) Inflate(radius float64) Rect {
	return Rect{X: r.X - radius, Y: r.Y - radius, W: r.W + 2*radius, H: r.H + 2*radius}
}

// InflateXY grows r by the given half extents on each axis.
func (r Rect) InflateXY(half cp.Vector) Rect {
	return Rect{X: r.X - half.X, Y: r.Y - half.Y, W: r.W + 2*half.X, H: r.H + 2*half.Y}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p cp.Vector) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Intersects reports whether r and o overlap. Rectangles that only share an
// edge or a corner do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W &&
		r.X+r.W > o.X &&
		r.Y < o.Y+o.H &&
		r.Y+r.H > o.Y
}

// Touches is Intersects with edges included.
func (r Rect) Touches(o Rect) bool {
	return r.X <= o.X+o.W &&
		r.X+r.W >= o.X &&
		r.Y <= o.Y+o.H &&
		r.Y+r.H >= o.Y
}

// ClosestPoint clamps p into r.
func (r Rect) ClosestPoint(p cp.Vector) cp.Vector {
	return cp.Vector{
		X: math.Max(r.X, math.Min(p.X, r.X+r.W)),
		Y: math.Max(r.Y, math.Min(p.Y, r.Y+r.H)),
	}
}

// BB converts r to a Chipmunk bounding box.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H}
}

// RectFromBB converts a Chipmunk bounding box back into a Rect.
func RectFromBB(bb cp.BB) Rect {
	return Rect{X: bb.L, Y: bb.B, W: bb.R - bb.L, H: bb.T - bb.B}
}
