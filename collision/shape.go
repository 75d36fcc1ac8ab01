package collision

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sweep/geom"
)

// Origin decides how a shape's local offset is anchored to the owner's
// position.
type Origin uint8

const (
	// OriginTopLeft places the shape's top-left corner at owner+offset.
	OriginTopLeft Origin = iota
	// OriginCenter places the shape's center at owner+offset.
	OriginCenter
)

// Shape is a box or circle in the owner's local space.
type Shape struct {
	Kind   geom.ShapeKind
	X, Y   float64
	Width  float64
	Height float64
	Radius float64
	Origin Origin
}

func NewBox(x, y, width, height float64) Shape {
	return Shape{Kind: geom.KindBox, X: x, Y: y, Width: width, Height: height}
}

func NewCircle(x, y, radius float64) Shape {
	return Shape{Kind: geom.KindCircle, X: x, Y: y, Radius: radius}
}

// Centered returns s anchored at its center instead of its top-left corner.
func (s Shape) Centered() Shape {
	s.Origin = OriginCenter
	return s
}

// Validate rejects negative sizes and the empty kind.
func (s Shape) Validate() error {
	switch s.Kind {
	case geom.KindBox:
		if s.Width < 0 || s.Height < 0 {
			return fmt.Errorf("box %gx%g: %w", s.Width, s.Height, ErrInvalidShape)
		}
	case geom.KindCircle:
		if s.Radius < 0 {
			return fmt.Errorf("circle r=%g: %w", s.Radius, ErrInvalidShape)
		}
	default:
		return ErrNoShape
	}
	return nil
}

// At resolves s into world space for an owner at pos.
func (s Shape) At(pos cp.Vector) geom.Shape {
	x := pos.X + s.X
	y := pos.Y + s.Y
	switch s.Kind {
	case geom.KindBox:
		if s.Origin == OriginCenter {
			x -= s.Width / 2
			y -= s.Height / 2
		}
		return geom.BoxShape(geom.Rect{X: x, Y: y, W: s.Width, H: s.Height})
	case geom.KindCircle:
		if s.Origin == OriginTopLeft {
			x += s.Radius
			y += s.Radius
		}
		return geom.CircleShape(geom.Circle{Center: cp.Vector{X: x, Y: y}, Radius: s.Radius})
	default:
		return geom.Shape{}
	}
}

// Bounds returns the world-space bounding box for an owner at pos.
func (s Shape) Bounds(pos cp.Vector) geom.Rect {
	return s.At(pos).Bounds()
}
