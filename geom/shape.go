package geom

import "github.com/jakecoffman/cp"

// Circle is a world-space circle.
type Circle struct {
	Center cp.Vector
	Radius float64
}

// Bounds returns the rectangle enclosing c.
func (c Circle) Bounds() Rect {
	return Rect{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius, W: 2 * c.Radius, H: 2 * c.Radius}
}

// Contains reports whether p lies inside c, boundary included.
func (c Circle) Contains(p cp.Vector) bool {
	return p.DistanceSq(c.Center) <= c.Radius*c.Radius
}

// ShapeKind tags the variant held by a Shape.
type ShapeKind uint8

const (
	KindNone ShapeKind = iota
	KindBox
	KindCircle
)

func (k ShapeKind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindCircle:
		return "circle"
	default:
		return "none"
	}
}

// Shape is a world-space box or circle. Only the field matching Kind is
// meaningful.
type Shape struct {
	Kind   ShapeKind
	Rect   Rect
	Circle Circle
}

func BoxShape(r Rect) Shape {
	return Shape{Kind: KindBox, Rect: r}
}

func CircleShape(c Circle) Shape {
	return Shape{Kind: KindCircle, Circle: c}
}

// Bounds returns the axis-aligned bounds of s.
func (s Shape) Bounds() Rect {
	switch s.Kind {
	case KindBox:
		return s.Rect
	case KindCircle:
		return s.Circle.Bounds()
	default:
		return Rect{}
	}
}

// Center returns the center of s.
func (s Shape) Center() cp.Vector {
	switch s.Kind {
	case KindBox:
		return s.Rect.Center()
	case KindCircle:
		return s.Circle.Center
	default:
		return cp.Vector{}
	}
}

// Offset returns s translated by v.
func (s Shape) Offset(v cp.Vector) Shape {
	switch s.Kind {
	case KindBox:
		s.Rect = s.Rect.Offset(v)
	case KindCircle:
		s.Circle.Center = s.Circle.Center.Add(v)
	}
	return s
}

// ContainsPoint reports whether p lies inside s.
func (s Shape) ContainsPoint(p cp.Vector) bool {
	switch s.Kind {
	case KindBox:
		return s.Rect.Contains(p)
	case KindCircle:
		return s.Circle.Contains(p)
	default:
		return false
	}
}
