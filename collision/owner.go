package collision

import "github.com/jakecoffman/cp"

// Owner is the entity a collider is attached to. The collider never caches a
// position; bounds are always derived from the owner.
type Owner interface {
	Position() cp.Vector
	SetPosition(cp.Vector)
}

// Point is a minimal Owner holding a bare position. Tiles and tests use it
// where no richer entity exists.
type Point struct {
	Pos cp.Vector
}

func NewPoint(x, y float64) *Point {
	return &Point{Pos: cp.Vector{X: x, Y: y}}
}

func (p *Point) Position() cp.Vector {
	return p.Pos
}

func (p *Point) SetPosition(pos cp.Vector) {
	p.Pos = pos
}
