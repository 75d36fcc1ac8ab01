package geom

import "github.com/jakecoffman/cp"

const (
	// ParallelEpsilon is the per-axis speed below which a sweep treats motion
	// as parallel to that axis' faces.
	ParallelEpsilon = 1e-4
	// ContactEpsilon is how far a resolved contact backs off along the normal
	// so the mover touches without overlapping.
	ContactEpsilon = 1e-4
)

// Hit describes the first contact of a sweep.
type Hit struct {
	// T is the fraction of the tested velocity travelled before contact.
	T float64
	// Normal is the unit surface normal of the target at the contact,
	// pointing back toward the mover.
	Normal cp.Vector
	// Delta is the displacement that takes the mover to the contact
	// position, including the ContactEpsilon back-off.
	Delta cp.Vector
}

func newHit(t float64, normal, v cp.Vector) Hit {
	return Hit{
		T:      t,
		Normal: normal,
		Delta:  v.Mult(t).Add(normal.Mult(ContactEpsilon)),
	}
}

// Sweep moves mover along v and reports the first contact with the static
// target. A zero velocity never hits, and neither does a target the mover
// already overlaps.
func Sweep(mover, target Shape, v cp.Vector) (Hit, bool) {
	if v.X == 0 && v.Y == 0 {
		return Hit{}, false
	}

	switch mover.Kind {
	case KindBox:
		switch target.Kind {
		case KindBox:
			return SweepBoxBox(mover.Rect, target.Rect, v)
		case KindCircle:
			return SweepBoxCircle(mover.Rect, target.Circle, v)
		}
	case KindCircle:
		switch target.Kind {
		case KindBox:
			return SweepCircleBox(mover.Circle, target.Rect, v)
		case KindCircle:
			return SweepCircleCircle(mover.Circle, target.Circle, v)
		}
	}
	return Hit{}, false
}

// SweepBoxBox sweeps box m along v against the static box target. The
// target is expanded by m's half extents so the test reduces to a ray from
// m's center.
func SweepBoxBox(m, target Rect, v cp.Vector) (Hit, bool) {
	if m.Intersects(target) {
		return Hit{}, false
	}
	expanded := target.InflateXY(m.HalfSize())
	t, normal, ok := RayRect(m.Center(), v, expanded)
	if !ok {
		return Hit{}, false
	}
	return newHit(t, normal, v), true
}

// SweepCircleBox sweeps circle c along v against the static box r. The box
// is inflated by the radius; contacts that land in one of the inflated
// corner squares are re-tested against the rounded corner.
func SweepCircleBox(c Circle, r Rect, v cp.Vector) (Hit, bool) {
	if RectCircle(r, c) {
		return Hit{}, false
	}

	inflated := r.Inflate(c.Radius)
	if strictlyInside(inflated, c.Center) {
		// Inside the inflated box without touching r: the center sits in a
		// corner square, so only that rounded corner can be hit.
		return sweepCorner(c, nearestCorner(r, c.Center), v)
	}

	t, normal, ok := RayRect(c.Center, v, inflated)
	if !ok {
		return Hit{}, false
	}

	contact := c.Center.Add(v.Mult(t))
	if corner, ok := cornerRegion(r, contact, normal); ok {
		return sweepCorner(c, corner, v)
	}
	return newHit(t, normal, v), true
}

// SweepBoxCircle sweeps box m along v against the static circle c. It is
// the circle sweep seen from the circle with the velocity reversed.
func SweepBoxCircle(m Rect, c Circle, v cp.Vector) (Hit, bool) {
	hit, ok := SweepCircleBox(c, m, v.Neg())
	if !ok {
		return Hit{}, false
	}
	return newHit(hit.T, hit.Normal.Neg(), v), true
}

// SweepCircleCircle sweeps circle a along v against the static circle b.
func SweepCircleCircle(a, b Circle, v cp.Vector) (Hit, bool) {
	t, normal, ok := RayCircle(a.Center, v, Circle{Center: b.Center, Radius: a.Radius + b.Radius})
	if !ok {
		return Hit{}, false
	}
	return newHit(t, normal, v), true
}

func sweepCorner(c Circle, corner cp.Vector, v cp.Vector) (Hit, bool) {
	return SweepCircleCircle(c, Circle{Center: corner}, v)
}

// cornerRegion reports the corner of r nearest p when p lies beyond r's span
// along the tangent of the face that was hit.
func cornerRegion(r Rect, p, normal cp.Vector) (cp.Vector, bool) {
	if normal.X != 0 {
		x := r.X
		if normal.X > 0 {
			x = r.X + r.W
		}
		switch {
		case p.Y < r.Y:
			return cp.Vector{X: x, Y: r.Y}, true
		case p.Y > r.Y+r.H:
			return cp.Vector{X: x, Y: r.Y + r.H}, true
		}
		return cp.Vector{}, false
	}

	y := r.Y
	if normal.Y > 0 {
		y = r.Y + r.H
	}
	switch {
	case p.X < r.X:
		return cp.Vector{X: r.X, Y: y}, true
	case p.X > r.X+r.W:
		return cp.Vector{X: r.X + r.W, Y: y}, true
	}
	return cp.Vector{}, false
}

func nearestCorner(r Rect, p cp.Vector) cp.Vector {
	corner := r.Min()
	if p.X > r.X+r.W/2 {
		corner.X = r.X + r.W
	}
	if p.Y > r.Y+r.H/2 {
		corner.Y = r.Y + r.H
	}
	return corner
}

func strictlyInside(r Rect, p cp.Vector) bool {
	return p.X > r.X && p.X < r.X+r.W && p.Y > r.Y && p.Y < r.Y+r.H
}
