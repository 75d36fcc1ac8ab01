package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// RayRect intersects the segment origin..origin+dir with r using the slab
// method. It returns the entry fraction along dir and the face normal.
// Origins already inside r do not hit.
func RayRect(origin, dir cp.Vector, r Rect) (float64, cp.Vector, bool) {
	nearX, farX, ok := slab(origin.X, dir.X, r.X, r.X+r.W)
	if !ok {
		return 0, cp.Vector{}, false
	}
	nearY, farY, ok := slab(origin.Y, dir.Y, r.Y, r.Y+r.H)
	if !ok {
		return 0, cp.Vector{}, false
	}

	tNear := math.Max(nearX, nearY)
	tFar := math.Min(farX, farY)
	if tNear > tFar || tNear < 0 || tNear > 1 {
		return 0, cp.Vector{}, false
	}

	useX := nearX > nearY
	if nearX == nearY {
		// Exact corner: the axis whose facing edges were closer wins, X on a
		// full tie.
		useX = axisGap(origin.X, dir.X, r.X, r.X+r.W) <= axisGap(origin.Y, dir.Y, r.Y, r.Y+r.H)
	}
	if useX {
		return tNear, cp.Vector{X: -sign(dir.X)}, true
	}
	return tNear, cp.Vector{Y: -sign(dir.Y)}, true
}

// RayCircle intersects the segment origin..origin+dir with c. Origins inside
// c do not hit.
func RayCircle(origin, dir cp.Vector, c Circle) (float64, cp.Vector, bool) {
	a := dir.LengthSq()
	if a == 0 {
		return 0, cp.Vector{}, false
	}
	f := origin.Sub(c.Center)
	b := 2 * f.Dot(dir)
	k := f.LengthSq() - c.Radius*c.Radius
	if k < 0 {
		return 0, cp.Vector{}, false
	}

	disc := b*b - 4*a*k
	if disc < 0 {
		return 0, cp.Vector{}, false
	}
	t := (-b - math.Sqrt(disc)) / (2 * a)
	if t < 0 || t > 1 {
		return 0, cp.Vector{}, false
	}

	contact := origin.Add(dir.Mult(t))
	normal := contact.Sub(c.Center)
	if normal.LengthSq() == 0 {
		normal = dir.Neg()
	}
	return t, normal.Normalize(), true
}

// slab returns the entry and exit fractions of a 1D ray against [min, max].
// A near-parallel ray constrains nothing when it starts strictly inside the
// slab and can never enter it otherwise.
func slab(o, d, min, max float64) (float64, float64, bool) {
	if math.Abs(d) < ParallelEpsilon {
		if o > min && o < max {
			return math.Inf(-1), math.Inf(1), true
		}
		return 0, 0, false
	}
	inv := 1 / d
	t1 := (min - o) * inv
	t2 := (max - o) * inv
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return t1, t2, true
}

// axisGap is the signed distance from o to the slab face it travels toward.
// Negative when o is already past that face.
func axisGap(o, d, min, max float64) float64 {
	if d > 0 {
		return min - o
	}
	return o - max
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
