package collision

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sweep/geom"
)

// RayHit is the first collider crossed by a segment.
type RayHit struct {
	Collider *Collider
	// T is the fraction of the segment before the hit.
	T      float64
	Point  cp.Vector
	Normal cp.Vector
}

// Raycast traces the segment from a to b and returns the nearest collider on
// mask it crosses. A segment that starts inside a collider hits it at T=0
// with a zero normal.
func (p *Partition) Raycast(a, b cp.Vector, mask LayerMask) (RayHit, bool) {
	dir := b.Sub(a)
	if isZero(dir) {
		return RayHit{}, false
	}

	var best RayHit
	found := false
	for _, c := range p.Query(geom.NewRect(a, b)) {
		if !c.Layer.Matches(mask) {
			continue
		}
		t, normal, ok := rayShape(a, dir, c.WorldShape())
		if !ok {
			continue
		}
		if found && (t > best.T || (t == best.T && c.id > best.Collider.id)) {
			continue
		}
		best = RayHit{Collider: c, T: t, Point: a.Add(dir.Mult(t)), Normal: normal}
		found = true
	}
	return best, found
}

// LineOfSight reports whether nothing on mask blocks the segment from a to
// b.
func (p *Partition) LineOfSight(a, b cp.Vector, mask LayerMask) bool {
	_, blocked := p.Raycast(a, b, mask)
	return !blocked
}

func rayShape(origin, dir cp.Vector, s geom.Shape) (float64, cp.Vector, bool) {
	if s.ContainsPoint(origin) {
		return 0, cp.Vector{}, true
	}
	switch s.Kind {
	case geom.KindBox:
		return geom.RayRect(origin, dir, s.Rect)
	case geom.KindCircle:
		return geom.RayCircle(origin, dir, s.Circle)
	}
	return 0, cp.Vector{}, false
}
