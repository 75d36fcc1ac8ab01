package geom

// Overlaps reports whether a and b overlap. Shapes that merely touch do not
// overlap, matching Rect.Intersects.
func Overlaps(a, b Shape) bool {
	switch a.Kind {
	case KindBox:
		switch b.Kind {
		case KindBox:
			return a.Rect.Intersects(b.Rect)
		case KindCircle:
			return RectCircle(a.Rect, b.Circle)
		}
	case KindCircle:
		switch b.Kind {
		case KindBox:
			return RectCircle(b.Rect, a.Circle)
		case KindCircle:
			return CircleCircle(a.Circle, b.Circle)
		}
	}
	return false
}

// RectCircle reports whether the circle overlaps the rectangle.
func RectCircle(r Rect, c Circle) bool {
	if c.Center.X > r.X && c.Center.X < r.X+r.W && c.Center.Y > r.Y && c.Center.Y < r.Y+r.H {
		return true
	}
	closest := r.ClosestPoint(c.Center)
	return closest.DistanceSq(c.Center) < c.Radius*c.Radius
}

// CircleCircle reports whether two circles overlap.
func CircleCircle(a, b Circle) bool {
	sum := a.Radius + b.Radius
	return a.Center.DistanceSq(b.Center) < sum*sum
}
