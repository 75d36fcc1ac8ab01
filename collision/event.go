package collision

import "github.com/jakecoffman/cp"

// CollisionEvent describes a single time-of-impact result. Other is nil and
// Time is 1 when nothing was hit.
type CollisionEvent struct {
	// Body is the collider that was moving.
	Body *Collider
	// Other is the collider that was hit.
	Other *Collider
	// Velocity is the displacement that was tested.
	Velocity cp.Vector
	// Normal is the unit surface normal at the contact, pointing toward Body.
	Normal cp.Vector
	// Time is the fraction of Velocity travelled before contact, in [0, 1].
	Time float64
	// Position is the owner position at the contact, already backed off the
	// surface by geom.ContactEpsilon.
	Position cp.Vector
}

// NoCollision is the event for an unobstructed move of body from start.
func NoCollision(body *Collider, start, velocity cp.Vector) CollisionEvent {
	return CollisionEvent{
		Body:     body,
		Velocity: velocity,
		Time:     1,
		Position: start.Add(velocity),
	}
}

// Hit reports whether the event describes a contact.
func (e CollisionEvent) Hit() bool {
	return e.Other != nil
}

// Remaining is the part of Velocity not yet travelled.
func (e CollisionEvent) Remaining() cp.Vector {
	return e.Velocity.Mult(1 - e.Time)
}
