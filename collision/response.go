package collision

import "github.com/jakecoffman/cp"

// Response turns a resolved contact into the velocity for the next
// iteration. Returning a zero vector ends the move.
type Response func(CollisionEvent) cp.Vector

// Ignore keeps travelling with whatever displacement was left.
func Ignore(e CollisionEvent) cp.Vector {
	return e.Remaining()
}

// Slide drops the part of the remaining displacement that points into the
// surface and keeps the tangential part.
func Slide(e CollisionEvent) cp.Vector {
	r := e.Remaining()
	return r.Sub(e.Normal.Mult(r.Dot(e.Normal)))
}

// Bounce reflects the remaining displacement across the contact normal. For
// axis-aligned normals this negates the component on that axis.
func Bounce(e CollisionEvent) cp.Vector {
	r := e.Remaining()
	return r.Sub(e.Normal.Mult(2 * r.Dot(e.Normal)))
}

// Stop ends the move at the first contact.
func Stop(CollisionEvent) cp.Vector {
	return cp.Vector{}
}

// LayerResponse pairs a layer mask with the response used when the struck
// collider is on it.
type LayerResponse struct {
	Mask     LayerMask
	Response Response
}

// ByLayer picks the first rule whose mask matches the struck collider's
// layer, or fallback when none does.
func ByLayer(fallback Response, rules ...LayerResponse) Response {
	return func(e CollisionEvent) cp.Vector {
		if e.Other != nil {
			for _, rule := range rules {
				if e.Other.Layer.Matches(rule.Mask) {
					return rule.Response(e)
				}
			}
		}
		return fallback(e)
	}
}

var responses = map[string]Response{
	"ignore": Ignore,
	"slide":  Slide,
	"bounce": Bounce,
	"stop":   Stop,
}

// ResponseByName looks up one of the built-in responses.
func ResponseByName(name string) (Response, bool) {
	r, ok := responses[name]
	return r, ok
}

// ResponseNames lists the built-in response names in display order.
func ResponseNames() []string {
	return []string{"slide", "bounce", "ignore", "stop"}
}
