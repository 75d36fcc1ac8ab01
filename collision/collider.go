package collision

import (
	"sync/atomic"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sweep/geom"
)

var nextColliderID atomic.Uint64

// Collider attaches a shape and a layer to an owner. While enabled it is
// indexed by exactly one Partition and remembers the cells it occupies.
type Collider struct {
	Shape Shape
	Layer LayerMask
	Owner Owner

	// Tag and Data are free for the owning game code, typically read by a
	// response function to decide how to react to Other.
	Tag  string
	Data any

	// OnHit is called when a moving body resolves a contact against this
	// collider.
	OnHit func(CollisionEvent)

	id        uint64
	cells     []Cell
	partition *Partition
}

// NewCollider creates a disabled collider. A nil owner gets a Point at the
// origin.
func NewCollider(owner Owner, shape Shape, layer LayerMask) *Collider {
	if owner == nil {
		owner = &Point{}
	}
	return &Collider{
		Shape: shape,
		Layer: layer,
		Owner: owner,
		id:    nextColliderID.Add(1),
	}
}

// ID is unique per process and orders colliders deterministically.
func (c *Collider) ID() uint64 {
	return c.id
}

func (c *Collider) Position() cp.Vector {
	if c.Owner == nil {
		return cp.Vector{}
	}
	return c.Owner.Position()
}

// WorldShape resolves the collider's shape at its owner's current position.
func (c *Collider) WorldShape() geom.Shape {
	return c.Shape.At(c.Position())
}

// Bounds is recomputed from the owner on every call.
func (c *Collider) Bounds() geom.Rect {
	return c.Shape.Bounds(c.Position())
}

// Cells returns a copy of the partition cells the collider occupies.
func (c *Collider) Cells() []Cell {
	if len(c.cells) == 0 {
		return nil
	}
	out := make([]Cell, len(c.cells))
	copy(out, c.cells)
	return out
}

func (c *Collider) Enabled() bool {
	return c.partition != nil
}

// Partition returns the partition the collider is enabled in, or nil.
func (c *Collider) Partition() *Partition {
	return c.partition
}

// Enable inserts the collider into p. Enabling twice is a lifecycle bug and
// panics.
func (c *Collider) Enable(p *Partition) {
	if err := p.Add(c); err != nil {
		p.fail("enable collider", c, err)
	}
}

// Disable removes the collider from its partition. Disabling a collider that
// is not enabled panics.
func (c *Collider) Disable() {
	if c.partition == nil {
		panic(ErrNotInPartition)
	}
	p := c.partition
	if err := p.Remove(c); err != nil {
		p.fail("disable collider", c, err)
	}
}

// UpdateBounds re-indexes the collider after its owner moved. Disabled
// colliders have nothing to update.
func (c *Collider) UpdateBounds() {
	if c.partition == nil {
		return
	}
	p := c.partition
	if err := p.Update(c); err != nil {
		p.fail("update collider", c, err)
	}
}

// MoveTo sets the owner's position and re-indexes the collider.
func (c *Collider) MoveTo(pos cp.Vector) {
	c.Owner.SetPosition(pos)
	c.UpdateBounds()
}
