package collision

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sweep/config"
	"github.com/milk9111/sweep/geom"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultMaxIterations bounds how many contacts one move can resolve.
const DefaultMaxIterations = 2

// Resolver moves bodies through a partition without tunneling.
type Resolver struct {
	Partition *Partition
	// MaxIterations caps contacts per move. Values below 1 mean
	// DefaultMaxIterations.
	MaxIterations int
	// Padding grows the broad-phase area around each sweep.
	Padding float64
	// OnHit observes every resolved contact after the struck collider's own
	// observer.
	OnHit  func(CollisionEvent)
	Logger *zap.Logger
}

func NewResolver(p *Partition, cfg config.Resolver, logger *zap.Logger) *Resolver {
	return &Resolver{
		Partition:     p,
		MaxIterations: cfg.MaxIterations,
		Padding:       cfg.Padding,
		Logger:        logger,
	}
}

// MoveAndCollide moves body by velocity, stopping at the first contact on
// mask and asking response how to continue. It returns the velocity of the
// last leg, or zero when the move ended on a contact or ran out of
// iterations.
func MoveAndCollide(p *Partition, body *Collider, velocity cp.Vector, mask LayerMask, response Response) cp.Vector {
	r := Resolver{Partition: p}
	return r.MoveAndCollide(body, velocity, mask, response)
}

func (r *Resolver) MoveAndCollide(body *Collider, velocity cp.Vector, mask LayerMask, response Response) cp.Vector {
	r.checkBody(body)
	if isZero(velocity) {
		return velocity
	}
	if response == nil {
		response = Stop
	}

	visited := map[*Collider]struct{}{body: {}}
	for i := 0; i < r.iterations(); i++ {
		event := r.cast(body, velocity, mask, visited)
		r.move(body, event.Position)
		if !event.Hit() {
			return velocity
		}

		if ce := r.logger().Check(zapcore.DebugLevel, "contact resolved"); ce != nil {
			ce.Write(
				zap.Uint64("body", body.id),
				zap.Uint64("other", event.Other.id),
				zap.Float64("t", event.Time),
				zap.Float64("nx", event.Normal.X),
				zap.Float64("ny", event.Normal.Y),
				zap.Int("iteration", i),
			)
		}
		if event.Other.OnHit != nil {
			event.Other.OnHit(event)
		}
		if r.OnHit != nil {
			r.OnHit(event)
		}
		visited[event.Other] = struct{}{}

		velocity = response(event)
		if isZero(velocity) {
			return velocity
		}
	}

	if ce := r.logger().Check(zapcore.DebugLevel, "iteration cap reached"); ce != nil {
		ce.Write(
			zap.Uint64("body", body.id),
			zap.Float64("vx", velocity.X),
			zap.Float64("vy", velocity.Y),
		)
	}
	return cp.Vector{}
}

// Cast reports the first contact body would make moving by velocity,
// without moving it.
func (r *Resolver) Cast(body *Collider, velocity cp.Vector, mask LayerMask) CollisionEvent {
	r.checkBody(body)
	if isZero(velocity) {
		return NoCollision(body, body.Position(), velocity)
	}
	return r.cast(body, velocity, mask, map[*Collider]struct{}{body: {}})
}

func (r *Resolver) cast(body *Collider, velocity cp.Vector, mask LayerMask, visited map[*Collider]struct{}) CollisionEvent {
	start := body.Position()
	mover := body.Shape.At(start)
	bounds := mover.Bounds()
	area := geom.Union(bounds, bounds.Offset(velocity)).Inflate(r.Padding)

	best := NoCollision(body, start, velocity)
	for _, other := range r.Partition.Query(area) {
		if _, skip := visited[other]; skip {
			continue
		}
		if !other.Layer.Matches(mask) {
			continue
		}
		hit, ok := geom.Sweep(mover, other.WorldShape(), velocity)
		if !ok {
			continue
		}
		if best.Other != nil && (hit.T > best.Time || (hit.T == best.Time && other.id > best.Other.id)) {
			continue
		}
		best = CollisionEvent{
			Body:     body,
			Other:    other,
			Velocity: velocity,
			Normal:   hit.Normal,
			Time:     hit.T,
			Position: start.Add(hit.Delta),
		}
	}
	return best
}

// move places the owner at pos. Bodies that are not enabled are moved
// without touching any partition.
func (r *Resolver) move(body *Collider, pos cp.Vector) {
	body.Owner.SetPosition(pos)
	if p := body.partition; p != nil {
		if err := p.Update(body); err != nil {
			p.fail("move body", body, err)
		}
	}
}

func (r *Resolver) checkBody(body *Collider) {
	if body == nil {
		r.logger().Error("collision: move nil body")
		panic(ErrNilCollider)
	}
	if body.Shape.Kind == geom.KindNone {
		r.logger().Error("collision: move body without shape", zap.Uint64("body", body.id))
		panic(ErrNoShape)
	}
}

func (r *Resolver) iterations() int {
	if r.MaxIterations < 1 {
		return DefaultMaxIterations
	}
	return r.MaxIterations
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func isZero(v cp.Vector) bool {
	return v.X == 0 && v.Y == 0
}
