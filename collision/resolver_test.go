package collision

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sweep/config"
	"github.com/milk9111/sweep/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const eps = 1e-3

type world struct {
	p *Partition
	r *Resolver
}

func newWorld() *world {
	p := NewPartition(16)
	return &world{p: p, r: NewResolver(p, config.Resolver{MaxIterations: 2, Padding: 1}, nil)}
}

func (w *world) solid(x, y, width, height float64) *Collider {
	c := newBox(x, y, width, height)
	c.Tag = "solid"
	c.Enable(w.p)
	return c
}

func (w *world) body(x, y float64) *Collider {
	c := NewCollider(NewPoint(x, y), NewBox(0, 0, 16, 16), Layer(2))
	c.Enable(w.p)
	return c
}

func TestMoveAndCollideScenarios(t *testing.T) {
	t.Run("stops_flush_against_wall", func(t *testing.T) {
		w := newWorld()
		w.solid(20, 0, 16, 16)
		body := w.body(0, 0)

		var events []CollisionEvent
		w.r.OnHit = func(e CollisionEvent) { events = append(events, e) }

		left := w.r.MoveAndCollide(body, cp.Vector{X: 10}, AllLayers, Slide)
		assert.Equal(t, cp.Vector{}, left)

		pos := body.Position()
		assert.InDelta(t, 4, pos.X, eps)
		assert.InDelta(t, 0, pos.Y, eps)
		assert.LessOrEqual(t, pos.X+16, 20.0)

		require.Len(t, events, 1)
		assert.InDelta(t, 0.4, events[0].Time, eps)
		assert.Equal(t, cp.Vector{X: -1}, events[0].Normal)
		assert.Equal(t, body, events[0].Body)
	})

	t.Run("slides_along_wall", func(t *testing.T) {
		w := newWorld()
		w.solid(20, 0, 16, 16)
		body := w.body(0, 0)

		left := w.r.MoveAndCollide(body, cp.Vector{X: 10, Y: 10}, AllLayers, Slide)

		pos := body.Position()
		assert.InDelta(t, 4, pos.X, eps)
		assert.InDelta(t, 10, pos.Y, eps)
		assert.InDelta(t, 0, left.X, eps)
		assert.InDelta(t, 6, left.Y, eps)
	})

	t.Run("zero_velocity_skips_query", func(t *testing.T) {
		w := newWorld()
		w.solid(20, 0, 16, 16)
		body := w.body(3, 5)
		w.p.ResetStats()

		left := w.r.MoveAndCollide(body, cp.Vector{}, AllLayers, Slide)

		assert.Equal(t, cp.Vector{}, left)
		assert.Equal(t, cp.Vector{X: 3, Y: 5}, body.Position())
		assert.Zero(t, w.p.Stats().Queries)
	})
}

func TestMoveAndCollideFreeMove(t *testing.T) {
	w := newWorld()
	w.solid(100, 100, 16, 16)
	body := w.body(0, 0)

	left := w.r.MoveAndCollide(body, cp.Vector{X: 30, Y: -7}, AllLayers, Slide)
	assert.Equal(t, cp.Vector{X: 30, Y: -7}, left)
	assert.Equal(t, cp.Vector{X: 30, Y: -7}, body.Position())
	assert.Equal(t, w.p.CellsFor(body.Bounds()), body.Cells())
}

func TestMoveAndCollideNoTunneling(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 200; i++ {
		w := newWorld()
		wall := w.solid(200, -50, 1+rng.Float64()*4, 100+rng.Float64()*50)

		size := 2 + rng.Float64()*20
		start := cp.Vector{X: rng.Float64() * 150, Y: rng.Float64()*80 - 40}
		body := NewCollider(NewPoint(start.X, start.Y), NewBox(0, 0, size, size), Layer(2))
		body.Enable(w.p)

		// Aim past the far side of the wall, sometimes by a lot.
		speed := 300 + rng.Float64()*1e5
		target := cp.Vector{X: 400, Y: start.Y + rng.Float64()*20 - 10}
		v := target.Sub(start).Normalize().Mult(speed)

		w.r.MoveAndCollide(body, v, AllLayers, Stop)

		b := body.Bounds()
		require.False(t, b.Intersects(wall.Bounds()), "case %d: body %+v overlaps wall %+v", i, b, wall.Bounds())
		require.LessOrEqual(t, b.X+b.W, wall.Bounds().X, "case %d: body passed through", i)
		assert.InDelta(t, wall.Bounds().X, b.X+b.W, eps, "case %d", i)
	}
}

func TestMoveAndCollideCircleBody(t *testing.T) {
	w := newWorld()
	floor := w.solid(-100, 20, 300, 10)
	ball := NewCollider(NewPoint(0, 0), NewCircle(0, 0, 5).Centered(), Layer(2))
	ball.Enable(w.p)

	w.r.MoveAndCollide(ball, cp.Vector{X: 10, Y: 40}, AllLayers, Slide)

	assert.False(t, geom.Overlaps(ball.WorldShape(), floor.WorldShape()))
	assert.InDelta(t, 15, ball.Position().Y, eps)
	assert.Greater(t, ball.Position().X, 3.0)
}

func TestMoveAndCollideLayerMask(t *testing.T) {
	w := newWorld()
	pickup := NewCollider(NewPoint(20, 0), NewBox(0, 0, 16, 16), Layer(3))
	pickup.Enable(w.p)
	body := w.body(0, 0)

	w.r.MoveAndCollide(body, cp.Vector{X: 10}, Layer(0), Slide)
	assert.Equal(t, cp.Vector{X: 10}, body.Position(), "pickup layer is not in the mask")

	w.r.MoveAndCollide(body, cp.Vector{X: -10}, Layer(0), Slide)
	w.r.MoveAndCollide(body, cp.Vector{X: 10}, Layer(3)|Layer(0), Slide)
	assert.InDelta(t, 4, body.Position().X, eps)
}

func TestMoveAndCollideIgnorePassesThrough(t *testing.T) {
	w := newWorld()
	trigger := w.solid(20, 0, 4, 16)
	body := w.body(0, 0)

	hits := 0
	trigger.OnHit = func(e CollisionEvent) {
		hits++
		assert.Equal(t, trigger, e.Other)
	}

	left := w.r.MoveAndCollide(body, cp.Vector{X: 40}, AllLayers, Ignore)

	assert.Equal(t, 1, hits, "visited colliders are not hit twice")
	assert.InDelta(t, 40, body.Position().X, eps)
	assert.InDelta(t, 36, left.X, eps)
}

func TestMoveAndCollideIterationCap(t *testing.T) {
	w := newWorld()
	// A corridor of thin posts; Ignore keeps going after each.
	for x := 20.0; x < 200; x += 20 {
		w.solid(x, 0, 2, 16)
	}
	body := w.body(0, 0)

	var times []float64
	w.r.OnHit = func(e CollisionEvent) { times = append(times, e.Time) }

	left := w.r.MoveAndCollide(body, cp.Vector{X: 100}, AllLayers, Ignore)

	assert.Equal(t, cp.Vector{}, left)
	require.Len(t, times, 2)
	assert.InDelta(t, 24, body.Position().X, eps, "stopped against the second post")

	w.r.MaxIterations = 5
	w.r.MoveAndCollide(body, cp.Vector{X: 100}, AllLayers, Ignore)
	assert.Len(t, times, 7)
	assert.InDelta(t, 104, body.Position().X, eps)
}

func TestMoveAndCollideEqualTimeTieBreak(t *testing.T) {
	w := newWorld()
	first := w.solid(20, 0, 16, 8)
	second := w.solid(20, 8, 16, 8)
	body := w.body(0, 0)

	var struck []*Collider
	w.r.OnHit = func(e CollisionEvent) { struck = append(struck, e.Other) }

	w.r.MoveAndCollide(body, cp.Vector{X: 10}, AllLayers, Stop)
	assert.Equal(t, []*Collider{first}, struck)
	assert.Less(t, first.ID(), second.ID())
}

func TestMoveAndCollideBounce(t *testing.T) {
	w := newWorld()
	w.solid(20, -100, 16, 300)
	body := w.body(0, 0)

	left := w.r.MoveAndCollide(body, cp.Vector{X: 10, Y: 2}, AllLayers, Bounce)

	assert.InDelta(t, -6, left.X, eps)
	assert.InDelta(t, 1.2, left.Y, eps)
	assert.InDelta(t, 4-6, body.Position().X, eps)
	assert.InDelta(t, 2, body.Position().Y, eps)
}

func TestMoveAndCollideDisabledBody(t *testing.T) {
	w := newWorld()
	w.solid(20, 0, 16, 16)
	body := NewCollider(NewPoint(0, 0), NewBox(0, 0, 16, 16), Layer(2))

	MoveAndCollide(w.p, body, cp.Vector{X: 10}, AllLayers, Stop)

	assert.InDelta(t, 4, body.Position().X, eps)
	assert.False(t, body.Enabled())
	assert.Equal(t, 1, w.p.Len())
}

func TestMoveAndCollidePanics(t *testing.T) {
	w := newWorld()

	core, logs := observer.New(zap.ErrorLevel)
	w.r.Logger = zap.New(core)

	shapeless := NewCollider(NewPoint(0, 0), Shape{}, Layer(0))
	assert.PanicsWithValue(t, ErrNoShape, func() {
		w.r.MoveAndCollide(shapeless, cp.Vector{X: 1}, AllLayers, Slide)
	})
	assert.PanicsWithValue(t, ErrNilCollider, func() {
		w.r.MoveAndCollide(nil, cp.Vector{X: 1}, AllLayers, Slide)
	})
	assert.Equal(t, 2, logs.Len())
}

func TestResolverLogsContacts(t *testing.T) {
	w := newWorld()
	core, logs := observer.New(zap.DebugLevel)
	w.r.Logger = zap.New(core)
	w.solid(20, 0, 16, 16)
	body := w.body(0, 0)

	w.r.MoveAndCollide(body, cp.Vector{X: 10}, AllLayers, Slide)

	entries := logs.FilterMessage("contact resolved").All()
	require.Len(t, entries, 1)
	assert.InDelta(t, 0.4, entries[0].ContextMap()["t"], eps)
}

func TestCastDoesNotMove(t *testing.T) {
	w := newWorld()
	wall := w.solid(20, 0, 16, 16)
	body := w.body(0, 0)

	e := w.r.Cast(body, cp.Vector{X: 10}, AllLayers)
	require.True(t, e.Hit())
	assert.Equal(t, wall, e.Other)
	assert.InDelta(t, 0.4, e.Time, eps)
	assert.InDelta(t, 4, e.Position.X, eps)
	assert.InDelta(t, 6, e.Remaining().X, eps)
	assert.Equal(t, cp.Vector{}, body.Position())

	miss := w.r.Cast(body, cp.Vector{Y: -10}, AllLayers)
	assert.False(t, miss.Hit())
	assert.Equal(t, 1.0, miss.Time)
	assert.Equal(t, cp.Vector{Y: -10}, miss.Position)
	assert.Equal(t, cp.Vector{}, miss.Remaining())
	assert.False(t, math.IsNaN(miss.Normal.X))
}
