package geom

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-6

func TestSweepBoxBox(t *testing.T) {
	mover := Rect{X: 0, Y: 0, W: 16, H: 16}

	cases := []struct {
		name   string
		target Rect
		v      cp.Vector
		hit    bool
		t      float64
		normal cp.Vector
	}{
		{"head_on", Rect{X: 20, Y: 0, W: 16, H: 16}, cp.Vector{X: 10}, true, 0.4, cp.Vector{X: -1}},
		{"from_above", Rect{X: 0, Y: 30, W: 16, H: 16}, cp.Vector{Y: 20}, true, 0.7, cp.Vector{Y: -1}},
		{"moving_left", Rect{X: -40, Y: 4, W: 16, H: 16}, cp.Vector{X: -30}, true, 0.8, cp.Vector{X: 1}},
		{"too_short", Rect{X: 20, Y: 0, W: 16, H: 16}, cp.Vector{X: 3}, false, 0, cp.Vector{}},
		{"touching_moving_in", Rect{X: 16, Y: 0, W: 16, H: 16}, cp.Vector{X: 5}, true, 0, cp.Vector{X: -1}},
		{"touching_moving_away", Rect{X: 16, Y: 0, W: 16, H: 16}, cp.Vector{X: -5}, false, 0, cp.Vector{}},
		{"overlapping_start", Rect{X: 8, Y: 0, W: 16, H: 16}, cp.Vector{X: 5}, false, 0, cp.Vector{}},
		{"parallel_along_edge", Rect{X: 20, Y: 16, W: 16, H: 16}, cp.Vector{X: 10}, false, 0, cp.Vector{}},
		{"parallel_outside_slab", Rect{X: 20, Y: 40, W: 16, H: 16}, cp.Vector{X: 100}, false, 0, cp.Vector{}},
		{"near_zero_axis", Rect{X: 20, Y: 0, W: 16, H: 16}, cp.Vector{X: 10, Y: 0.00005}, true, 0.4, cp.Vector{X: -1}},
		{"passes_by", Rect{X: 20, Y: 20, W: 16, H: 16}, cp.Vector{X: 30, Y: -5}, false, 0, cp.Vector{}},
		{"zero_velocity", Rect{X: 20, Y: 0, W: 16, H: 16}, cp.Vector{}, false, 0, cp.Vector{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hit, ok := Sweep(BoxShape(mover), BoxShape(c.target), c.v)
			require.Equal(t, c.hit, ok)
			if !ok {
				return
			}
			assert.InDelta(t, c.t, hit.T, tol)
			assert.Equal(t, c.normal, hit.Normal)

			moved := mover.Offset(hit.Delta)
			assert.False(t, moved.Intersects(c.target), "contact position must not overlap the target")
		})
	}
}

func TestSweepBoxBoxNoTunneling(t *testing.T) {
	bullet := Rect{X: 0, Y: 0, W: 4, H: 4}
	wall := Rect{X: 100, Y: -10, W: 1, H: 30}

	hit, ok := SweepBoxBox(bullet, wall, cp.Vector{X: 1000})
	require.True(t, ok)
	assert.InDelta(t, 0.096, hit.T, tol)

	end := bullet.Offset(hit.Delta)
	assert.InDelta(t, 100, end.X+end.W, 1e-3)
	assert.False(t, end.Intersects(wall))
}

func TestSweepBoxBoxCornerTieBreak(t *testing.T) {
	mover := Rect{X: 0, Y: 0, W: 10, H: 10}

	t.Run("equal_gaps_prefer_x", func(t *testing.T) {
		hit, ok := SweepBoxBox(mover, Rect{X: 20, Y: 20, W: 10, H: 10}, cp.Vector{X: 10, Y: 10})
		require.True(t, ok)
		assert.InDelta(t, 1.0, hit.T, tol)
		assert.Equal(t, cp.Vector{X: -1}, hit.Normal)
	})

	t.Run("smaller_gap_wins", func(t *testing.T) {
		// Both axes reach the target at t=1, but the Y gap (5) is smaller
		// than the X gap (10).
		hit, ok := SweepBoxBox(mover, Rect{X: 20, Y: 15, W: 10, H: 10}, cp.Vector{X: 10, Y: 5})
		require.True(t, ok)
		assert.InDelta(t, 1.0, hit.T, tol)
		assert.Equal(t, cp.Vector{Y: -1}, hit.Normal)
	})

	t.Run("later_axis_wins", func(t *testing.T) {
		hit, ok := SweepBoxBox(mover, Rect{X: 20, Y: 12, W: 10, H: 10}, cp.Vector{X: 20, Y: 20})
		require.True(t, ok)
		assert.InDelta(t, 0.5, hit.T, tol)
		assert.Equal(t, cp.Vector{X: -1}, hit.Normal)
	})
}

func TestSweepCircleBox(t *testing.T) {
	box := Rect{X: 10, Y: 0, W: 10, H: 10}

	t.Run("face", func(t *testing.T) {
		hit, ok := SweepCircleBox(Circle{Center: cp.Vector{X: 0, Y: 5}, Radius: 4}, box, cp.Vector{X: 10})
		require.True(t, ok)
		assert.InDelta(t, 0.6, hit.T, tol)
		assert.Equal(t, cp.Vector{X: -1}, hit.Normal)
	})

	t.Run("rounded_corner", func(t *testing.T) {
		c := Circle{Center: cp.Vector{X: 0, Y: -3}, Radius: 4}
		hit, ok := SweepCircleBox(c, box, cp.Vector{X: 20})
		require.True(t, ok)

		wantX := 10 - math.Sqrt(16-9)
		assert.InDelta(t, wantX/20, hit.T, tol)
		assert.InDelta(t, 1, hit.Normal.Length(), tol)
		assert.Less(t, hit.Normal.X, 0.0)
		assert.Less(t, hit.Normal.Y, 0.0)

		moved := Circle{Center: c.Center.Add(hit.Delta), Radius: c.Radius}
		assert.False(t, RectCircle(box, moved))
	})

	t.Run("corner_miss", func(t *testing.T) {
		c := Circle{Center: cp.Vector{X: 4, Y: -6}, Radius: 4}
		v := cp.Vector{X: 2, Y: 3}

		// The inflated box alone reports a contact in its corner square.
		_, _, square := RayRect(c.Center, v, box.Inflate(c.Radius))
		require.True(t, square)

		_, ok := SweepCircleBox(c, box, v)
		assert.False(t, ok)
	})

	t.Run("starts_in_corner_square", func(t *testing.T) {
		c := Circle{Center: cp.Vector{X: 7, Y: -3.8}, Radius: 4}
		_, ok := SweepCircleBox(c, box, cp.Vector{X: -4, Y: 10})
		assert.False(t, ok)

		hit, ok := SweepCircleBox(c, box, cp.Vector{X: 10})
		require.True(t, ok)
		assert.Greater(t, hit.T, 0.0)
	})

	t.Run("overlapping_start", func(t *testing.T) {
		_, ok := SweepCircleBox(Circle{Center: cp.Vector{X: 8, Y: 5}, Radius: 4}, box, cp.Vector{X: 10})
		assert.False(t, ok)
	})
}

func TestSweepBoxCircle(t *testing.T) {
	hit, ok := Sweep(
		BoxShape(Rect{X: 0, Y: 0, W: 4, H: 4}),
		CircleShape(Circle{Center: cp.Vector{X: 10, Y: 2}, Radius: 2}),
		cp.Vector{X: 10},
	)
	require.True(t, ok)
	assert.InDelta(t, 0.4, hit.T, tol)
	assert.InDelta(t, -1, hit.Normal.X, tol)
	assert.InDelta(t, 0, hit.Normal.Y, tol)
	assert.InDelta(t, 4-ContactEpsilon, hit.Delta.X, tol)
}

func TestSweepCircleCircle(t *testing.T) {
	a := Circle{Center: cp.Vector{}, Radius: 2}

	hit, ok := Sweep(CircleShape(a), CircleShape(Circle{Center: cp.Vector{X: 10}, Radius: 3}), cp.Vector{X: 10})
	require.True(t, ok)
	assert.InDelta(t, 0.5, hit.T, tol)
	assert.InDelta(t, -1, hit.Normal.X, tol)

	_, ok = Sweep(CircleShape(a), CircleShape(Circle{Center: cp.Vector{X: 10, Y: 6}, Radius: 3}), cp.Vector{X: 10})
	assert.False(t, ok, "path clears the target")

	_, ok = Sweep(CircleShape(a), CircleShape(Circle{Center: cp.Vector{X: 3}, Radius: 3}), cp.Vector{X: 10})
	assert.False(t, ok, "overlapping start is not blocking")
}

func TestRayCircleTangentStart(t *testing.T) {
	c := Circle{Center: cp.Vector{X: 5}, Radius: 5}

	tt, n, ok := RayCircle(cp.Vector{}, cp.Vector{X: 1}, c)
	require.True(t, ok)
	assert.Zero(t, tt)
	assert.Equal(t, cp.Vector{X: -1}, n)

	_, _, ok = RayCircle(cp.Vector{}, cp.Vector{X: -1}, c)
	assert.False(t, ok)
}
