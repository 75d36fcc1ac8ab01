package geom

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectOps(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 6}

	t.Run("union", func(t *testing.T) {
		u := Union(r, Rect{X: -1, Y: 5, W: 2, H: 10})
		require.Equal(t, Rect{X: -1, Y: 3, W: 7, H: 12}, u)
		require.Equal(t, r, Union(r, r))
	})

	t.Run("offset", func(t *testing.T) {
		o := r.Offset(cp.Vector{X: 10, Y: -3})
		require.Equal(t, Rect{X: 12, Y: 0, W: 4, H: 6}, o)
		require.Equal(t, Rect{X: 2, Y: 3, W: 4, H: 6}, r, "offset must not mutate the receiver")
	})

	t.Run("inflate", func(t *testing.T) {
		require.Equal(t, Rect{X: 0, Y: 1, W: 8, H: 10}, r.Inflate(2))
		require.Equal(t, Rect{X: 1, Y: 1, W: 6, H: 10}, r.InflateXY(cp.Vector{X: 1, Y: 2}))
	})

	t.Run("center_and_extents", func(t *testing.T) {
		require.Equal(t, cp.Vector{X: 4, Y: 6}, r.Center())
		require.Equal(t, cp.Vector{X: 2, Y: 3}, r.HalfSize())
		require.Equal(t, cp.Vector{X: 6, Y: 9}, r.Max())
	})

	t.Run("from_corners", func(t *testing.T) {
		require.Equal(t, r, NewRect(cp.Vector{X: 6, Y: 3}, cp.Vector{X: 2, Y: 9}))
	})

	t.Run("bb_round_trip", func(t *testing.T) {
		require.Equal(t, r, RectFromBB(r.BB()))
	})
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	cases := []struct {
		name string
		p    cp.Vector
		want bool
	}{
		{"inside", cp.Vector{X: 5, Y: 5}, true},
		{"edge", cp.Vector{X: 10, Y: 3}, true},
		{"corner", cp.Vector{X: 0, Y: 0}, true},
		{"outside", cp.Vector{X: 10.01, Y: 3}, false},
		{"above", cp.Vector{X: 3, Y: -1}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, r.Contains(c.p))
		})
	}

	t.Run("zero_size", func(t *testing.T) {
		p := Rect{X: 3, Y: 3}
		assert.True(t, p.Contains(cp.Vector{X: 3, Y: 3}))
		assert.False(t, p.Contains(cp.Vector{X: 3, Y: 3.5}))
	})
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 5, H: 5}
	cases := []struct {
		name    string
		b       Rect
		want    bool
		touches bool
	}{
		{"overlap", Rect{X: 3, Y: 3, W: 4, H: 4}, true, true},
		{"inside", Rect{X: 1, Y: 1, W: 1, H: 1}, true, true},
		{"edge_lr", Rect{X: 5, Y: 0, W: 5, H: 5}, false, true},
		{"edge_ud", Rect{X: 0, Y: 5, W: 5, H: 5}, false, true},
		{"corner", Rect{X: 5, Y: 5, W: 5, H: 5}, false, true},
		{"apart", Rect{X: 6, Y: 0, W: 5, H: 5}, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, a.Intersects(c.b))
			require.Equal(t, c.want, c.b.Intersects(a))
			require.Equal(t, c.touches, a.Touches(c.b))
		})
	}
}
