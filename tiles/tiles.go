// Package tiles turns a tile layer into static colliders. Runs of solid
// tiles are merged greedily into as few boxes as possible; hazard tiles
// stay one box each so they can be told apart on their own layer.
package tiles

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sweep/collision"
	"github.com/milk9111/sweep/geom"
)

// Tile values.
const (
	Empty  = 0
	Solid  = 1
	Hazard = 2
)

// Tags given to the built colliders.
const (
	TagSolid  = "solid"
	TagHazard = "hazard"
	TagWall   = "wall"
)

var ErrGridSize = errors.New("tiles: grid size mismatch")

// Grid is a row-major tile layer.
type Grid struct {
	Width    int
	Height   int
	TileSize float64
	Tiles    []int
}

// FromRows builds a grid from text rows: '#' is solid, '^' is hazard and
// anything else is empty. Short rows are padded with empty tiles.
func FromRows(tileSize float64, rows ...string) Grid {
	g := Grid{Height: len(rows), TileSize: tileSize}
	for _, row := range rows {
		g.Width = max(g.Width, len(row))
	}
	g.Tiles = make([]int, g.Width*g.Height)
	for y, row := range rows {
		for x, ch := range []byte(row) {
			switch ch {
			case '#':
				g.Tiles[y*g.Width+x] = Solid
			case '^':
				g.Tiles[y*g.Width+x] = Hazard
			}
		}
	}
	return g
}

func (g Grid) Validate() error {
	if g.Width < 0 || g.Height < 0 || len(g.Tiles) != g.Width*g.Height {
		return fmt.Errorf("%w: %dx%d with %d tiles", ErrGridSize, g.Width, g.Height, len(g.Tiles))
	}
	if !(g.TileSize > 0) {
		return fmt.Errorf("tiles: tile size must be positive, got %v", g.TileSize)
	}
	return nil
}

// Set changes one tile. Coordinates outside the grid are ignored.
func (g Grid) Set(x, y, tile int) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Tiles[y*g.Width+x] = tile
}

// At returns the tile at (x, y), or Empty outside the grid.
func (g Grid) At(x, y int) int {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return Empty
	}
	return g.Tiles[y*g.Width+x]
}

// Bounds is the world rectangle covered by the grid.
func (g Grid) Bounds() geom.Rect {
	return geom.Rect{W: float64(g.Width) * g.TileSize, H: float64(g.Height) * g.TileSize}
}

// Merge returns world rectangles covering every solid tile. Each rectangle
// grows right as far as the row allows, then down while every tile beneath
// it is solid and unclaimed.
func (g Grid) Merge() []geom.Rect {
	var out []geom.Rect
	processed := make([]bool, len(g.Tiles))
	solid := func(x, y int) bool {
		idx := y*g.Width + x
		return !processed[idx] && g.Tiles[idx] != Empty && g.Tiles[idx] != Hazard
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !solid(x, y) {
				continue
			}

			w := 1
			for x+w < g.Width && solid(x+w, y) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < g.Height {
				for xi := x; xi < x+w; xi++ {
					if !solid(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*g.Width+xx] = true
				}
			}
			out = append(out, geom.Rect{
				X: float64(x) * g.TileSize,
				Y: float64(y) * g.TileSize,
				W: float64(w) * g.TileSize,
				H: float64(h) * g.TileSize,
			})
		}
	}
	return out
}

// Hazards returns one world rectangle per hazard tile.
func (g Grid) Hazards() []geom.Rect {
	var out []geom.Rect
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y*g.Width+x] == Hazard {
				out = append(out, geom.Rect{
					X: float64(x) * g.TileSize,
					Y: float64(y) * g.TileSize,
					W: g.TileSize,
					H: g.TileSize,
				})
			}
		}
	}
	return out
}

// Options chooses layers for the built colliders.
type Options struct {
	SolidLayer  collision.LayerMask
	HazardLayer collision.LayerMask
	// Walls adds four boxes just outside the grid so nothing leaves it.
	Walls bool
	// WallThickness defaults to one tile.
	WallThickness float64
}

// Build enables static colliders for g in p and returns them.
func Build(p *collision.Partition, g Grid, opts Options) ([]*collision.Collider, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	var out []*collision.Collider
	add := func(r geom.Rect, layer collision.LayerMask, tag string) error {
		c := collision.NewCollider(collision.NewPoint(r.X, r.Y), collision.NewBox(0, 0, r.W, r.H), layer)
		c.Tag = tag
		if err := p.Add(c); err != nil {
			return fmt.Errorf("tiles: %s at %v,%v: %w", tag, r.X, r.Y, err)
		}
		out = append(out, c)
		return nil
	}

	for _, r := range g.Merge() {
		if err := add(r, opts.SolidLayer, TagSolid); err != nil {
			return nil, err
		}
	}
	for _, r := range g.Hazards() {
		if err := add(r, opts.HazardLayer, TagHazard); err != nil {
			return nil, err
		}
	}
	if opts.Walls {
		for _, r := range walls(g.Bounds(), opts.thickness(g)) {
			if err := add(r, opts.SolidLayer, TagWall); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func (o Options) thickness(g Grid) float64 {
	if o.WallThickness > 0 {
		return o.WallThickness
	}
	return g.TileSize
}

func walls(world geom.Rect, t float64) []geom.Rect {
	if world.W <= 0 || world.H <= 0 {
		return nil
	}
	outer := world.Inflate(t)
	return []geom.Rect{
		{X: outer.X, Y: outer.Y, W: outer.W, H: t},
		{X: outer.X, Y: world.Y + world.H, W: outer.W, H: t},
		{X: outer.X, Y: world.Y, W: t, H: world.H},
		{X: world.X + world.W, Y: world.Y, W: t, H: world.H},
	}
}

// TileAt returns the tile coordinate containing world point pt.
func (g Grid) TileAt(pt cp.Vector) (int, int) {
	return int(math.Floor(pt.X / g.TileSize)), int(math.Floor(pt.Y / g.TileSize))
}
