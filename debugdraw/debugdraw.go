// Package debugdraw renders the partition, colliders and contacts on top of
// an ebiten frame. It only reads collision state.
package debugdraw

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sweep/collision"
	"github.com/milk9111/sweep/geom"
	"golang.org/x/image/colornames"
)

const (
	strokeWidth = 1
	crossSize   = 4
	normalLen   = 12
)

// Camera maps world coordinates to screen pixels.
type Camera struct {
	X, Y float64
	Zoom float64
}

func (c Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

func (c Camera) ToScreen(v cp.Vector) (float32, float32) {
	z := c.zoom()
	return float32((v.X - c.X) * z), float32((v.Y - c.Y) * z)
}

// ToWorld maps a screen pixel, e.g. the cursor, back to world space.
func (c Camera) ToWorld(x, y int) cp.Vector {
	z := c.zoom()
	return cp.Vector{X: float64(x)/z + c.X, Y: float64(y)/z + c.Y}
}

type Options struct {
	Camera Camera
	// Cells outlines occupied partition cells.
	Cells bool
	// Counts prints the collider count in each occupied cell.
	Counts bool
	// Colors overrides the outline color per collider tag.
	Colors map[string]color.Color
}

var defaultColors = map[string]color.Color{
	"solid":  colornames.Limegreen,
	"wall":   colornames.Darkgreen,
	"hazard": colornames.Red,
	"player": colornames.Deepskyblue,
}

// ColorFor picks the outline color of a collider.
func (o Options) ColorFor(c *collision.Collider) color.Color {
	if clr, ok := o.Colors[c.Tag]; ok {
		return clr
	}
	if clr, ok := defaultColors[c.Tag]; ok {
		return clr
	}
	return colornames.Yellow
}

// Draw outlines the partition's cells and every collider it indexes.
func Draw(screen *ebiten.Image, p *collision.Partition, opts Options) {
	if screen == nil || p == nil {
		return
	}

	cam := opts.Camera
	seen := make(map[*collision.Collider]struct{})
	var colliders []*collision.Collider

	p.EachCell(func(cell collision.Cell, list []*collision.Collider) bool {
		if opts.Cells {
			r := p.CellBounds(cell)
			strokeRect(screen, cam, r, cellColor(len(list)))
			if opts.Counts {
				x, y := cam.ToScreen(r.Min())
				ebitenutil.DebugPrintAt(screen, fmt.Sprint(len(list)), int(x)+2, int(y))
			}
		}
		for _, c := range list {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			colliders = append(colliders, c)
		}
		return true
	})

	for _, c := range colliders {
		DrawShape(screen, cam, c.WorldShape(), opts.ColorFor(c))
	}
}

// DrawShape outlines a single world-space shape.
func DrawShape(screen *ebiten.Image, cam Camera, s geom.Shape, clr color.Color) {
	switch s.Kind {
	case geom.KindBox:
		strokeRect(screen, cam, s.Rect, clr)
	case geom.KindCircle:
		x, y := cam.ToScreen(s.Circle.Center)
		vector.StrokeCircle(screen, x, y, float32(s.Circle.Radius*cam.zoom()), strokeWidth, clr, true)
	}
}

// DrawEvent marks a contact: a cross at the resolved position, the surface
// normal, and the part of the velocity that was not travelled.
func DrawEvent(screen *ebiten.Image, cam Camera, e collision.CollisionEvent) {
	if screen == nil || !e.Hit() {
		return
	}

	at := e.Position
	if e.Body != nil {
		at = e.Body.Shape.At(e.Position).Center()
	}
	cross(screen, cam, at, colornames.Orange)
	line(screen, cam, at, at.Add(e.Normal.Mult(normalLen)), colornames.Magenta)
	line(screen, cam, at, at.Add(e.Remaining()), colornames.Lightgrey)
}

// DrawRay draws a line trace up to its hit, or whole when nothing blocked
// it.
func DrawRay(screen *ebiten.Image, cam Camera, a, b cp.Vector, hit collision.RayHit, blocked bool) {
	if !blocked {
		line(screen, cam, a, b, colornames.Lightskyblue)
		return
	}
	line(screen, cam, a, hit.Point, colornames.Tomato)
	cross(screen, cam, hit.Point, colornames.Tomato)
}

// DrawStats prints partition counters at (x, y).
func DrawStats(screen *ebiten.Image, stats collision.PartitionStats, x, y int) {
	msg := fmt.Sprintf("cells: %d\ncolliders: %d\nqueries: %d", stats.Cells, stats.Colliders, stats.Queries)
	ebitenutil.DebugPrintAt(screen, msg, x, y)
}

func cellColor(n int) color.Color {
	a := uint8(min(40+n*30, 220))
	return color.NRGBA{R: 80, G: 160, B: 255, A: a}
}

func strokeRect(screen *ebiten.Image, cam Camera, r geom.Rect, clr color.Color) {
	x, y := cam.ToScreen(r.Min())
	z := float32(cam.zoom())
	vector.StrokeRect(screen, x, y, float32(r.W)*z, float32(r.H)*z, strokeWidth, clr, false)
}

func line(screen *ebiten.Image, cam Camera, a, b cp.Vector, clr color.Color) {
	x1, y1 := cam.ToScreen(a)
	x2, y2 := cam.ToScreen(b)
	vector.StrokeLine(screen, x1, y1, x2, y2, strokeWidth, clr, true)
}

func cross(screen *ebiten.Image, cam Camera, at cp.Vector, clr color.Color) {
	h := crossSize / cam.zoom()
	line(screen, cam, at.Add(cp.Vector{X: -h}), at.Add(cp.Vector{X: h}), clr)
	line(screen, cam, at.Add(cp.Vector{Y: -h}), at.Add(cp.Vector{Y: h}), clr)
}
