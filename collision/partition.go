package collision

import (
	"fmt"
	"math"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sweep/geom"
	"go.uber.org/zap"
)

// Cell is an integer grid coordinate: floor(world / cellSize) per axis.
type Cell struct {
	X, Y int
}

// PartitionStats is a snapshot of partition occupancy and query load.
type PartitionStats struct {
	Cells     int
	Colliders int
	Queries   int
}

// Partition is a uniform grid broad phase. A collider is indexed in every
// cell its bounds touch, so queries only need to look at the cells covered
// by the query area.
type Partition struct {
	cellSize  float64
	cells     map[Cell]map[*Collider]struct{}
	colliders int
	queries   int
	logger    *zap.Logger
}

type PartitionOption func(*Partition)

// WithLogger attaches a logger used for lifecycle failures.
func WithLogger(logger *zap.Logger) PartitionOption {
	return func(p *Partition) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPartition panics if cellSize is not a positive finite number.
func NewPartition(cellSize float64, opts ...PartitionOption) *Partition {
	if !(cellSize > 0) || math.IsInf(cellSize, 1) {
		panic(fmt.Sprintf("collision: invalid partition cell size %v", cellSize))
	}
	p := &Partition{
		cellSize: cellSize,
		cells:    make(map[Cell]map[*Collider]struct{}),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Partition) CellSize() float64 {
	return p.cellSize
}

// Len returns the number of colliders in the partition.
func (p *Partition) Len() int {
	return p.colliders
}

// CellAt returns the cell containing pt.
func (p *Partition) CellAt(pt cp.Vector) Cell {
	return Cell{X: p.floor(pt.X), Y: p.floor(pt.Y)}
}

// CellBounds returns the world rectangle covered by cell.
func (p *Partition) CellBounds(cell Cell) geom.Rect {
	return geom.Rect{
		X: float64(cell.X) * p.cellSize,
		Y: float64(cell.Y) * p.cellSize,
		W: p.cellSize,
		H: p.cellSize,
	}
}

// CellsFor returns every cell in the rectangle spanned by r's corners. A
// zero-size r still occupies one cell.
func (p *Partition) CellsFor(r geom.Rect) []Cell {
	lo, hi := p.span(r)
	out := make([]Cell, 0, (hi.X-lo.X+1)*(hi.Y-lo.Y+1))
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			out = append(out, Cell{X: x, Y: y})
		}
	}
	return out
}

func (p *Partition) Contains(c *Collider) bool {
	return c != nil && c.partition == p
}

// Add indexes c under every cell its current bounds touch.
func (p *Partition) Add(c *Collider) error {
	if c == nil {
		return ErrNilCollider
	}
	if c.partition != nil {
		return fmt.Errorf("partition: add collider %d: %w", c.id, ErrAlreadyInPartition)
	}
	if err := c.Shape.Validate(); err != nil {
		return fmt.Errorf("partition: add collider %d: %w", c.id, err)
	}

	c.cells = p.CellsFor(c.Bounds())
	for _, cell := range c.cells {
		p.insert(cell, c)
	}
	c.partition = p
	p.colliders++
	return nil
}

// Remove drops c from every cell it was indexed under.
func (p *Partition) Remove(c *Collider) error {
	if c == nil {
		return ErrNilCollider
	}
	if c.partition != p {
		return fmt.Errorf("partition: remove collider %d: %w", c.id, ErrNotInPartition)
	}
	for _, cell := range c.cells {
		p.erase(cell, c)
	}
	c.cells = nil
	c.partition = nil
	p.colliders--
	return nil
}

// Update re-indexes c from its current bounds. The cell sets are left
// alone when the covered cells did not change.
func (p *Partition) Update(c *Collider) error {
	if c == nil {
		return ErrNilCollider
	}
	if c.partition != p {
		return fmt.Errorf("partition: update collider %d: %w", c.id, ErrNotInPartition)
	}

	next := p.CellsFor(c.Bounds())
	if slices.Equal(next, c.cells) {
		return nil
	}
	for _, cell := range c.cells {
		p.erase(cell, c)
	}
	for _, cell := range next {
		p.insert(cell, c)
	}
	c.cells = next
	return nil
}

// Query returns every collider indexed in a cell touched by r, once each, in
// no particular order. It is a broad phase: callers still run the narrow
// phase on the result.
func (p *Partition) Query(r geom.Rect) []*Collider {
	p.queries++

	lo, hi := p.span(r)
	seen := make(map[*Collider]struct{})
	var out []*Collider
	collect := func(set map[*Collider]struct{}) {
		for c := range set {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}

	// Long sweeps can cover far more cells than are occupied.
	area := float64(hi.X-lo.X+1) * float64(hi.Y-lo.Y+1)
	if area > float64(len(p.cells)) {
		for cell, set := range p.cells {
			if cell.X >= lo.X && cell.X <= hi.X && cell.Y >= lo.Y && cell.Y <= hi.Y {
				collect(set)
			}
		}
		return out
	}

	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			if set, ok := p.cells[Cell{X: x, Y: y}]; ok {
				collect(set)
			}
		}
	}
	return out
}

// QueryPoint returns the colliders indexed in the cell containing pt.
func (p *Partition) QueryPoint(pt cp.Vector) []*Collider {
	return p.Query(geom.Rect{X: pt.X, Y: pt.Y})
}

// QueryShape returns the colliders on mask that actually overlap s.
func (p *Partition) QueryShape(s geom.Shape, mask LayerMask) []*Collider {
	candidates := p.Query(s.Bounds())
	out := candidates[:0]
	for _, c := range candidates {
		if !c.Layer.Matches(mask) {
			continue
		}
		if geom.Overlaps(s, c.WorldShape()) {
			out = append(out, c)
		}
	}
	return out
}

// EachCell visits occupied cells in row-major order with their colliders
// sorted by id. Returning false stops the walk. fn must not mutate the
// partition.
func (p *Partition) EachCell(fn func(cell Cell, colliders []*Collider) bool) {
	keys := make([]Cell, 0, len(p.cells))
	for cell := range p.cells {
		keys = append(keys, cell)
	}
	slices.SortFunc(keys, func(a, b Cell) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})

	for _, cell := range keys {
		set := p.cells[cell]
		list := make([]*Collider, 0, len(set))
		for c := range set {
			list = append(list, c)
		}
		slices.SortFunc(list, func(a, b *Collider) int {
			switch {
			case a.id < b.id:
				return -1
			case a.id > b.id:
				return 1
			}
			return 0
		})
		if !fn(cell, list) {
			return
		}
	}
}

func (p *Partition) Stats() PartitionStats {
	return PartitionStats{
		Cells:     len(p.cells),
		Colliders: p.colliders,
		Queries:   p.queries,
	}
}

// ResetStats zeroes the query counter.
func (p *Partition) ResetStats() {
	p.queries = 0
}

func (p *Partition) insert(cell Cell, c *Collider) {
	set, ok := p.cells[cell]
	if !ok {
		set = make(map[*Collider]struct{})
		p.cells[cell] = set
	}
	set[c] = struct{}{}
}

func (p *Partition) erase(cell Cell, c *Collider) {
	set, ok := p.cells[cell]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(p.cells, cell)
	}
}

func (p *Partition) span(r geom.Rect) (Cell, Cell) {
	return p.CellAt(r.Min()), p.CellAt(r.Max())
}

func (p *Partition) floor(v float64) int {
	return int(math.Floor(v / p.cellSize))
}

func (p *Partition) fail(op string, c *Collider, err error) {
	p.logger.Error("collision: "+op,
		zap.Uint64("collider", c.id),
		zap.String("tag", c.Tag),
		zap.Error(err),
	)
	panic(err)
}
