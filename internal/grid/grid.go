package grid

import (
	"errors"
	"fmt"
)

// ErrMalformedGrid reports a raw grid whose rows differ in length.
var ErrMalformedGrid = errors.New("grid: malformed raw grid")

// Grid stores cells in row-major order and owns their neighbor links.
type Grid struct {
	rows, cols int
	cells      []Cell

	factory CellFactory
	opts    Options
	calc    *NeighborCalculator
	caster  Raycaster
}

// New builds a grid from raw records. A nil or empty raw grid yields a 0x0
// grid.
func New(raw [][]Record, factory CellFactory, opts Options) (*Grid, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	g := &Grid{
		opts:   opts,
		calc:   NewNeighborCalculator(opts),
		caster: NewRaycaster(opts.Shape),
	}
	if err := g.SetGrid(raw, factory); err != nil {
		return nil, err
	}
	return g, nil
}

// SetGrid replaces every cell and recomputes all neighbor links.
func (g *Grid) SetGrid(raw [][]Record, factory CellFactory) error {
	rows := len(raw)
	cols := 0
	if rows > 0 {
		cols = len(raw[0])
	}
	for r, line := range raw {
		if len(line) != cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedGrid, r, len(line), cols)
		}
	}
	if cols == 0 {
		rows = 0
	}
	cells := make([]Cell, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			cells[idx] = factory(r, c, raw[r][c])
			cells[idx].Row, cells[idx].Col = r, c
			cells[idx].index = idx
		}
	}
	g.rows, g.cols = rows, cols
	g.cells = cells
	g.factory = factory
	g.relink()
	return nil
}

// Reconfigure swaps the neighborhood configuration and recomputes links
// without touching cell states.
func (g *Grid) Reconfigure(opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	g.opts = opts
	g.calc = NewNeighborCalculator(opts)
	g.caster = NewRaycaster(opts.Shape)
	g.relink()
	return nil
}

func (g *Grid) relink() {
	for i := range g.cells {
		c := &g.cells[i]
		c.links = g.calc.links(g.rows, g.cols, c.Row, c.Col)
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Options returns the active neighborhood configuration.
func (g *Grid) Options() Options { return g.opts }

// Calculator returns the neighbor calculator for the active options.
func (g *Grid) Calculator() *NeighborCalculator { return g.calc }

// Factory returns the factory used to build the current cells.
func (g *Grid) Factory() CellFactory { return g.factory }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Index returns the arena index for (row, col).
func (g *Grid) Index(row, col int) int { return row*g.cols + col }

// Cell returns the cell at (row, col). Out-of-range coordinates panic.
func (g *Grid) Cell(row, col int) *Cell {
	if !g.InBounds(row, col) {
		panic(fmt.Sprintf("grid: cell (%d,%d) out of range %dx%d", row, col, g.rows, g.cols))
	}
	return &g.cells[row*g.cols+col]
}

// At returns the cell with arena index idx.
func (g *Grid) At(idx int) *Cell { return &g.cells[idx] }

// Resolve applies the edge policy to an arbitrary coordinate.
func (g *Grid) Resolve(row, col int) (*Cell, bool) {
	r, c, ok := g.opts.Edge.resolve(row, col, g.rows, g.cols)
	if !ok {
		return nil, false
	}
	return &g.cells[r*g.cols+c], true
}

// Each visits every cell in row-major order.
func (g *Grid) Each(fn func(c *Cell)) {
	for i := range g.cells {
		fn(&g.cells[i])
	}
}

// Row visits the cells of a single row.
func (g *Grid) Row(row int, fn func(c *Cell)) {
	start := row * g.cols
	for i := start; i < start+g.cols; i++ {
		fn(&g.cells[i])
	}
}

// Neighbors returns c's neighbors in link order.
func (g *Grid) Neighbors(c *Cell) []*Cell {
	out := make([]*Cell, len(c.links))
	for i, l := range c.links {
		out[i] = &g.cells[l.Index]
	}
	return out
}

// NeighborMap returns c's neighbors keyed by direction.
func (g *Grid) NeighborMap(c *Cell) map[Direction]*Cell {
	out := make(map[Direction]*Cell, len(c.links))
	for _, l := range c.links {
		out[l.Dir] = &g.cells[l.Index]
	}
	return out
}

// Neighbor returns c's neighbor in direction d.
func (g *Grid) Neighbor(c *Cell, d Direction) (*Cell, bool) {
	for _, l := range c.links {
		if l.Dir == d {
			return &g.cells[l.Index], true
		}
	}
	return nil, false
}

// CountNeighbors counts c's neighbors whose committed state is st.
func (g *Grid) CountNeighbors(c *Cell, st State) int {
	n := 0
	for _, l := range c.links {
		if g.cells[l.Index].current == st {
			n++
		}
	}
	return n
}

// UpdateGrid commits every cell's staged state and properties in row-major
// order. Rules call it once per tick after all writes are staged.
func (g *Grid) UpdateGrid() {
	for i := range g.cells {
		g.cells[i].commit()
	}
}

// Counts tallies committed states.
func (g *Grid) Counts() map[State]int {
	out := make(map[State]int)
	for i := range g.cells {
		out[g.cells[i].current]++
	}
	return out
}
