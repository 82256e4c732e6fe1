package percolation

import (
	"cellsociety/internal/core"
	"cellsociety/internal/grid"
)

const (
	Open grid.State = iota
	Blocked
	Percolated
)

// States lists the Percolation cell states.
var States = grid.StateSet{Names: []string{"open", "blocked", "percolated"}, Default: Open}

// Percolation floods open cells adjacent to percolated ones.
type Percolation struct {
	core.Base
}

// New returns a Percolation rule bound to g.
func New(g *grid.Grid, seed int64) *Percolation {
	return &Percolation{Base: core.NewBase(core.KindPercolation, States, g, seed)}
}

// Step spreads percolation by one hop.
func (p *Percolation) Step() {
	g := p.Grid()
	p.StepCells(func(c *grid.Cell, _ *core.RNG) {
		if c.State() == Open && g.CountNeighbors(c, Percolated) > 0 {
			c.SetNextState(Percolated)
		}
	})
}

// Percolates reports whether any cell in the bottom row has been reached.
func (p *Percolation) Percolates() bool {
	g := p.Grid()
	if g.Rows() == 0 {
		return false
	}
	found := false
	g.Row(g.Rows()-1, func(c *grid.Cell) {
		if c.State() == Percolated {
			found = true
		}
	})
	return found
}

func init() {
	core.Register(core.KindPercolation, States, func(g *grid.Grid, seed int64) core.Logic {
		return New(g, seed)
	})
}
