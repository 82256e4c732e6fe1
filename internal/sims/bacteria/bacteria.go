package bacteria

import (
	"cellsociety/internal/core"
	"cellsociety/internal/grid"
)

const (
	Rock grid.State = iota
	Paper
	Scissors
)

// States lists the rock-paper-scissors cell states.
var States = grid.StateSet{Names: []string{"rock", "paper", "scissors"}, Default: Rock}

func params() []core.ParamSpec {
	return []core.ParamSpec{
		{Key: "beatingThreshold", Label: "Beating threshold", Type: core.ParamTypeInt,
			Min: 0, Max: 24, Default: 3,
			Description: "winning neighbors needed to convert a cell"},
		{Key: "randomThreshold", Label: "Random threshold", Type: core.ParamTypeInt,
			Min: 0, Max: 24, Default: 0,
			Description: "extra random margin added to the threshold each tick"},
	}
}

// Beats returns the state that defeats st.
func Beats(st grid.State) grid.State {
	return (st + 1) % 3
}

// Bacteria converts cells outnumbered by the state that beats them.
type Bacteria struct {
	core.Base
}

// New returns a Bacteria rule bound to g.
func New(g *grid.Grid, seed int64) *Bacteria {
	return &Bacteria{Base: core.NewBase(core.KindBacteria, States, g, seed, params()...)}
}

// Step converts each cell whose predator count reaches the threshold.
func (b *Bacteria) Step() {
	p := b.Params()
	beating := p.Int("beatingThreshold")
	random := p.Int("randomThreshold")
	g := b.Grid()

	b.StepCells(func(c *grid.Cell, rng *core.RNG) {
		predator := Beats(c.State())
		threshold := beating
		if random > 0 {
			threshold += rng.IntN(random + 1)
		}
		if g.CountNeighbors(c, predator) >= threshold {
			c.SetNextState(predator)
		}
	})
}

func init() {
	core.Register(core.KindBacteria, States, func(g *grid.Grid, seed int64) core.Logic {
		return New(g, seed)
	})
}
