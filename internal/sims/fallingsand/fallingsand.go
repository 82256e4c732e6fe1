package fallingsand

import (
	"cellsociety/internal/core"
	"cellsociety/internal/grid"
)

const (
	Empty grid.State = iota
	Sand
	Water
	Wall
)

// States lists the falling-sand cell states.
var States = grid.StateSet{Names: []string{"empty", "sand", "water", "wall"}, Default: Empty}

func params() []core.ParamSpec {
	return []core.ParamSpec{
		{Key: "movesPerTick", Label: "Moves per tick", Type: core.ParamTypeInt,
			Min: 1, Max: 10000, Default: 1,
			Description: "particles picked for movement each tick"},
	}
}

// FallingSand moves randomly chosen particles under gravity. Sand falls
// straight down into empty cells. Water falls the same way or, when blocked,
// slides diagonally down to a random free side. Walls never move and
// particles on the bottom row stay put.
type FallingSand struct {
	core.Base
}

// New returns a FallingSand rule bound to g.
func New(g *grid.Grid, seed int64) *FallingSand {
	return &FallingSand{Base: core.NewBase(core.KindFallingSand, States, g, seed, params()...)}
}

// Step picks movesPerTick particles at random and moves each at most once.
// Moves land in cells that are empty in both the committed and staged
// generation so two particles never share a destination.
func (f *FallingSand) Step() {
	g := f.Grid()
	rng := f.RNG()

	var particles []*grid.Cell
	g.Each(func(c *grid.Cell) {
		if c.State() == Sand || c.State() == Water {
			particles = append(particles, c)
		}
	})
	for n := f.Params().Int("movesPerTick"); n > 0 && len(particles) > 0; n-- {
		i := rng.IntN(len(particles))
		c := particles[i]
		particles[i] = particles[len(particles)-1]
		particles = particles[:len(particles)-1]
		if c.NextState() != c.State() {
			continue
		}
		if dst := f.target(c, rng); dst != nil {
			dst.SetNextState(c.State())
			c.SetNextState(Empty)
		}
	}
	f.Commit()
}

func (f *FallingSand) target(c *grid.Cell, rng *core.RNG) *grid.Cell {
	if below := f.free(c.Row+1, c.Col); below != nil {
		return below
	}
	if c.State() != Water || c.Row+1 >= f.Grid().Rows() {
		return nil
	}
	return f.pick(rng, f.free(c.Row+1, c.Col-1), f.free(c.Row+1, c.Col+1))
}

func (f *FallingSand) free(row, col int) *grid.Cell {
	g := f.Grid()
	if !g.InBounds(row, col) {
		return nil
	}
	c := g.Cell(row, col)
	if c.State() != Empty || c.NextState() != Empty {
		return nil
	}
	return c
}

func (f *FallingSand) pick(rng *core.RNG, a, b *grid.Cell) *grid.Cell {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case rng.Bool():
		return b
	default:
		return a
	}
}

func init() {
	core.Register(core.KindFallingSand, States, func(g *grid.Grid, seed int64) core.Logic {
		return New(g, seed)
	})
}
