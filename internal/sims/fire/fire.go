package fire

import (
	"cellsociety/internal/core"
	"cellsociety/internal/grid"
)

const (
	Empty grid.State = iota
	Tree
	Burning
)

// States lists the Fire cell states.
var States = grid.StateSet{Names: []string{"empty", "tree", "burning"}, Default: Empty}

// burnAge counts ticks a cell has been burning.
const burnAge = "burnAge"

func params() []core.ParamSpec {
	return []core.ParamSpec{
		{Key: "probCatch", Label: "Catch probability", Group: "Spread", Type: core.ParamTypeFloat,
			Min: 0, Max: 1, Default: 0.5, Step: 0.05,
			Description: "chance a tree next to a fire ignites"},
		{Key: "probLightning", Label: "Lightning probability", Group: "Spread", Type: core.ParamTypeFloat,
			Min: 0, Max: 1, Default: 0, Step: 0.001,
			Description: "chance any tree ignites on its own"},
		{Key: "probGrow", Label: "Regrowth probability", Group: "Growth", Type: core.ParamTypeFloat,
			Min: 0, Max: 1, Default: 0, Step: 0.01,
			Description: "chance an empty cell grows a tree"},
		{Key: "burnTicks", Label: "Burn ticks", Group: "Spread", Type: core.ParamTypeInt,
			Min: 1, Max: 50, Default: 1,
			Description: "ticks a cell burns before it is empty"},
	}
}

// Fire spreads burning cells into neighboring trees.
type Fire struct {
	core.Base
}

// New returns a Fire rule bound to g.
func New(g *grid.Grid, seed int64) *Fire {
	return &Fire{Base: core.NewBase(core.KindFire, States, g, seed, params()...)}
}

// Step advances the fire by one tick.
func (f *Fire) Step() {
	p := f.Params()
	catch := p.Float("probCatch")
	lightning := p.Float("probLightning")
	grow := p.Float("probGrow")
	ttl := float64(p.Int("burnTicks"))
	g := f.Grid()

	f.StepCells(func(c *grid.Cell, rng *core.RNG) {
		switch c.State() {
		case Burning:
			age := c.Property(burnAge) + 1
			if age >= ttl {
				c.SetNextState(Empty)
				c.ClearProperty(burnAge)
				return
			}
			c.SetProperty(burnAge, age)
		case Tree:
			if g.CountNeighbors(c, Burning) > 0 && rng.Chance(catch) {
				c.SetNextState(Burning)
				return
			}
			if rng.Chance(lightning) {
				c.SetNextState(Burning)
			}
		case Empty:
			if rng.Chance(grow) {
				c.SetNextState(Tree)
			}
		}
	})
}

// BurnedOut reports whether no cell is burning.
func (f *Fire) BurnedOut() bool {
	return f.Grid().Counts()[Burning] == 0
}

func init() {
	core.Register(core.KindFire, States, func(g *grid.Grid, seed int64) core.Logic {
		return New(g, seed)
	})
}
