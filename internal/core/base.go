package core

import (
	"golang.org/x/sync/errgroup"

	"cellsociety/internal/grid"
)

// Base carries the state every rule shares: the bound grid, one seeded RNG,
// declared parameters and the tick counter. Rules embed it.
type Base struct {
	kind   Kind
	states grid.StateSet
	grid   *grid.Grid
	rng    *RNG
	params *Params

	workers int
	tick    int
}

// NewBase binds a rule to g.
func NewBase(kind Kind, states grid.StateSet, g *grid.Grid, seed int64, specs ...ParamSpec) Base {
	return Base{
		kind:    kind,
		states:  states,
		grid:    g,
		rng:     NewRNG(seed),
		params:  NewParams(specs...),
		workers: 1,
	}
}

// Kind returns the rule family.
func (b *Base) Kind() Kind { return b.kind }

// Grid returns the bound grid.
func (b *Base) Grid() *grid.Grid { return b.grid }

// States returns the rule's state set.
func (b *Base) States() grid.StateSet { return b.states }

// RNG returns the rule's random source.
func (b *Base) RNG() *RNG { return b.rng }

// Params returns the rule's parameter store.
func (b *Base) Params() *Params { return b.params }

// Tick returns the number of committed generations.
func (b *Base) Tick() int { return b.tick }

// Reset reseeds the random source and restarts the tick counter.
func (b *Base) Reset(seed int64) {
	b.rng = NewRNG(seed)
	b.tick = 0
}

// SetWorkers sets how many row bands StepCells may evaluate concurrently.
// Values below 2 keep evaluation on the calling goroutine.
func (b *Base) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	b.workers = n
}

// Workers returns the configured evaluation concurrency.
func (b *Base) Workers() int { return b.workers }

// StepCells is the default tick template: fn is called for every cell in
// row-major order and may only stage writes on the cell it receives; the grid
// is committed once afterwards. With more than one worker, rows are spread
// over goroutines and each row draws from its own generator derived from a
// single per-tick seed.
func (b *Base) StepCells(fn func(c *grid.Cell, rng *RNG)) {
	g := b.grid
	if b.workers <= 1 || g.Rows() < 2 {
		g.Each(func(c *grid.Cell) { fn(c, b.rng) })
		b.Commit()
		return
	}

	tickSeed := b.rng.Uint64()
	var eg errgroup.Group
	eg.SetLimit(b.workers)
	for row := 0; row < g.Rows(); row++ {
		eg.Go(func() error {
			rng := newStreamRNG(tickSeed, row)
			g.Row(row, func(c *grid.Cell) { fn(c, rng) })
			return nil
		})
	}
	_ = eg.Wait()
	b.Commit()
}

// Commit publishes every staged write and advances the tick counter.
func (b *Base) Commit() {
	b.grid.UpdateGrid()
	b.tick++
}

// FromMap applies flag-style key/value pairs to the rule's parameters.
func (b *Base) FromMap(cfg map[string]string) error { return b.params.Load(cfg) }

// Parameters returns the grouped parameter snapshot.
func (b *Base) Parameters() ParameterSnapshot { return b.params.Snapshot() }

// ParameterControls lists HUD-adjustable parameters.
func (b *Base) ParameterControls() []ParameterControl { return b.params.Controls() }

// SetFloatParameter writes a bounded numeric parameter.
func (b *Base) SetFloatParameter(key string, value float64) error {
	return b.params.SetFloat(key, value)
}

// FloatParameter reads a numeric parameter.
func (b *Base) FloatParameter(key string) (float64, error) { return b.params.GetFloat(key) }

// SetStringParameter writes a string parameter.
func (b *Base) SetStringParameter(key, value string) error {
	return b.params.SetString(key, value)
}

// StringParameter reads a string parameter.
func (b *Base) StringParameter(key string) (string, error) { return b.params.GetString(key) }
