package wator

import (
	"cellsociety/internal/core"
	"cellsociety/internal/grid"
)

const (
	Open grid.State = iota
	Shark
	Fish
)

// States lists the Wa-Tor cell states.
var States = grid.StateSet{Names: []string{"open", "shark", "fish"}, Default: Open}

// Per-animal properties. They move with the animal.
const (
	propBreed  = "breed"
	propEnergy = "energy"
)

func params() []core.ParamSpec {
	return []core.ParamSpec{
		{Key: "fishBreedTime", Label: "Fish breed time", Group: "Fish", Type: core.ParamTypeInt,
			Min: 1, Max: 100, Default: 3},
		{Key: "sharkBreedTime", Label: "Shark breed time", Group: "Sharks", Type: core.ParamTypeInt,
			Min: 1, Max: 100, Default: 8},
		{Key: "sharkInitialEnergy", Label: "Shark energy", Group: "Sharks", Type: core.ParamTypeInt,
			Min: 1, Max: 100, Default: 5,
			Description: "energy of newborn and freshly loaded sharks"},
		{Key: "sharkEnergyGain", Label: "Energy per fish", Group: "Sharks", Type: core.ParamTypeInt,
			Min: 0, Max: 100, Default: 3},
	}
}

// WaTor is the predator-prey world of fish and sharks.
type WaTor struct {
	core.Base
}

// New returns a WaTor rule bound to g.
func New(g *grid.Grid, seed int64) *WaTor {
	return &WaTor{Base: core.NewBase(core.KindWaTor, States, g, seed, params()...)}
}

// Step moves every shark, then every fish that survived. A cell's next state
// marks it as claimed for the tick, so an eaten fish does not move and two
// animals never land in the same cell.
func (w *WaTor) Step() {
	var sharks, fish []*grid.Cell
	w.Grid().Each(func(c *grid.Cell) {
		switch c.State() {
		case Shark:
			sharks = append(sharks, c)
		case Fish:
			fish = append(fish, c)
		}
	})
	w.shuffle(sharks)
	w.shuffle(fish)

	for _, c := range sharks {
		w.moveShark(c)
	}
	for _, c := range fish {
		if c.NextState() != Fish {
			continue
		}
		w.moveFish(c)
	}
	w.Commit()
}

func (w *WaTor) shuffle(cells []*grid.Cell) {
	w.RNG().Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
}

func (w *WaTor) moveShark(c *grid.Cell) {
	p := w.Params()
	energy := float64(p.Int("sharkInitialEnergy"))
	if c.HasProperty(propEnergy) {
		energy = c.Property(propEnergy)
	}
	energy--
	breed := c.Property(propBreed) + 1

	if energy <= 0 {
		c.SetNextState(Open)
		c.ClearProperty(propEnergy)
		c.ClearProperty(propBreed)
		return
	}

	dst := w.choose(c, Fish)
	if dst != nil {
		energy += float64(p.Int("sharkEnergyGain"))
	} else {
		dst = w.choose(c, Open)
	}
	if dst == nil {
		c.SetProperty(propEnergy, energy)
		c.SetProperty(propBreed, breed)
		return
	}

	dst.SetNextState(Shark)
	dst.SetProperty(propEnergy, energy)
	if breed >= float64(p.Int("sharkBreedTime")) {
		dst.SetProperty(propBreed, 0)
		c.SetProperty(propEnergy, float64(p.Int("sharkInitialEnergy")))
		c.SetProperty(propBreed, 0)
		return
	}
	dst.SetProperty(propBreed, breed)
	c.SetNextState(Open)
	c.ClearProperty(propEnergy)
	c.ClearProperty(propBreed)
}

func (w *WaTor) moveFish(c *grid.Cell) {
	breed := c.Property(propBreed) + 1
	dst := w.choose(c, Open)
	if dst == nil {
		c.SetProperty(propBreed, breed)
		return
	}
	dst.SetNextState(Fish)
	if breed >= float64(w.Params().Int("fishBreedTime")) {
		dst.SetProperty(propBreed, 0)
		c.SetProperty(propBreed, 0)
		return
	}
	dst.SetProperty(propBreed, breed)
	c.SetNextState(Open)
	c.ClearProperty(propBreed)
}

// choose picks a random neighbor that holds want and has not been claimed
// this tick.
func (w *WaTor) choose(c *grid.Cell, want grid.State) *grid.Cell {
	var options []*grid.Cell
	for _, n := range w.Grid().Neighbors(c) {
		if n.State() == want && n.NextState() == want {
			options = append(options, n)
		}
	}
	if len(options) == 0 {
		return nil
	}
	return options[w.RNG().IntN(len(options))]
}

func init() {
	core.Register(core.KindWaTor, States, func(g *grid.Grid, seed int64) core.Logic {
		return New(g, seed)
	})
}
