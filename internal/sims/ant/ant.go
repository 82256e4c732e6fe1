package ant

import (
	"sort"

	"cellsociety/internal/core"
	"cellsociety/internal/grid"
)

const (
	Empty grid.State = iota
	Nest
	Food
	Obstacle
)

// States lists the foraging cell states.
var States = grid.StateSet{Names: []string{"empty", "nest", "food", "obstacle"}, Default: Empty}

// Cell properties maintained by the rule.
const (
	PropHome = "homePheromone"
	PropFood = "foodPheromone"
	PropAnts = "ants"
)

// pheromoneFloor is the level below which a trail is dropped.
const pheromoneFloor = 1e-3

func params() []core.ParamSpec {
	return []core.ParamSpec{
		{Key: "maxAnts", Label: "Max ants", Group: "Colony", Type: core.ParamTypeInt,
			Min: 0, Max: 10000, Default: 50},
		{Key: "antsPerCell", Label: "Ants per cell", Group: "Colony", Type: core.ParamTypeInt,
			Min: 1, Max: 100, Default: 10},
		{Key: "spawnPerTick", Label: "Spawn per tick", Group: "Colony", Type: core.ParamTypeInt,
			Min: 0, Max: 100, Default: 2,
			Description: "ants hatched by each nest cell per tick"},
		{Key: "lookAhead", Label: "Look ahead", Group: "Colony", Type: core.ParamTypeInt,
			Min: 1, Max: 10, Default: 2,
			Description: "cells sampled along each heading"},
		{Key: "evaporation", Label: "Evaporation", Group: "Pheromone", Type: core.ParamTypeFloat,
			Min: 0, Max: 1, Default: 0.05, Step: 0.01},
		{Key: "deposit", Label: "Deposit", Group: "Pheromone", Type: core.ParamTypeFloat,
			Min: 0, Max: 1000, Default: 5, Step: 1},
		{Key: "maxPheromone", Label: "Max pheromone", Group: "Pheromone", Type: core.ParamTypeFloat,
			Min: 1, Max: 10000, Default: 100, Step: 10},
	}
}

// Ant is one forager. Orientation is the last hop taken; the zero value has
// no preferred heading.
type Ant struct {
	Orientation grid.Direction
	HasFood     bool
}

// Foraging runs an ant colony between nest and food cells. Ants live in a
// side table keyed by cell index; pheromone levels are cell properties.
type Foraging struct {
	core.Base
	ants map[int][]Ant
}

// New returns a Foraging rule bound to g.
func New(g *grid.Grid, seed int64) *Foraging {
	return &Foraging{
		Base: core.NewBase(core.KindAnt, States, g, seed, params()...),
		ants: make(map[int][]Ant),
	}
}

// Reset reseeds the rule and removes every ant.
func (f *Foraging) Reset(seed int64) {
	f.Base.Reset(seed)
	f.ants = make(map[int][]Ant)
}

// AddAnt places a at (row, col). It reports false when the cell is an
// obstacle or already full.
func (f *Foraging) AddAnt(row, col int, a Ant) bool {
	c := f.Grid().Cell(row, col)
	if c.State() == Obstacle || len(f.ants[c.Index()]) >= f.Params().Int("antsPerCell") {
		return false
	}
	f.ants[c.Index()] = append(f.ants[c.Index()], a)
	return true
}

// AntsAt returns a copy of the ants in (row, col).
func (f *Foraging) AntsAt(row, col int) []Ant {
	return append([]Ant(nil), f.ants[f.Grid().Index(row, col)]...)
}

// Population returns the number of live ants.
func (f *Foraging) Population() int {
	n := 0
	for _, list := range f.ants {
		n += len(list)
	}
	return n
}

type deposit struct{ home, food float64 }

// Step hatches ants, lets every ant forage and move once, then evaporates
// and refreshes the trails.
func (f *Foraging) Step() {
	f.spawn()

	g := f.Grid()
	occupancy := make(map[int]int, len(f.ants))
	for idx, list := range f.ants {
		occupancy[idx] = len(list)
	}
	deposits := make(map[int]deposit)
	next := make(map[int][]Ant, len(f.ants))

	for _, idx := range f.occupied() {
		c := g.At(idx)
		for _, a := range f.ants[idx] {
			a = f.forage(c, a, deposits)
			dst, dir, ok := f.choose(c, a, occupancy)
			if !ok {
				a.Orientation = a.Orientation.Reverse()
				next[idx] = append(next[idx], a)
				continue
			}
			occupancy[idx]--
			occupancy[dst.Index()]++
			a.Orientation = dir
			next[dst.Index()] = append(next[dst.Index()], a)
		}
	}
	f.ants = next

	f.refresh(deposits)
	f.Commit()
}

func (f *Foraging) occupied() []int {
	out := make([]int, 0, len(f.ants))
	for idx, list := range f.ants {
		if len(list) > 0 {
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}

func (f *Foraging) spawn() {
	p := f.Params()
	limit := p.Int("maxAnts")
	perCell := p.Int("antsPerCell")
	perTick := p.Int("spawnPerTick")
	total := f.Population()
	f.Grid().Each(func(c *grid.Cell) {
		if c.State() != Nest {
			return
		}
		for n := 0; n < perTick && total < limit && len(f.ants[c.Index()]) < perCell; n++ {
			f.ants[c.Index()] = append(f.ants[c.Index()], Ant{})
			total++
		}
	})
}

// forage switches an ant between searching and returning, and records the
// trail it leaves on c: returning ants mark the way to food, searching ants
// the way home.
func (f *Foraging) forage(c *grid.Cell, a Ant, deposits map[int]deposit) Ant {
	switch {
	case !a.HasFood && c.State() == Food:
		a.HasFood = true
		a.Orientation = a.Orientation.Reverse()
	case a.HasFood && c.State() == Nest:
		a.HasFood = false
		a.Orientation = a.Orientation.Reverse()
	}
	amount := f.Params().Float("deposit")
	d := deposits[c.Index()]
	if a.HasFood {
		d.food += amount
	} else {
		d.home += amount
	}
	deposits[c.Index()] = d
	return a
}

// choose draws the next hop for a. Each open heading is weighted by the
// pheromone seen along a look-ahead ray and doubled when it keeps the ant
// moving forward.
func (f *Foraging) choose(c *grid.Cell, a Ant, occupancy map[int]int) (*grid.Cell, grid.Direction, bool) {
	g := f.Grid()
	p := f.Params()
	perCell := p.Int("antsPerCell")
	steps := p.Int("lookAhead")
	maxP := p.Float("maxPheromone")

	key, goal := PropFood, Food
	if a.HasFood {
		key, goal = PropHome, Nest
	}

	var (
		cells   []*grid.Cell
		dirs    []grid.Direction
		weights []float64
		total   float64
	)
	for _, dir := range g.DefaultRawDirections(c.Row, c.Col) {
		ray := g.Raycast(c.Row, c.Col, dir, steps)
		if len(ray) == 0 {
			continue
		}
		first := ray[0].Cell
		if first.State() == Obstacle || occupancy[first.Index()] >= perCell {
			continue
		}
		score := 0.0
		for i, step := range ray {
			if step.Cell.State() == Obstacle {
				break
			}
			if step.Cell.State() == goal {
				score += maxP / float64(i+1)
				break
			}
			score += step.Cell.Property(key) / float64(i+1)
		}
		w := 1 + score
		if a.Orientation.IsZero() || dot(dir, a.Orientation) > 0 {
			w *= 2
		}
		cells = append(cells, first)
		dirs = append(dirs, dir)
		weights = append(weights, w)
		total += w
	}
	if len(cells) == 0 {
		return nil, grid.Direction{}, false
	}
	r := f.RNG().Float64() * total
	for i, w := range weights {
		if r < w {
			return cells[i], dirs[i], true
		}
		r -= w
	}
	last := len(cells) - 1
	return cells[last], dirs[last], true
}

func dot(a, b grid.Direction) int { return a.DY*b.DY + a.DX*b.DX }

// refresh evaporates both trails on every cell, adds this tick's deposits and
// pins nest and food cells at full strength.
func (f *Foraging) refresh(deposits map[int]deposit) {
	p := f.Params()
	keep := 1 - p.Float("evaporation")
	maxP := p.Float("maxPheromone")

	f.Grid().Each(func(c *grid.Cell) {
		d := deposits[c.Index()]
		home := c.Property(PropHome)*keep + d.home
		food := c.Property(PropFood)*keep + d.food
		switch c.State() {
		case Nest:
			home = maxP
		case Food:
			food = maxP
		}
		setLevel(c, PropHome, min(home, maxP))
		setLevel(c, PropFood, min(food, maxP))
		setLevel(c, PropAnts, float64(len(f.ants[c.Index()])))
	})
}

func setLevel(c *grid.Cell, key string, v float64) {
	if v < pheromoneFloor {
		if c.HasProperty(key) {
			c.ClearProperty(key)
		}
		return
	}
	c.SetProperty(key, v)
}

func init() {
	core.Register(core.KindAnt, States, func(g *grid.Grid, seed int64) core.Logic {
		return New(g, seed)
	})
}
