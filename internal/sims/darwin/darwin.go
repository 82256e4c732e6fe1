package darwin

import (
	"fmt"
	"math"

	"cellsociety/internal/core"
	"cellsociety/internal/grid"
)

const (
	Empty grid.State = iota
	Food
	Hopper
	Flytrap
	Rover
)

// States lists the Darwin cell states. Every state but Empty is a species.
var States = grid.StateSet{Names: []string{"empty", "food", "hopper", "flytrap", "rover"}, Default: Empty}

// Creature properties. They move with the creature.
const (
	PropIndex       = "instructionIndex"
	PropOrientation = "orientation"
	PropHeading     = "heading"
)

var creatureProps = []string{PropIndex, PropOrientation, PropHeading}

// DefaultPrograms are the built-in species programs.
var DefaultPrograms = map[grid.State]string{
	Food:   "LEFT 90\nGO 1\n",
	Hopper: "MOVE\nGO 1\n",
	Flytrap: `IFENEMY 4
LEFT 90
GO 1
INFECT
GO 1
`,
	Rover: `IFENEMY 10
IFEMPTY 8
IFRANDOM 6
LEFT 90
GO 1
RIGHT 90
GO 1
MOVE
GO 1
INFECT
GO 1
`,
}

func programKey(st grid.State) string { return "program." + States.Name(st) }

func validateProgram(src string) error {
	_, err := ParseProgram(src)
	return err
}

func params() []core.ParamSpec {
	specs := []core.ParamSpec{
		{Key: "infectionDuration", Label: "Infection ticks", Group: "Creatures", Type: core.ParamTypeInt,
			Min: 0, Max: 1000, Default: 10,
			Description: "ticks before an infected creature reverts; 0 keeps it converted"},
		{Key: "randomChance", Label: "IFRANDOM chance", Group: "Creatures", Type: core.ParamTypeFloat,
			Min: 0, Max: 1, Default: 0.5, Step: 0.05},
	}
	for st := Food; st <= Rover; st++ {
		specs = append(specs, core.ParamSpec{
			Key: programKey(st), Label: States.Name(st) + " program", Group: "Programs",
			Type: core.ParamTypeString, DefaultString: DefaultPrograms[st], Validate: validateProgram,
		})
	}
	return specs
}

// Darwin runs creatures that execute small species programs.
type Darwin struct {
	core.Base
	cache map[string]Program
}

// New returns a Darwin rule bound to g.
func New(g *grid.Grid, seed int64) *Darwin {
	return &Darwin{
		Base:  core.NewBase(core.KindDarwin, States, g, seed, params()...),
		cache: make(map[string]Program),
	}
}

// SetProgram replaces the program of species st.
func (d *Darwin) SetProgram(st grid.State, src string) error {
	if st == Empty || !States.Valid(int(st)) {
		return fmt.Errorf("%w: %d is not a species", ErrBadProgram, st)
	}
	if _, err := ParseProgram(src); err != nil {
		return err
	}
	return d.SetStringParameter(programKey(st), src)
}

// Program returns the current program of species st.
func (d *Darwin) Program(st grid.State) Program {
	if st == Empty {
		return nil
	}
	src := d.Params().String(programKey(st))
	if p, ok := d.cache[src]; ok {
		return p
	}
	p, err := ParseProgram(src)
	if err != nil {
		// Validated on write; only reachable for an unknown state.
		return nil
	}
	d.cache[src] = p
	return p
}

type actionKind int

const (
	actStay actionKind = iota
	actInfect
	actMove
)

type plan struct {
	cell        *grid.Cell
	kind        actionKind
	target      *grid.Cell
	index       int
	orientation float64
	heading     float64
}

// Step decides every creature's action against the committed generation and
// applies them in three passes: infections, then moves, then everything
// else. A creature infected earlier in the tick loses its action, and a move
// into a cell already claimed this tick is dropped. Infection timers count
// down last.
func (d *Darwin) Step() {
	g := d.Grid()
	var plans []plan
	g.Each(func(c *grid.Cell) {
		if c.State() != Empty {
			plans = append(plans, d.decide(c))
		}
	})

	infected := make(map[int]bool)
	for _, pass := range []actionKind{actInfect, actMove, actStay} {
		for _, p := range plans {
			if p.kind != pass || p.cell.NextState() != p.cell.State() {
				continue
			}
			switch p.kind {
			case actInfect:
				d.infect(p, infected)
			case actMove:
				d.move(p)
			default:
				writeCreature(p.cell, p)
			}
		}
	}
	d.countdown(infected)
	d.Commit()
}

func (d *Darwin) decide(c *grid.Cell) plan {
	prog := d.Program(c.State())
	p := plan{cell: c, orientation: c.Property(PropOrientation), heading: math.NaN()}
	if c.HasProperty(PropHeading) {
		p.heading = c.Property(PropHeading)
	}
	idx := int(c.Property(PropIndex))
	if idx < 1 || idx > len(prog) {
		idx = 1
	}
	p.index = idx
	if len(prog) == 0 {
		return p
	}

	next := func(i int) int { return i%len(prog) + 1 }
	for budget := 2 * len(prog); budget > 0; budget-- {
		in := prog[idx-1]
		dir, _ := d.facing(c, p.orientation, p.heading)
		target := d.ahead(c, dir)
		var jump bool
		switch in.Op {
		case OpMove:
			if dest := d.open(c, dir, max(in.Arg, 1)); dest != nil {
				p.kind, p.target = actMove, dest
			}
		case OpLeft:
			p.orientation = normalize(p.orientation - float64(in.Arg))
		case OpRight:
			p.orientation = normalize(p.orientation + float64(in.Arg))
		case OpInfect:
			if enemy(c, target) {
				p.kind, p.target = actInfect, target
			}
		case OpIfEmpty:
			jump = target != nil && target.State() == Empty
		case OpIfWall:
			jump = target == nil
		case OpIfSame:
			jump = target != nil && target.State() == c.State()
		case OpIfEnemy:
			jump = enemy(c, target)
		case OpIfRandom:
			jump = d.RNG().Chance(d.Params().Float("randomChance"))
		case OpGo:
			jump = true
		}
		if in.Op.Action() {
			p.index = next(idx)
			break
		}
		if jump {
			idx = in.Arg
		} else {
			idx = next(idx)
		}
		p.index = idx
	}
	_, p.heading = d.facing(c, p.orientation, p.heading)
	return p
}

func enemy(c, target *grid.Cell) bool {
	return target != nil && target.State() != Empty && target.State() != c.State()
}

// cardinal are the headings of a square grid creature: up, right, down, left.
var cardinal = []grid.Direction{{DY: -1, DX: 0}, {DY: 0, DX: 1}, {DY: 1, DX: 0}, {DY: 0, DX: -1}}

// axes lists the headings a creature at c can face. Square grids round to the
// four edge directions; hex and tri use every canonical direction of the cell.
func (d *Darwin) axes(c *grid.Cell) []grid.Direction {
	g := d.Grid()
	if g.Options().Shape == grid.Square {
		return cardinal
	}
	return g.DefaultRawDirections(c.Row, c.Col)
}

// facing resolves orientation to the nearest axis at c and returns its raw
// direction and bearing. An exact tie between two axes keeps the previously
// held one when it is among them, otherwise the first in axis order.
func (d *Darwin) facing(c *grid.Cell, orientation, held float64) (grid.Direction, float64) {
	g := d.Grid()
	dirs := d.axes(c)
	best, bestDiff, bestBearing := 0, math.Inf(1), 0.0
	for i, dir := range dirs {
		b := g.Bearing(c.Row, c.Col, dir)
		diff := angleBetween(b, orientation)
		switch {
		case diff < bestDiff-angleEps:
			best, bestDiff, bestBearing = i, diff, b
		case diff <= bestDiff+angleEps && !math.IsNaN(held) && angleBetween(b, held) < angleEps:
			best, bestBearing = i, b
		}
	}
	return dirs[best], bestBearing
}

// ahead returns the cell one hop along dir, or nil at a wall.
func (d *Darwin) ahead(c *grid.Cell, dir grid.Direction) *grid.Cell {
	ray := d.Grid().Raycast(c.Row, c.Col, dir, 1)
	if len(ray) == 0 {
		return nil
	}
	return ray[0].Cell
}

// open returns the farthest cell of the empty run up to n hops along dir. The
// run ends at a wall or the first occupied cell; nil means nothing is free.
func (d *Darwin) open(c *grid.Cell, dir grid.Direction, n int) *grid.Cell {
	var last *grid.Cell
	for _, step := range d.Grid().Raycast(c.Row, c.Col, dir, n) {
		if step.Cell.State() != Empty {
			break
		}
		last = step.Cell
	}
	return last
}

const angleEps = 1e-6

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func angleBetween(a, b float64) float64 {
	diff := math.Abs(normalize(a) - normalize(b))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

func writeCreature(c *grid.Cell, p plan) {
	c.SetProperty(PropIndex, float64(p.index))
	c.SetProperty(PropOrientation, p.orientation)
	c.SetProperty(PropHeading, p.heading)
}

func (d *Darwin) infect(p plan, infected map[int]bool) {
	t := p.target
	species := p.cell.State()
	if t.NextState() != t.State() || t.State() == Empty {
		writeCreature(p.cell, p)
		return
	}
	t.SetNextState(species)
	t.SetProperty(PropIndex, 1)
	if duration := d.Params().Int("infectionDuration"); duration > 0 {
		front, ok := t.Front()
		switch {
		case !ok:
			t.Push(grid.QueueEntry{State: t.State(), Ticks: duration, Properties: t.Properties()})
		case front.State == species:
			t.Pop()
		default:
			front.Ticks = duration
		}
		infected[t.Index()] = true
	}
	writeCreature(p.cell, p)
}

func (d *Darwin) move(p plan) {
	t := p.target
	if t.State() != Empty || t.NextState() != Empty {
		writeCreature(p.cell, p)
		return
	}
	t.SetNextState(p.cell.State())
	writeCreature(t, p)
	p.cell.SetNextState(Empty)
	for _, k := range creatureProps {
		p.cell.ClearProperty(k)
	}
	p.cell.MoveQueueTo(t)
}

// countdown ages the infection timers and restores creatures whose timer ran
// out to the species and program position they held when infected.
func (d *Darwin) countdown(infected map[int]bool) {
	d.Grid().Each(func(c *grid.Cell) {
		if infected[c.Index()] {
			return
		}
		front, ok := c.Front()
		if !ok {
			return
		}
		front.Ticks--
		if front.Ticks > 0 {
			return
		}
		e, _ := c.Pop()
		c.SetNextState(e.State)
		for k, v := range e.Properties {
			c.SetProperty(k, v)
		}
	})
}

func init() {
	core.Register(core.KindDarwin, States, func(g *grid.Grid, seed int64) core.Logic {
		return New(g, seed)
	})
}
