package segregation

import (
	"cellsociety/internal/core"
	"cellsociety/internal/grid"
)

const (
	Empty grid.State = iota
	AgentA
	AgentB
)

// States lists the Segregation cell states.
var States = grid.StateSet{Names: []string{"empty", "agentA", "agentB"}, Default: Empty}

func params() []core.ParamSpec {
	return []core.ParamSpec{
		{Key: "satisfaction", Label: "Satisfaction", Type: core.ParamTypeFloat,
			Min: 0, Max: 1, Default: 0.3, Step: 0.05,
			Description: "minimum share of like neighbors an agent accepts"},
		{Key: "radius", Label: "Neighborhood radius", Type: core.ParamTypeInt,
			Min: 1, Max: 5, Default: 1,
			Description: "hops of the grid's neighborhood an agent looks across"},
	}
}

// Segregation relocates dissatisfied agents to empty cells.
type Segregation struct {
	core.Base
}

// New returns a Segregation rule bound to g.
func New(g *grid.Grid, seed int64) *Segregation {
	return &Segregation{Base: core.NewBase(core.KindSegregation, States, g, seed, params()...)}
}

// Satisfied reports whether the agent in c accepts the cells within radius
// hops of it. Agents with no occupied neighbors are satisfied.
func (s *Segregation) Satisfied(c *grid.Cell) bool {
	if c.State() == Empty {
		return true
	}
	g := s.Grid()
	same, total := 0, 0
	g.Calculator().Neighbors(g, c.Row, c.Col, s.Params().Int("radius")).Each(func(n *grid.Cell) {
		switch n.State() {
		case Empty:
		case c.State():
			same++
			total++
		default:
			total++
		}
	})
	if total == 0 {
		return true
	}
	return float64(same)/float64(total) >= s.Params().Float("satisfaction")
}

// Step moves every dissatisfied agent into a cell that was empty at the start
// of the tick. Each empty cell takes at most one agent; agents left without a
// destination stay put.
func (s *Segregation) Step() {
	g := s.Grid()
	rng := s.RNG()

	var empties []*grid.Cell
	g.Each(func(c *grid.Cell) {
		if c.State() == Empty {
			empties = append(empties, c)
		}
	})
	rng.Shuffle(len(empties), func(i, j int) { empties[i], empties[j] = empties[j], empties[i] })

	g.Each(func(c *grid.Cell) {
		if c.State() == Empty || s.Satisfied(c) || len(empties) == 0 {
			return
		}
		dst := empties[len(empties)-1]
		empties = empties[:len(empties)-1]
		dst.SetNextState(c.State())
		c.SetNextState(Empty)
	})
	s.Commit()
}

func init() {
	core.Register(core.KindSegregation, States, func(g *grid.Grid, seed int64) core.Logic {
		return New(g, seed)
	})
}
