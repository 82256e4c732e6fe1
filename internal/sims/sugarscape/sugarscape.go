package sugarscape

import (
	"cellsociety/internal/core"
	"cellsociety/internal/grid"
)

const (
	Patch grid.State = iota
	Agent
)

// States lists the Sugarscape cell states.
var States = grid.StateSet{Names: []string{"patch", "agent"}, Default: Patch}

// Patch properties stay with the cell; agent properties move with the agent.
const (
	PropSugar      = "sugar"
	PropMaxSugar   = "maxSugar"
	PropAgentSugar = "agentSugar"
	PropMetabolism = "metabolism"
	PropVision     = "vision"
)

var agentProps = []string{PropAgentSugar, PropMetabolism, PropVision}

func params() []core.ParamSpec {
	return []core.ParamSpec{
		{Key: "growBackRate", Label: "Grow back rate", Group: "Patches", Type: core.ParamTypeFloat,
			Min: 0, Max: 100, Default: 1, Step: 1},
		{Key: "growBackInterval", Label: "Grow back interval", Group: "Patches", Type: core.ParamTypeInt,
			Min: 1, Max: 100, Default: 1,
			Description: "ticks between regrowth steps"},
		{Key: "defaultMaxSugar", Label: "Patch capacity", Group: "Patches", Type: core.ParamTypeFloat,
			Min: 0, Max: 1000, Default: 4, Step: 1,
			Description: "capacity of patches loaded without maxSugar"},
		{Key: "initialSugar", Label: "Initial sugar", Group: "Agents", Type: core.ParamTypeFloat,
			Min: 0, Max: 1000, Default: 5, Step: 1,
			Description: "reserve of agents loaded without agentSugar"},
		{Key: "defaultMetabolism", Label: "Metabolism", Group: "Agents", Type: core.ParamTypeFloat,
			Min: 0, Max: 100, Default: 1, Step: 1},
		{Key: "defaultVision", Label: "Vision", Group: "Agents", Type: core.ParamTypeInt,
			Min: 1, Max: 50, Default: 1},
	}
}

// Sugarscape moves agents toward the richest visible patch.
type Sugarscape struct {
	core.Base
}

// New returns a Sugarscape rule bound to g.
func New(g *grid.Grid, seed int64) *Sugarscape {
	return &Sugarscape{Base: core.NewBase(core.KindSugarscape, States, g, seed, params()...)}
}

// Step moves agents in random order, each to the richest unclaimed patch
// within its vision along the grid's raycast headings. Ties go to the
// nearer patch, and staying put wins any tie. The agent harvests the patch,
// pays its metabolism and dies when its reserve runs out. Patches then grow
// back on the configured interval.
func (s *Sugarscape) Step() {
	g := s.Grid()
	var agents []*grid.Cell
	g.Each(func(c *grid.Cell) {
		if c.State() == Agent {
			agents = append(agents, c)
		}
	})
	s.RNG().Shuffle(len(agents), func(i, j int) { agents[i], agents[j] = agents[j], agents[i] })

	for _, c := range agents {
		s.moveAgent(c)
	}
	s.growBack()
	s.Commit()
}

func (s *Sugarscape) agentValue(c *grid.Cell, key, fallback string) float64 {
	if c.HasProperty(key) {
		return c.Property(key)
	}
	return s.Params().Float(fallback)
}

func (s *Sugarscape) moveAgent(c *grid.Cell) {
	g := s.Grid()
	reserve := s.agentValue(c, PropAgentSugar, "initialSugar")
	metabolism := s.agentValue(c, PropMetabolism, "defaultMetabolism")
	vision := int(s.agentValue(c, PropVision, "defaultVision"))

	best, bestSugar, bestDist := c, c.Property(PropSugar), 0
	for _, dir := range g.DefaultRawDirections(c.Row, c.Col) {
		for i, step := range g.Raycast(c.Row, c.Col, dir, vision) {
			p := step.Cell
			if p.State() != Patch || p.NextState() != Patch {
				continue
			}
			sugar := p.Property(PropSugar)
			if sugar > bestSugar || (sugar == bestSugar && i+1 < bestDist) {
				best, bestSugar, bestDist = p, sugar, i+1
			}
		}
	}

	reserve += bestSugar - metabolism
	best.SetProperty(PropSugar, 0)
	if best != c {
		best.SetNextState(Agent)
		c.SetNextState(Patch)
		for _, k := range agentProps {
			c.ClearProperty(k)
		}
	}
	if reserve <= 0 {
		best.SetNextState(Patch)
		for _, k := range agentProps {
			best.ClearProperty(k)
		}
		return
	}
	best.SetProperty(PropAgentSugar, reserve)
	best.SetProperty(PropMetabolism, metabolism)
	best.SetProperty(PropVision, float64(vision))
}

func (s *Sugarscape) growBack() {
	p := s.Params()
	if (s.Tick()+1)%p.Int("growBackInterval") != 0 {
		return
	}
	rate := p.Float("growBackRate")
	if rate == 0 {
		return
	}
	capDefault := p.Float("defaultMaxSugar")
	s.Grid().Each(func(c *grid.Cell) {
		limit := capDefault
		if c.HasProperty(PropMaxSugar) {
			limit = c.Property(PropMaxSugar)
		}
		sugar := c.NextProperty(PropSugar)
		if sugar >= limit {
			return
		}
		c.SetProperty(PropSugar, min(sugar+rate, limit))
	})
}

func init() {
	core.Register(core.KindSugarscape, States, func(g *grid.Grid, seed int64) core.Logic {
		return New(g, seed)
	})
}
