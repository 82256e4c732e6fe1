package life

import (
	"fmt"
	"strconv"
	"strings"

	"cellsociety/internal/core"
	"cellsociety/internal/grid"
)

const (
	Dead grid.State = iota
	Alive
)

// States lists the Life cell states.
var States = grid.StateSet{Names: []string{"dead", "alive"}, Default: Dead}

func params() []core.ParamSpec {
	return []core.ParamSpec{
		{Key: "birth", Label: "Birth counts", Group: "Rule", Type: core.ParamTypeString,
			DefaultString: "3", Validate: validateCounts,
			Description: "neighbor counts that bring a dead cell to life, digits or comma separated"},
		{Key: "survive", Label: "Survival counts", Group: "Rule", Type: core.ParamTypeString,
			DefaultString: "23", Validate: validateCounts,
			Description: "neighbor counts that keep a live cell alive"},
	}
}

// Life implements outer-totalistic Life rules; the defaults give Conway's B3/S23.
type Life struct {
	core.Base
}

// New returns a Life rule bound to g.
func New(g *grid.Grid, seed int64) *Life {
	return &Life{Base: core.NewBase(core.KindLife, States, g, seed, params()...)}
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	birth, _ := parseCounts(l.Params().String("birth"))
	survive, _ := parseCounts(l.Params().String("survive"))
	g := l.Grid()
	l.StepCells(func(c *grid.Cell, _ *core.RNG) {
		n := g.CountNeighbors(c, Alive)
		if c.State() == Alive {
			if !survive[n] {
				c.SetNextState(Dead)
			}
			return
		}
		if birth[n] {
			c.SetNextState(Alive)
		}
	})
}

func validateCounts(s string) error {
	_, err := parseCounts(s)
	return err
}

// parseCounts accepts "23" style digit strings or comma separated counts for
// neighborhoods larger than nine cells.
func parseCounts(s string) (map[int]bool, error) {
	out := map[int]bool{}
	s = strings.TrimSpace(s)
	if s == "" {
		return out, nil
	}
	var fields []string
	if strings.Contains(s, ",") {
		fields = strings.Split(s, ",")
	} else {
		fields = strings.Split(s, "")
	}
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("bad neighbor count %q", f)
		}
		out[n] = true
	}
	return out, nil
}

func init() {
	core.Register(core.KindLife, States, func(g *grid.Grid, seed int64) core.Logic {
		return New(g, seed)
	})
}
