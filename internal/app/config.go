package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/integrii/flaggy"

	"cellsociety/internal/core"
	"cellsociety/internal/grid"
	"cellsociety/internal/layout"
)

// Config holds the runtime options shared by the GUI and terminal front ends.
type Config struct {
	Kind   string
	Layout string
	Rows   int
	Cols   int
	Fill   float64

	Shape    string
	Topology string
	Edge     string
	Radius   int

	Seed    int64
	TPS     int
	Steps   int
	Workers int
	Params  []string

	Scale    int
	HUDWidth int
	NoColor  bool
}

// NewConfig returns the default configuration.
func NewConfig() Config {
	return Config{
		Rows:     48,
		Cols:     64,
		Fill:     30,
		Shape:    "square",
		Topology: "moore",
		Edge:     "base",
		Radius:   2,
		Seed:     1,
		TPS:      10,
		Workers:  1,
		Scale:    8,
		HUDWidth: 260,
	}
}

// Bind registers the configuration flags on p.
func (c *Config) Bind(p *flaggy.Parser) {
	p.String(&c.Kind, "k", "kind", "Rule to run ("+kindList()+"); defaults to the layout's kind, then life")
	p.String(&c.Layout, "l", "layout", "JSON layout file; a random layout is used when empty")
	p.Int(&c.Rows, "", "rows", "Rows of a random layout")
	p.Int(&c.Cols, "", "cols", "Columns of a random layout")
	p.Float64(&c.Fill, "", "fill", "Percent of cells given to each non-default state in a random layout")
	p.String(&c.Shape, "", "shape", "Cell shape: square, hex or tri")
	p.String(&c.Topology, "", "topology", "Neighborhood: moore, vonneumann, extendedmoore")
	p.String(&c.Edge, "", "edge", "Edge policy: base, toroidal or mirror")
	p.Int(&c.Radius, "", "radius", "Radius of the extended Moore neighborhood")
	p.Int64(&c.Seed, "s", "seed", "Random seed")
	p.Int(&c.TPS, "t", "tps", "Simulation ticks per second")
	p.Int(&c.Steps, "n", "steps", "Stop after this many ticks; 0 runs until interrupted")
	p.Int(&c.Workers, "w", "workers", "Goroutines used to evaluate rows")
	p.StringSlice(&c.Params, "p", "param", "Rule parameter as key=value (repeatable)")
	p.Int(&c.Scale, "", "scale", "Pixels per cell in the window")
	p.Int(&c.HUDWidth, "", "hud", "Width of the parameter panel in pixels")
	p.Bool(&c.NoColor, "", "no-color", "Disable colors in terminal output")
}

func kindList() string {
	names := make([]string, 0, len(core.Kinds()))
	for _, k := range core.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// GridOptions parses the geometry flags.
func (c Config) GridOptions() (grid.Options, error) {
	opts := grid.DefaultOptions()
	var err error
	if opts.Shape, err = grid.ParseShape(c.Shape); err != nil {
		return opts, err
	}
	if opts.Topology, err = grid.ParseTopology(c.Topology); err != nil {
		return opts, err
	}
	if opts.Edge, err = grid.ParseEdge(c.Edge); err != nil {
		return opts, err
	}
	opts.Radius = c.Radius
	return opts, nil
}

// ParamMap splits the key=value parameter flags.
func (c Config) ParamMap() (map[string]string, error) {
	out := make(map[string]string, len(c.Params))
	for _, kv := range c.Params {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %q is not key=value", core.ErrInvalidParameter, kv)
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out, nil
}

type workerSetter interface {
	SetWorkers(n int)
}

// Build creates the rule described by c. src supplies a JSON layout; when it
// is nil a random layout is generated. The initial records are returned so
// callers can restore them on reset. Layout parameters apply first and flag
// parameters override them.
func (c Config) Build(src io.Reader) (core.Logic, [][]grid.Record, error) {
	var l layout.Layout
	if src != nil {
		var err error
		if l, err = layout.Decode(src); err != nil {
			return nil, nil, err
		}
		if c.Kind == "" {
			c.Kind = l.Kind
		}
	}
	if c.Kind == "" {
		c.Kind = string(core.KindLife)
	}

	kind, err := core.ParseKind(c.Kind)
	if err != nil {
		return nil, nil, err
	}
	states, err := core.States(kind)
	if err != nil {
		return nil, nil, err
	}
	if src == nil {
		l = layout.Random(c.Rows, c.Cols, states, c.Fill)
	}
	if l.States > states.Len() {
		return nil, nil, fmt.Errorf("%w: layout declares %d states, %s has %d",
			layout.ErrInvalidStates, l.States, kind, states.Len())
	}

	opts, err := c.GridOptions()
	if err != nil {
		return nil, nil, err
	}
	raw, err := l.Build(core.NewRNG(c.Seed))
	if err != nil {
		return nil, nil, err
	}
	logic, err := core.New(kind, raw, opts, c.Seed)
	if err != nil {
		return nil, nil, err
	}

	flags, err := c.ParamMap()
	if err != nil {
		return nil, nil, err
	}
	params := make(map[string]string, len(l.Params)+len(flags))
	for k, v := range l.Params {
		params[k] = v
	}
	for k, v := range flags {
		params[k] = v
	}
	if err := logic.FromMap(params); err != nil {
		return nil, nil, err
	}
	if ws, ok := logic.(workerSetter); ok {
		ws.SetWorkers(c.Workers)
	}
	return logic, raw, nil
}
