package core

import (
	"errors"
	"fmt"
	"sort"

	"cellsociety/internal/grid"
)

// Kind names a rule family.
type Kind string

const (
	KindLife        Kind = "life"
	KindFire        Kind = "fire"
	KindPercolation Kind = "percolation"
	KindSegregation Kind = "segregation"
	KindWaTor       Kind = "wator"
	KindAnt         Kind = "ant"
	KindSugarscape  Kind = "sugarscape"
	KindBacteria    Kind = "bacteria"
	KindFallingSand Kind = "fallingsand"
	KindDarwin      Kind = "darwin"
)

var kinds = []Kind{
	KindLife, KindFire, KindPercolation, KindSegregation, KindWaTor,
	KindAnt, KindSugarscape, KindBacteria, KindFallingSand, KindDarwin,
}

// ErrUnknownKind reports a rule kind outside the closed set or one whose
// package was not linked in.
var ErrUnknownKind = errors.New("unknown rule kind")

// Kinds lists every rule kind in declaration order.
func Kinds() []Kind { return append([]Kind(nil), kinds...) }

// ParseKind validates a configuration-supplied identifier.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Logic is the contract every rule satisfies. Step advances the bound grid by
// exactly one generation and commits it before returning.
type Logic interface {
	Kind() Kind
	Grid() *grid.Grid
	States() grid.StateSet
	Reset(seed int64)
	Step()

	FromMap(cfg map[string]string) error
	Parameters() ParameterSnapshot
	ParameterControls() []ParameterControl
	FloatParameterSetter
	StringParameterSetter
}

// Factory constructs a Logic bound to g.
type Factory func(g *grid.Grid, seed int64) Logic

type registration struct {
	states  grid.StateSet
	factory Factory
}

var sims = map[Kind]registration{}

// Register adds the factory for kind. Kinds outside the closed set panic.
func Register(kind Kind, states grid.StateSet, f Factory) {
	if _, err := ParseKind(string(kind)); err != nil {
		panic(err)
	}
	if f == nil {
		return
	}
	sims[kind] = registration{states: states, factory: f}
}

// Registered lists the kinds with a linked factory, sorted by name.
func Registered() []Kind {
	out := make([]Kind, 0, len(sims))
	for k := range sims {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// States returns the state set declared by kind.
func States(kind Kind) (grid.StateSet, error) {
	reg, ok := sims[kind]
	if !ok {
		return grid.StateSet{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return reg.states, nil
}

// New builds the grid for kind from raw records and binds a fresh rule to it.
func New(kind Kind, raw [][]grid.Record, opts grid.Options, seed int64) (Logic, error) {
	reg, ok := sims[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	g, err := grid.New(raw, grid.NewFactory(reg.states), opts)
	if err != nil {
		return nil, fmt.Errorf("build %s grid: %w", kind, err)
	}
	return reg.factory(g, seed), nil
}
