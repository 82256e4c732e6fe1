package grid

import (
	"errors"
	"fmt"
	"strings"
)

// Shape selects the cell geometry.
type Shape int

const (
	Square Shape = iota
	Hex
	Tri
)

// Topology selects which nearby cells count as adjacent.
type Topology int

const (
	Moore Topology = iota
	VonNeumann
	ExtendedMoore
	Custom
)

// Edge selects how coordinates beyond the grid are treated.
type Edge int

const (
	// Base clips at the grid edge.
	Base Edge = iota
	// Toroidal wraps rows and columns.
	Toroidal
	// Mirror reflects a coordinate back across the edge it crossed.
	Mirror
)

// ErrInvalidOptions reports an unusable shape/topology/edge combination.
var ErrInvalidOptions = errors.New("grid: invalid options")

// Options configures the neighborhood of a grid.
type Options struct {
	Shape    Shape
	Topology Topology
	Edge     Edge

	// Radius is the reach of ExtendedMoore.
	Radius int
	// Offsets lists the one-hop offsets of a Custom topology.
	Offsets []Direction
}

// DefaultOptions returns a finite square Moore neighborhood.
func DefaultOptions() Options {
	return Options{Shape: Square, Topology: Moore, Edge: Base, Radius: 2}
}

func (o Options) validate() error {
	switch {
	case o.Shape < Square || o.Shape > Tri:
		return fmt.Errorf("%w: shape %d", ErrInvalidOptions, o.Shape)
	case o.Topology < Moore || o.Topology > Custom:
		return fmt.Errorf("%w: topology %d", ErrInvalidOptions, o.Topology)
	case o.Edge < Base || o.Edge > Mirror:
		return fmt.Errorf("%w: edge %d", ErrInvalidOptions, o.Edge)
	case o.Topology == ExtendedMoore && o.Radius < 1:
		return fmt.Errorf("%w: extended moore radius %d", ErrInvalidOptions, o.Radius)
	case o.Topology == Custom && len(o.Offsets) == 0:
		return fmt.Errorf("%w: custom topology without offsets", ErrInvalidOptions)
	}
	for _, d := range o.Offsets {
		if d.IsZero() {
			return fmt.Errorf("%w: custom offset %s", ErrInvalidOptions, d)
		}
	}
	return nil
}

var (
	shapeNames    = []string{"square", "hex", "tri"}
	topologyNames = []string{"moore", "vonneumann", "extendedmoore", "custom"}
	edgeNames     = []string{"base", "toroidal", "mirror"}
)

func (s Shape) String() string    { return enumName(shapeNames, int(s)) }
func (t Topology) String() string { return enumName(topologyNames, int(t)) }
func (e Edge) String() string     { return enumName(edgeNames, int(e)) }

// ParseShape accepts names such as "square", "hex" or "tri".
func ParseShape(s string) (Shape, error) {
	i, err := parseEnum(shapeNames, "shape", s)
	return Shape(i), err
}

// ParseTopology accepts names such as "moore" or "vonneumann".
func ParseTopology(s string) (Topology, error) {
	i, err := parseEnum(topologyNames, "topology", s)
	return Topology(i), err
}

// ParseEdge accepts names such as "base", "toroidal" or "mirror".
func ParseEdge(s string) (Edge, error) {
	i, err := parseEnum(edgeNames, "edge", s)
	return Edge(i), err
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

func parseEnum(names []string, what, s string) (int, error) {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
	for i, n := range names {
		if n == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q", ErrInvalidOptions, what, s)
}
