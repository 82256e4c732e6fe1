package grid

import "github.com/zyedidia/generic/mapset"

var (
	vonNeumannOffsets = []Direction{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}
	mooreOffsets      = []Direction{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}

	// Hex columns alternate; odd columns sit half a cell lower than even ones.
	// Both tables list up, up-right, down-right, down, down-left, up-left.
	hexEvenOffsets = []Direction{{-1, 0}, {-1, 1}, {0, 1}, {1, 0}, {0, -1}, {-1, -1}}
	hexOddOffsets  = []Direction{{-1, 0}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}}

	// A triangle points up when (row+col) is even.
	triUpEdge   = []Direction{{0, -1}, {0, 1}, {1, 0}}
	triDownEdge = []Direction{{-1, 0}, {0, -1}, {0, 1}}
	triUpMoore  = []Direction{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -2}, {0, -1}, {0, 1}, {0, 2},
		{1, -2}, {1, -1}, {1, 0}, {1, 1}, {1, 2},
	}
	triDownMoore = []Direction{
		{-1, -2}, {-1, -1}, {-1, 0}, {-1, 1}, {-1, 2},
		{0, -2}, {0, -1}, {0, 1}, {0, 2},
		{1, -1}, {1, 0}, {1, 1},
	}
)

func hexOffsets(col int) []Direction {
	if wrap(col, 2) == 1 {
		return hexOddOffsets
	}
	return hexEvenOffsets
}

func triPointsUp(row, col int) bool { return wrap(row+col, 2) == 0 }

func triMooreOffsets(row, col int) []Direction {
	if triPointsUp(row, col) {
		return triUpMoore
	}
	return triDownMoore
}

func triEdgeOffsets(row, col int) []Direction {
	if triPointsUp(row, col) {
		return triUpEdge
	}
	return triDownEdge
}

func squareRing(radius int) []Direction {
	out := make([]Direction, 0, (2*radius+1)*(2*radius+1)-1)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out = append(out, Direction{DY: dy, DX: dx})
		}
	}
	return out
}

// NeighborCalculator enumerates neighbors under one shape, topology and edge
// policy.
type NeighborCalculator struct {
	opts   Options
	square []Direction
}

// NewNeighborCalculator builds a calculator for opts.
func NewNeighborCalculator(opts Options) *NeighborCalculator {
	nc := &NeighborCalculator{opts: opts}
	if opts.Shape == Square {
		switch opts.Topology {
		case VonNeumann:
			nc.square = vonNeumannOffsets
		case ExtendedMoore:
			nc.square = squareRing(opts.Radius)
		default:
			nc.square = mooreOffsets
		}
	}
	return nc
}

// Options returns the configuration the calculator was built with.
func (nc *NeighborCalculator) Options() Options { return nc.opts }

// Offsets returns the one-hop offsets for the cell at (row, col). Hex and Tri
// results depend on cell parity. For Hex and Tri ExtendedMoore the base hop is
// returned and a neighbor link spans Radius such hops.
func (nc *NeighborCalculator) Offsets(row, col int) []Direction {
	if nc.opts.Topology == Custom {
		return nc.opts.Offsets
	}
	switch nc.opts.Shape {
	case Hex:
		return hexOffsets(col)
	case Tri:
		if nc.opts.Topology == VonNeumann {
			return triEdgeOffsets(row, col)
		}
		return triMooreOffsets(row, col)
	default:
		return nc.square
	}
}

func (nc *NeighborCalculator) stride() int {
	if nc.opts.Topology == ExtendedMoore && nc.opts.Shape != Square {
		return nc.opts.Radius
	}
	return 1
}

// links computes the neighbor links of (row, col) on a rows x cols grid.
func (nc *NeighborCalculator) links(rows, cols, row, col int) []Link {
	self := row*cols + col
	if nc.stride() == 1 {
		offsets := nc.Offsets(row, col)
		out := make([]Link, 0, len(offsets))
		for _, d := range offsets {
			r, c, ok := nc.opts.Edge.resolve(row+d.DY, col+d.DX, rows, cols)
			if !ok {
				continue
			}
			idx := r*cols + c
			if idx == self {
				continue
			}
			out = append(out, Link{Dir: d, Index: idx})
		}
		return out
	}

	type node struct {
		row, col int
		off      Direction
	}
	seen := map[int]bool{self: true}
	frontier := []node{{row: row, col: col}}
	var out []Link
	for depth := 0; depth < nc.stride() && len(frontier) > 0; depth++ {
		var next []node
		for _, n := range frontier {
			for _, d := range nc.Offsets(n.row, n.col) {
				r, c, ok := nc.opts.Edge.resolve(n.row+d.DY, n.col+d.DX, rows, cols)
				if !ok {
					continue
				}
				idx := r*cols + c
				if seen[idx] {
					continue
				}
				seen[idx] = true
				off := n.off.Add(d)
				out = append(out, Link{Dir: off, Index: idx})
				next = append(next, node{row: r, col: c, off: off})
			}
		}
		frontier = next
	}
	return out
}

// Neighbors returns every cell within steps hops of (row, col), excluding the
// origin. The origin must be inside the grid.
func (nc *NeighborCalculator) Neighbors(g *Grid, row, col, steps int) mapset.Set[*Cell] {
	set := mapset.New[*Cell]()
	for _, v := range nc.walk(g, row, col, steps) {
		set.Put(g.At(v.index))
	}
	return set
}

// NeighborsAtDistance returns only the cells exactly steps hops away.
func (nc *NeighborCalculator) NeighborsAtDistance(g *Grid, row, col, steps int) mapset.Set[*Cell] {
	set := mapset.New[*Cell]()
	for _, v := range nc.walk(g, row, col, steps) {
		if v.depth == steps {
			set.Put(g.At(v.index))
		}
	}
	return set
}

type visit struct {
	index int
	depth int
}

// walk runs a breadth-first search over the grid's precomputed links so each
// cell is reported once at its shortest hop distance.
func (nc *NeighborCalculator) walk(g *Grid, row, col, steps int) []visit {
	origin := g.Cell(row, col)
	if steps <= 0 {
		return nil
	}
	seen := map[int]bool{origin.index: true}
	frontier := []int{origin.index}
	var out []visit
	for depth := 1; depth <= steps && len(frontier) > 0; depth++ {
		var next []int
		for _, idx := range frontier {
			for _, l := range g.cells[idx].links {
				if seen[l.Index] {
					continue
				}
				seen[l.Index] = true
				out = append(out, visit{index: l.Index, depth: depth})
				next = append(next, l.Index)
			}
		}
		frontier = next
	}
	return out
}
