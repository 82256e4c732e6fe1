package grid

import (
	"fmt"
	"math"
)

// RayStep is one entry of a raycast: the cell reached and its cumulative
// offset from the ray's origin.
type RayStep struct {
	Offset Direction
	Cell   *Cell
}

// Ray is the ordered result of a raycast.
type Ray []RayStep

// Lookup returns the cell recorded at offset.
func (r Ray) Lookup(offset Direction) (*Cell, bool) {
	for _, s := range r {
		if s.Offset == offset {
			return s.Cell, true
		}
	}
	return nil, false
}

// Last returns the final cell of the ray.
func (r Ray) Last() (*Cell, bool) {
	if len(r) == 0 {
		return nil, false
	}
	return r[len(r)-1].Cell, true
}

// Raycaster walks straight logical lines for one grid shape.
type Raycaster interface {
	// DefaultRawDirections lists the canonical one-hop offsets at (row, col).
	DefaultRawDirections(row, col int) []Direction
	// Walker fixes the heading given by raw at (row, col) and returns a
	// function yielding the raw offset to take from each successive cell.
	// It panics when raw is not canonical at (row, col).
	Walker(row, col int, raw Direction) func(row, col int) Direction
}

// NewRaycaster returns the strategy for shape.
func NewRaycaster(shape Shape) Raycaster {
	switch shape {
	case Hex:
		return hexRaycaster{}
	case Tri:
		return triRaycaster{}
	default:
		return squareRaycaster{}
	}
}

func mustCanonical(dirs []Direction, raw Direction, shape Shape, row, col int) int {
	i := indexOfDirection(dirs, raw)
	if i < 0 {
		panic(fmt.Sprintf("grid: raw direction %s is not a %s direction at (%d,%d)", raw, shape, row, col))
	}
	return i
}

type squareRaycaster struct{}

func (squareRaycaster) DefaultRawDirections(int, int) []Direction { return mooreOffsets }

func (squareRaycaster) Walker(row, col int, raw Direction) func(int, int) Direction {
	mustCanonical(mooreOffsets, raw, Square, row, col)
	return func(int, int) Direction { return raw }
}

// hexRaycaster keeps the logical heading (up, up-right, ...) and translates
// it into the offset valid for each column parity along the way.
type hexRaycaster struct{}

func (hexRaycaster) DefaultRawDirections(_, col int) []Direction { return hexOffsets(col) }

func (hexRaycaster) Walker(row, col int, raw Direction) func(int, int) Direction {
	heading := mustCanonical(hexOffsets(col), raw, Hex, row, col)
	return func(_, c int) Direction { return hexOffsets(c)[heading] }
}

// triRaycaster keeps the raw offset of the first hop as the logical heading.
// Hops two columns across to the next row exist on one parity only; on the
// other they narrow to one column. Row headings stay in their row.
type triRaycaster struct{}

// triHeadings maps a heading to the offset taken from an up-pointing and a
// down-pointing cell.
var triHeadings = map[Direction][2]Direction{
	{-1, -2}: {{-1, -1}, {-1, -2}},
	{-1, -1}: {{-1, -1}, {-1, -1}},
	{-1, 0}:  {{-1, 0}, {-1, 0}},
	{-1, 1}:  {{-1, 1}, {-1, 1}},
	{-1, 2}:  {{-1, 1}, {-1, 2}},
	{0, -2}:  {{0, -2}, {0, -2}},
	{0, -1}:  {{0, -1}, {0, -1}},
	{0, 1}:   {{0, 1}, {0, 1}},
	{0, 2}:   {{0, 2}, {0, 2}},
	{1, -2}:  {{1, -2}, {1, -1}},
	{1, -1}:  {{1, -1}, {1, -1}},
	{1, 0}:   {{1, 0}, {1, 0}},
	{1, 1}:   {{1, 1}, {1, 1}},
	{1, 2}:   {{1, 2}, {1, 1}},
}

func (triRaycaster) DefaultRawDirections(row, col int) []Direction {
	return triMooreOffsets(row, col)
}

func (triRaycaster) Walker(row, col int, raw Direction) func(int, int) Direction {
	mustCanonical(triMooreOffsets(row, col), raw, Tri, row, col)
	heading := triHeadings[raw]
	return func(r, c int) Direction {
		if triPointsUp(r, c) {
			return heading[0]
		}
		return heading[1]
	}
}

var triHeight = math.Sqrt(3) / 2

func triCenter(row, col int) (float64, float64) {
	x := float64(col) * 0.5
	y := float64(row) * triHeight
	if triPointsUp(row, col) {
		return x, y + 2*triHeight/3
	}
	return x, y + triHeight/3
}

// Raycast walks up to steps hops from (row, col) in the logical direction
// given by raw, which must be one of DefaultRawDirections(row, col). Each
// visited cell is keyed by its cumulative offset from the origin. Toroidal
// grids wrap; Base and Mirror grids stop at the first hop leaving the grid.
func (g *Grid) Raycast(row, col int, raw Direction, steps int) Ray {
	g.Cell(row, col)
	walk := g.caster.Walker(row, col, raw)
	var ray Ray
	offset := Direction{}
	r, c := row, col
	for i := 0; i < steps; i++ {
		d := walk(r, c)
		nr, nc := r+d.DY, c+d.DX
		if g.opts.Edge == Toroidal {
			nr, nc = wrap(nr, g.rows), wrap(nc, g.cols)
		} else if !g.InBounds(nr, nc) {
			break
		}
		offset = offset.Add(d)
		r, c = nr, nc
		ray = append(ray, RayStep{Offset: offset, Cell: g.Cell(r, c)})
	}
	return ray
}

// DefaultRawDirections lists the canonical raycast directions at (row, col).
func (g *Grid) DefaultRawDirections(row, col int) []Direction {
	return g.caster.DefaultRawDirections(row, col)
}

var hexRowHeight = math.Sqrt(3)

func center(shape Shape, row, col int) (float64, float64) {
	switch shape {
	case Hex:
		y := float64(row) * hexRowHeight
		if wrap(col, 2) == 1 {
			y += hexRowHeight / 2
		}
		return float64(col) * 1.5, y
	case Tri:
		return triCenter(row, col)
	default:
		return float64(col), float64(row)
	}
}

// Bearing returns the compass bearing in degrees of the hop d taken from
// (row, col): 0 is up and angles grow clockwise, in [0, 360).
func (g *Grid) Bearing(row, col int, d Direction) float64 {
	x0, y0 := center(g.opts.Shape, row, col)
	x1, y1 := center(g.opts.Shape, row+d.DY, col+d.DX)
	deg := math.Atan2(x1-x0, y0-y1) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
