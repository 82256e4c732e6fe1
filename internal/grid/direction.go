package grid

import "fmt"

// Direction is a (row, col) offset relative to some cell. It is used both as a
// one-hop neighbor offset and as a cumulative offset along a ray.
type Direction struct {
	DY int
	DX int
}

// Add returns the component-wise sum of two directions.
func (d Direction) Add(o Direction) Direction {
	return Direction{DY: d.DY + o.DY, DX: d.DX + o.DX}
}

// Reverse points the direction the other way.
func (d Direction) Reverse() Direction { return Direction{DY: -d.DY, DX: -d.DX} }

// IsZero reports whether both components are zero.
func (d Direction) IsZero() bool { return d.DY == 0 && d.DX == 0 }

// Scale multiplies both components by n.
func (d Direction) Scale(n int) Direction { return Direction{DY: d.DY * n, DX: d.DX * n} }

func (d Direction) String() string { return fmt.Sprintf("(%d,%d)", d.DY, d.DX) }

func containsDirection(dirs []Direction, d Direction) bool {
	for _, cand := range dirs {
		if cand == d {
			return true
		}
	}
	return false
}

func indexOfDirection(dirs []Direction, d Direction) int {
	for i, cand := range dirs {
		if cand == d {
			return i
		}
	}
	return -1
}
