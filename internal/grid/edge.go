package grid

// resolve maps a possibly out-of-range coordinate onto the grid according to
// the edge policy. ok is false when Base clips the coordinate away.
func (e Edge) resolve(row, col, rows, cols int) (int, int, bool) {
	if rows <= 0 || cols <= 0 {
		return 0, 0, false
	}
	switch e {
	case Toroidal:
		return wrap(row, rows), wrap(col, cols), true
	case Mirror:
		return reflect(row, rows), reflect(col, cols), true
	default:
		if row < 0 || row >= rows || col < 0 || col >= cols {
			return row, col, false
		}
		return row, col, true
	}
}

func wrap(v, n int) int {
	return (v%n + n) % n
}

// reflect folds v back into [0, n) without repeating the edge cell, so -1
// becomes 1 and n becomes n-2.
func reflect(v, n int) int {
	if n <= 1 {
		return 0
	}
	period := 2 * (n - 1)
	v = wrap(v, period)
	if v >= n {
		v = period - v
	}
	return v
}
