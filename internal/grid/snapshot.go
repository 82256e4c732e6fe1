package grid

// CellView is a read-only copy of one cell for renderers.
type CellView struct {
	State      State
	Properties map[string]float64
}

// Snapshot is a row-major copy of the committed generation.
type Snapshot struct {
	Rows, Cols int
	Cells      [][]CellView
}

// Snapshot copies the committed states and properties of every cell.
func (g *Grid) Snapshot() Snapshot {
	s := Snapshot{Rows: g.rows, Cols: g.cols, Cells: make([][]CellView, g.rows)}
	for r := 0; r < g.rows; r++ {
		line := make([]CellView, g.cols)
		for c := 0; c < g.cols; c++ {
			cell := &g.cells[r*g.cols+c]
			line[c] = CellView{State: cell.current, Properties: cell.Properties()}
		}
		s.Cells[r] = line
	}
	return s
}

// Codes flattens the snapshot states into a row-major byte buffer.
func (s Snapshot) Codes() []uint8 {
	out := make([]uint8, 0, s.Rows*s.Cols)
	for _, line := range s.Cells {
		for _, v := range line {
			out = append(out, uint8(v.State))
		}
	}
	return out
}

// Field flattens one property into a row-major buffer.
func (s Snapshot) Field(key string) []float32 {
	out := make([]float32, 0, s.Rows*s.Cols)
	for _, line := range s.Cells {
		for _, v := range line {
			out = append(out, float32(v.Properties[key]))
		}
	}
	return out
}

// Records converts the snapshot back into construction input.
func (s Snapshot) Records() [][]Record {
	out := make([][]Record, s.Rows)
	for r, line := range s.Cells {
		out[r] = make([]Record, len(line))
		for c, v := range line {
			out[r][c] = Record{State: int(v.State), Properties: v.Properties}
		}
	}
	return out
}
