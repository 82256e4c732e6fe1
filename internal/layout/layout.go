// Package layout describes initial grid contents and expands them into the
// records a grid is built from.
package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"cellsociety/internal/core"
	"cellsociety/internal/grid"
)

var (
	// ErrInvalidStates reports a state code outside the declared range.
	ErrInvalidStates = errors.New("layout: invalid state")
	// ErrOverCapacity reports counts or percentages that do not fit the grid.
	ErrOverCapacity = errors.New("layout: over capacity")
	// ErrMalformed reports a layout whose shape is inconsistent.
	ErrMalformed = errors.New("layout: malformed")
)

// Layout is an initial state. Exactly one of Cells, Counts or Percentages
// describes the contents; state 0 fills whatever Counts and Percentages
// leave over.
type Layout struct {
	Rows   int `json:"rows"`
	Cols   int `json:"cols"`
	States int `json:"states"`

	// Cells lists every state code in row-major rows.
	Cells [][]int `json:"cells,omitempty"`
	// Properties optionally seeds per-cell properties, aligned with Cells.
	Properties [][]map[string]float64 `json:"properties,omitempty"`
	// Counts places an exact number of cells per state code at random.
	Counts map[int]int `json:"counts,omitempty"`
	// Percentages places a share of the grid per state code at random.
	Percentages map[int]float64 `json:"percentages,omitempty"`

	// Kind optionally names the rule the layout was written for.
	Kind string `json:"kind,omitempty"`
	// Params optionally carries flag-style parameter overrides.
	Params map[string]string `json:"params,omitempty"`
}

// Decode reads a JSON layout from r and validates it.
func Decode(r io.Reader) (Layout, error) {
	var l Layout
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(l.Cells) > 0 {
		if l.Rows == 0 {
			l.Rows = len(l.Cells)
		}
		if l.Cols == 0 {
			l.Cols = len(l.Cells[0])
		}
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks the layout against its own dimensions and state count.
func (l Layout) Validate() error {
	if l.Rows < 0 || l.Cols < 0 || l.States < 1 {
		return fmt.Errorf("%w: rows=%d cols=%d states=%d", ErrMalformed, l.Rows, l.Cols, l.States)
	}
	forms := 0
	for _, set := range []bool{l.Cells != nil, l.Counts != nil, l.Percentages != nil} {
		if set {
			forms++
		}
	}
	if forms > 1 {
		return fmt.Errorf("%w: cells, counts and percentages are exclusive", ErrMalformed)
	}

	switch {
	case l.Cells != nil:
		if len(l.Cells) != l.Rows {
			return fmt.Errorf("%w: %d rows listed, %d declared", ErrMalformed, len(l.Cells), l.Rows)
		}
		for r, row := range l.Cells {
			if len(row) != l.Cols {
				return fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformed, r, len(row), l.Cols)
			}
			for c, code := range row {
				if code < 0 || code >= l.States {
					return fmt.Errorf("%w: cell (%d,%d) has state %d of %d", ErrInvalidStates, r, c, code, l.States)
				}
			}
		}
		if l.Properties != nil && len(l.Properties) != l.Rows {
			return fmt.Errorf("%w: properties rows do not match cells", ErrMalformed)
		}
	case l.Counts != nil:
		total := 0
		for code, n := range l.Counts {
			if code < 0 || code >= l.States {
				return fmt.Errorf("%w: count for state %d of %d", ErrInvalidStates, code, l.States)
			}
			if n < 0 {
				return fmt.Errorf("%w: negative count %d for state %d", ErrMalformed, n, code)
			}
			total += n
		}
		if total > l.Rows*l.Cols {
			return fmt.Errorf("%w: %d cells requested, %d available", ErrOverCapacity, total, l.Rows*l.Cols)
		}
	case l.Percentages != nil:
		total := 0.0
		for code, pct := range l.Percentages {
			if code < 0 || code >= l.States {
				return fmt.Errorf("%w: percentage for state %d of %d", ErrInvalidStates, code, l.States)
			}
			if pct < 0 {
				return fmt.Errorf("%w: negative percentage %g for state %d", ErrMalformed, pct, code)
			}
			total += pct
		}
		if total > 100+1e-9 {
			return fmt.Errorf("%w: percentages sum to %g", ErrOverCapacity, total)
		}
	}
	return nil
}

// Build expands the layout into construction records. Random placements
// draw from rng.
func (l Layout) Build(rng *core.RNG) ([][]grid.Record, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if l.Cells != nil {
		raw := make([][]grid.Record, l.Rows)
		for r, row := range l.Cells {
			raw[r] = make([]grid.Record, len(row))
			for c, code := range row {
				raw[r][c] = grid.Record{State: code}
				if l.Properties != nil && c < len(l.Properties[r]) && len(l.Properties[r][c]) > 0 {
					raw[r][c].Properties = l.Properties[r][c]
				}
			}
		}
		return raw, nil
	}

	counts := l.Counts
	if l.Percentages != nil {
		counts = l.percentCounts()
	}
	return scatter(l.Rows, l.Cols, l.States, counts, rng), nil
}

// percentCounts converts percentages into cell counts, rounding down.
func (l Layout) percentCounts() map[int]int {
	area := l.Rows * l.Cols
	out := make(map[int]int, len(l.Percentages))
	for code, pct := range l.Percentages {
		out[code] = int(pct * float64(area) / 100)
	}
	return out
}

func scatter(rows, cols, states int, counts map[int]int, rng *core.RNG) [][]grid.Record {
	codes := make([]int, 0, rows*cols)
	for code := 1; code < states; code++ {
		for i := 0; i < counts[code]; i++ {
			codes = append(codes, code)
		}
	}
	for len(codes) < rows*cols {
		codes = append(codes, 0)
	}
	rng.Shuffle(len(codes), func(i, j int) { codes[i], codes[j] = codes[j], codes[i] })

	raw := make([][]grid.Record, rows)
	for r := range raw {
		raw[r] = make([]grid.Record, cols)
		for c := range raw[r] {
			raw[r][c] = grid.Record{State: codes[r*cols+c]}
		}
	}
	return raw
}

// Random returns a layout that fills a rows x cols grid with each non-zero
// state of states at the given percentage.
func Random(rows, cols int, states grid.StateSet, pct float64) Layout {
	l := Layout{Rows: rows, Cols: cols, States: states.Len(), Percentages: map[int]float64{}}
	if n := states.Len() - 1; n > 0 && pct > 0 {
		share := min(pct, 100/float64(n))
		for code := 1; code <= n; code++ {
			l.Percentages[code] = share
		}
	}
	return l
}
