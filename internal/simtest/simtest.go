// Package simtest builds small grids from ASCII art for rule tests.
package simtest

import (
	"testing"

	"cellsociety/internal/grid"
)

// Records converts rows of glyphs into construction records using legend.
// Unknown glyphs map to state 0.
func Records(rows []string, legend map[rune]int) [][]grid.Record {
	raw := make([][]grid.Record, len(rows))
	for r, line := range rows {
		runes := []rune(line)
		raw[r] = make([]grid.Record, len(runes))
		for c, ch := range runes {
			raw[r][c] = grid.Record{State: legend[ch]}
		}
	}
	return raw
}

// Render converts committed states back into glyph rows.
func Render(g *grid.Grid, legend map[rune]int) []string {
	glyphs := make(map[grid.State]rune, len(legend))
	for ch, code := range legend {
		glyphs[grid.State(code)] = ch
	}
	out := make([]string, g.Rows())
	for r := 0; r < g.Rows(); r++ {
		line := make([]rune, 0, g.Cols())
		g.Row(r, func(c *grid.Cell) {
			ch, ok := glyphs[c.State()]
			if !ok {
				ch = '?'
			}
			line = append(line, ch)
		})
		out[r] = string(line)
	}
	return out
}

// Grid builds a grid for states from glyph rows.
func Grid(t testing.TB, states grid.StateSet, opts grid.Options, rows []string, legend map[rune]int) *grid.Grid {
	t.Helper()
	g, err := grid.New(Records(rows, legend), grid.NewFactory(states), opts)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	return g
}

// Expect fails the test when the grid does not match want.
func Expect(t testing.TB, g *grid.Grid, legend map[rune]int, want []string) {
	t.Helper()
	got := Render(g, legend)
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %q, want %q\nfull grid:\n%v", i, got[i], want[i], got)
		}
	}
}
