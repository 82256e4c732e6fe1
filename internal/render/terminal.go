package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/logrusorgru/aurora"

	"cellsociety/internal/grid"
)

var termColors = []aurora.Color{
	aurora.BlackFg, aurora.GreenFg, aurora.RedFg, aurora.YellowFg,
	aurora.BlueFg, aurora.MagentaFg, aurora.CyanFg, aurora.WhiteFg,
}

// Terminal draws snapshots as colored glyphs, one character per cell.
type Terminal struct {
	states grid.StateSet
	au     aurora.Aurora
	glyphs []rune
}

// NewTerminal returns a terminal renderer for states. Color escapes are
// emitted only when colors is true.
func NewTerminal(states grid.StateSet, colors bool) *Terminal {
	t := &Terminal{states: states, au: aurora.NewAurora(colors)}
	used := map[rune]bool{}
	for i, name := range states.Names {
		ch := glyphFor(i, name, used)
		used[ch] = true
		t.glyphs = append(t.glyphs, ch)
	}
	return t
}

// glyphFor picks the first unused letter of name, falling back to the code's
// last digit. State 0 is always '.'.
func glyphFor(code int, name string, used map[rune]bool) rune {
	if code == 0 {
		return '.'
	}
	for _, ch := range strings.ToUpper(name) {
		if ch >= 'A' && ch <= 'Z' && !used[ch] {
			return ch
		}
	}
	return rune('0' + code%10)
}

// Glyph returns the character drawn for st.
func (t *Terminal) Glyph(st grid.State) rune {
	if int(st) < 0 || int(st) >= len(t.glyphs) {
		return '?'
	}
	return t.glyphs[st]
}

// Render writes one frame: the grid rows, then a status line with the tick
// and per-state counts.
func (t *Terminal) Render(w io.Writer, snap grid.Snapshot, tick int) error {
	var b strings.Builder
	counts := map[grid.State]int{}
	for _, line := range snap.Cells {
		for _, v := range line {
			counts[v.State]++
			ch := string(t.Glyph(v.State))
			if v.State == 0 {
				b.WriteString(t.au.Faint(ch).String())
				continue
			}
			b.WriteString(t.au.Colorize(ch, termColors[int(v.State)%len(termColors)]).String())
		}
		b.WriteByte('\n')
	}
	b.WriteString(t.status(counts, tick))
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Terminal) status(counts map[grid.State]int, tick int) string {
	states := make([]grid.State, 0, len(counts))
	for st := range counts {
		states = append(states, st)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	parts := []string{t.au.Bold(fmt.Sprintf("tick %d", tick)).String()}
	for _, st := range states {
		parts = append(parts, fmt.Sprintf("%s=%d", t.states.Name(st), counts[st]))
	}
	return strings.Join(parts, "  ")
}
