package render

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"cellsociety/internal/core"
	"cellsociety/internal/grid"
)

func TestFillPaletteRGBAClampsToLastColor(t *testing.T) {
	palette := []color.RGBA{{R: 1, G: 2, B: 3, A: 4}, {R: 9, G: 8, B: 7, A: 6}}
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{0, 1, 5}, palette)
	want := []byte{1, 2, 3, 4, 9, 8, 7, 6, 9, 8, 7, 6}
	if !bytes.Equal(buf, want) {
		t.Fatalf("got %v, want %v", buf, want)
	}

	fillPaletteRGBA(buf, []uint8{0, 1, 2}, nil)
	if !bytes.Equal(buf, make([]byte, 12)) {
		t.Fatalf("empty palette should clear the buffer, got %v", buf)
	}
}

func TestFillMaskRGBA(t *testing.T) {
	buf := make([]byte, 8)
	fillMaskRGBA(buf, []float32{0, 1}, color.RGBA{R: 200, G: 100, B: 0})
	if buf[3] != 0 {
		t.Fatalf("zero intensity should be transparent, alpha %d", buf[3])
	}
	if buf[4] != 200 || buf[5] != 100 || buf[7] != 160 {
		t.Fatalf("full intensity pixel: got %v", buf[4:])
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]float32{0, 2, 4, -1})
	want := []float32{0, 0.5, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
	if out := Normalize([]float32{0, 0}); out[0] != 0 || out[1] != 0 {
		t.Fatalf("all-zero field should stay zero, got %v", out)
	}
}

func TestPaletteCoversEveryKind(t *testing.T) {
	for _, k := range core.Kinds() {
		if len(palettes[k]) == 0 {
			t.Fatalf("no palette for %s", k)
		}
	}
	if got := Palette(core.KindLife, 5); len(got) != 5 {
		t.Fatalf("expected padding to 5 colors, got %d", len(got))
	}
}

func TestTerminalRenderPlain(t *testing.T) {
	states := grid.StateSet{Names: []string{"empty", "tree", "burning"}}
	g, err := grid.New([][]grid.Record{
		{{State: 0}, {State: 1}},
		{{State: 2}, {State: 1}},
	}, grid.NewFactory(states), grid.DefaultOptions())
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	term := NewTerminal(states, false)
	var out bytes.Buffer
	if err := term.Render(&out, g.Snapshot(), 3); err != nil {
		t.Fatalf("Render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", out.String())
	}
	if lines[0] != ".T" || lines[1] != "BT" {
		t.Fatalf("unexpected grid rows %q", lines[:2])
	}
	if lines[2] != "tick 3  empty=1  tree=2  burning=1" {
		t.Fatalf("unexpected status line %q", lines[2])
	}
}

func TestTerminalGlyphsAreUnique(t *testing.T) {
	states := grid.StateSet{Names: []string{"empty", "food", "hopper", "flytrap", "rover"}}
	term := NewTerminal(states, true)
	seen := map[rune]bool{}
	for st := range states.Names {
		ch := term.Glyph(grid.State(st))
		if seen[ch] {
			t.Fatalf("glyph %q reused for %s", ch, states.Names[st])
		}
		seen[ch] = true
	}
	if term.Glyph(grid.State(9)) != '?' {
		t.Fatal("expected '?' for an unknown state")
	}
}
