package wator

import (
	"testing"

	"cellsociety/internal/grid"
	"cellsociety/internal/simtest"
)

var legend = map[rune]int{'.': int(Open), 'S': int(Shark), 'f': int(Fish)}

func TestSharkEatsBeforeFishMoves(t *testing.T) {
	g := simtest.Grid(t, States, grid.DefaultOptions(), []string{"Sf."}, legend)
	w := New(g, 2)
	w.Step()
	simtest.Expect(t, g, legend, []string{".S."})
	shark := g.Cell(0, 1)
	// 5 initial, one spent moving, three gained from the fish.
	if got := shark.Property(propEnergy); got != 7 {
		t.Fatalf("expected shark energy 7, got %f", got)
	}
	if got := shark.Property(propBreed); got != 1 {
		t.Fatalf("expected shark breed 1, got %f", got)
	}
	if g.Cell(0, 0).HasProperty(propEnergy) {
		t.Fatal("vacated cell kept shark properties")
	}
}

func TestSharkStarves(t *testing.T) {
	raw := simtest.Records([]string{"S."}, legend)
	raw[0][0].Properties = map[string]float64{propEnergy: 1}
	g, err := grid.New(raw, grid.NewFactory(States), grid.DefaultOptions())
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	w := New(g, 2)
	w.Step()
	simtest.Expect(t, g, legend, []string{".."})
}

func TestFishBreedsWhenReady(t *testing.T) {
	raw := simtest.Records([]string{"f."}, legend)
	raw[0][0].Properties = map[string]float64{propBreed: 2}
	g, err := grid.New(raw, grid.NewFactory(States), grid.DefaultOptions())
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	w := New(g, 2)
	w.Step()
	simtest.Expect(t, g, legend, []string{"ff"})
	for col := 0; col < 2; col++ {
		if got := g.Cell(0, col).Property(propBreed); got != 0 {
			t.Fatalf("fish at col %d: breed %f, want 0", col, got)
		}
	}
}

func TestBlockedFishStays(t *testing.T) {
	g := simtest.Grid(t, States, grid.DefaultOptions(), []string{"ff"}, legend)
	w := New(g, 2)
	w.Step()
	simtest.Expect(t, g, legend, []string{"ff"})
	if got := g.Cell(0, 0).Property(propBreed); got != 1 {
		t.Fatalf("expected breed counter 1, got %f", got)
	}
}

func TestAnimalsNeverShareACell(t *testing.T) {
	rows := []string{
		"f.f.S",
		".S.f.",
		"f.f..",
		"..S.f",
	}
	opts := grid.DefaultOptions()
	opts.Edge = grid.Toroidal
	g := simtest.Grid(t, States, opts, rows, legend)
	w := New(g, 8)
	for i := 0; i < 20; i++ {
		w.Step()
		counts := g.Counts()
		if counts[Open]+counts[Shark]+counts[Fish] != 20 {
			t.Fatalf("tick %d: cell count changed: %v", i, counts)
		}
		g.Each(func(c *grid.Cell) {
			if c.State() == Open && (c.HasProperty(propEnergy) || c.HasProperty(propBreed)) {
				t.Fatalf("tick %d: open cell (%d,%d) kept animal properties", i, c.Row, c.Col)
			}
		})
	}
}
