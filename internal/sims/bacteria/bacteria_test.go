package bacteria

import (
	"testing"

	"cellsociety/internal/grid"
	"cellsociety/internal/simtest"
)

var legend = map[rune]int{'R': int(Rock), 'P': int(Paper), 'S': int(Scissors)}

func TestCycle(t *testing.T) {
	if Beats(Rock) != Paper || Beats(Paper) != Scissors || Beats(Scissors) != Rock {
		t.Fatal("expected paper > rock, scissors > paper, rock > scissors")
	}
}

func TestThresholdConvertsOutnumberedCell(t *testing.T) {
	g := simtest.Grid(t, States, grid.DefaultOptions(), []string{
		"PPP",
		"RRR",
		"RRR",
	}, legend)
	b := New(g, 1)
	b.Step()
	// Only the middle rock sees three papers.
	simtest.Expect(t, g, legend, []string{
		"PPP",
		"RPR",
		"RRR",
	})
}

func TestZeroThresholdFlipsEveryCell(t *testing.T) {
	g := simtest.Grid(t, States, grid.DefaultOptions(), []string{
		"RS",
		"PR",
	}, legend)
	b := New(g, 1)
	if err := b.SetFloatParameter("beatingThreshold", 0); err != nil {
		t.Fatalf("SetFloatParameter: %v", err)
	}
	b.Step()
	simtest.Expect(t, g, legend, []string{
		"PR",
		"SP",
	})
}
