package ant

import (
	"math"
	"testing"

	"cellsociety/internal/grid"
	"cellsociety/internal/simtest"
)

var legend = map[rune]int{'.': int(Empty), 'N': int(Nest), 'F': int(Food), '#': int(Obstacle)}

func newForaging(t *testing.T, rows []string, cfg map[string]string) *Foraging {
	t.Helper()
	f := New(simtest.Grid(t, States, grid.DefaultOptions(), rows, legend), 4)
	if err := f.Params().Load(cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return f
}

func TestNestSpawnsUpToLimit(t *testing.T) {
	f := newForaging(t, []string{"N.."}, map[string]string{"spawnPerTick": "2", "maxAnts": "3"})
	f.Step()
	if got := f.Population(); got != 2 {
		t.Fatalf("expected 2 ants after first tick, got %d", got)
	}
	f.Step()
	f.Step()
	if got := f.Population(); got != 3 {
		t.Fatalf("expected population capped at 3, got %d", got)
	}
}

func TestPheromoneEvaporates(t *testing.T) {
	raw := simtest.Records([]string{"."}, legend)
	raw[0][0].Properties = map[string]float64{PropFood: 10}
	g, err := grid.New(raw, grid.NewFactory(States), grid.DefaultOptions())
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	f := New(g, 4)
	if err := f.SetFloatParameter("evaporation", 0.5); err != nil {
		t.Fatalf("SetFloatParameter: %v", err)
	}
	f.Step()
	if got := g.Cell(0, 0).Property(PropFood); math.Abs(got-5) > 1e-9 {
		t.Fatalf("expected food pheromone 5, got %f", got)
	}
	for i := 0; i < 20; i++ {
		f.Step()
	}
	if g.Cell(0, 0).HasProperty(PropFood) {
		t.Fatal("expected the trail to fade out entirely")
	}
}

func TestAntPicksUpFoodAndMoves(t *testing.T) {
	f := newForaging(t, []string{"F."}, nil)
	if !f.AddAnt(0, 0, Ant{}) {
		t.Fatal("AddAnt rejected an empty food cell")
	}
	f.Step()
	ants := f.AntsAt(0, 1)
	if len(ants) != 1 || !ants[0].HasFood {
		t.Fatalf("expected one loaded ant at (0,1), got %+v", ants)
	}
	if ants[0].Orientation != (grid.Direction{DY: 0, DX: 1}) {
		t.Fatalf("expected orientation east, got %s", ants[0].Orientation)
	}
	if got := f.Grid().Cell(0, 1).Property(PropAnts); got != 1 {
		t.Fatalf("expected ants property 1, got %f", got)
	}
	if got := f.Grid().Cell(0, 0).Property(PropFood); got != 100 {
		t.Fatalf("expected food cell pinned at max pheromone, got %f", got)
	}
}

func TestObstaclesAreNeverEntered(t *testing.T) {
	f := newForaging(t, []string{"N#"}, map[string]string{"spawnPerTick": "1", "maxAnts": "5"})
	if f.AddAnt(0, 1, Ant{}) {
		t.Fatal("AddAnt accepted an obstacle")
	}
	for i := 0; i < 6; i++ {
		f.Step()
	}
	if got := len(f.AntsAt(0, 0)); got != 5 {
		t.Fatalf("expected all 5 ants at the nest, got %d", got)
	}
	if got := len(f.AntsAt(0, 1)); got != 0 {
		t.Fatalf("expected no ants on the obstacle, got %d", got)
	}
}

func TestCellCapacityHolds(t *testing.T) {
	f := newForaging(t, []string{
		"N..",
		"...",
		"..F",
	}, map[string]string{"spawnPerTick": "3", "maxAnts": "20", "antsPerCell": "2"})
	for i := 0; i < 15; i++ {
		f.Step()
		f.Grid().Each(func(c *grid.Cell) {
			if n := len(f.AntsAt(c.Row, c.Col)); n > 2 {
				t.Fatalf("tick %d: cell (%d,%d) holds %d ants", i, c.Row, c.Col, n)
			}
		})
	}
	if f.Population() == 0 {
		t.Fatal("expected a live colony")
	}
}

func TestResetClearsColony(t *testing.T) {
	f := newForaging(t, []string{"N."}, nil)
	f.Step()
	f.Reset(9)
	if f.Population() != 0 || f.Tick() != 0 {
		t.Fatalf("expected empty colony at tick 0, got %d ants at tick %d", f.Population(), f.Tick())
	}
}
