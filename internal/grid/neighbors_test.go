package grid

import "testing"

func TestSquareMooreBaseCounts(t *testing.T) {
	g := mustGrid(t, uniform(4, 5, 0), DefaultOptions())
	cases := []struct {
		row, col, want int
	}{
		{0, 0, 3}, {0, 4, 3}, {3, 0, 3}, {3, 4, 3},
		{0, 2, 5}, {2, 0, 5}, {3, 1, 5},
		{1, 1, 8}, {2, 3, 8},
	}
	for _, tc := range cases {
		if got := len(g.Neighbors(g.Cell(tc.row, tc.col))); got != tc.want {
			t.Fatalf("(%d,%d): expected %d neighbors, got %d", tc.row, tc.col, tc.want, got)
		}
		if got := g.Calculator().Neighbors(g, tc.row, tc.col, 1).Size(); got != tc.want {
			t.Fatalf("(%d,%d): calculator reported %d neighbors, want %d", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestToroidalCountsAreUniform(t *testing.T) {
	for _, topo := range []struct {
		topology Topology
		want     int
	}{{Moore, 8}, {VonNeumann, 4}} {
		opts := DefaultOptions()
		opts.Topology = topo.topology
		opts.Edge = Toroidal
		g := mustGrid(t, uniform(4, 4, 0), opts)
		g.Each(func(c *Cell) {
			if got := len(c.Links()); got != topo.want {
				t.Fatalf("%s: cell (%d,%d) has %d neighbors, want %d", topo.topology, c.Row, c.Col, got, topo.want)
			}
		})
	}
}

func TestVonNeumannIsOrthogonal(t *testing.T) {
	opts := DefaultOptions()
	opts.Topology = VonNeumann
	g := mustGrid(t, uniform(3, 3, 0), opts)
	m := g.NeighborMap(g.Cell(1, 1))
	if len(m) != 4 {
		t.Fatalf("expected 4 neighbors, got %d", len(m))
	}
	for d := range m {
		if d.DY != 0 && d.DX != 0 {
			t.Fatalf("unexpected diagonal neighbor %s", d)
		}
	}
}

func TestMirrorReflectsAcrossEdge(t *testing.T) {
	opts := DefaultOptions()
	opts.Edge = Mirror
	g := mustGrid(t, uniform(3, 3, 0), opts)
	corner := g.Cell(0, 0)
	if got := len(corner.Links()); got != 8 {
		t.Fatalf("expected 8 mirrored links, got %d", got)
	}
	up, ok := g.Neighbor(corner, Direction{DY: -1, DX: 0})
	if !ok || up.Row != 1 || up.Col != 0 {
		t.Fatalf("expected up neighbor to reflect to (1,0), got %+v", up)
	}
	if got := g.Calculator().Neighbors(g, 0, 0, 1).Size(); got != 3 {
		t.Fatalf("expected 3 distinct mirrored neighbors, got %d", got)
	}
}

func TestRingsAndRadius(t *testing.T) {
	g := mustGrid(t, uniform(7, 7, 0), DefaultOptions())
	calc := g.Calculator()
	if got := calc.Neighbors(g, 3, 3, 2).Size(); got != 24 {
		t.Fatalf("expected 24 cells within 2 hops, got %d", got)
	}
	if got := calc.NeighborsAtDistance(g, 3, 3, 2).Size(); got != 16 {
		t.Fatalf("expected 16 cells at distance 2, got %d", got)
	}
	if got := calc.Neighbors(g, 3, 3, 0).Size(); got != 0 {
		t.Fatalf("expected no neighbors at 0 steps, got %d", got)
	}

	opts := DefaultOptions()
	opts.Topology = ExtendedMoore
	opts.Radius = 2
	ext := mustGrid(t, uniform(7, 7, 0), opts)
	if got := len(ext.Cell(3, 3).Links()); got != 24 {
		t.Fatalf("expected 24 extended moore links, got %d", got)
	}
}

func TestHexNeighborsDependOnColumnParity(t *testing.T) {
	opts := DefaultOptions()
	opts.Shape = Hex
	g := mustGrid(t, uniform(5, 6, 0), opts)

	even := g.NeighborMap(g.Cell(2, 2))
	if len(even) != 6 {
		t.Fatalf("expected 6 hex neighbors, got %d", len(even))
	}
	if c := even[Direction{DY: -1, DX: 1}]; c == nil || c.Row != 1 || c.Col != 3 {
		t.Fatal("even column up-right should be (row-1, col+1)")
	}
	odd := g.NeighborMap(g.Cell(2, 3))
	if c := odd[Direction{DY: 1, DX: 1}]; c == nil || c.Row != 3 || c.Col != 4 {
		t.Fatal("odd column down-right should be (row+1, col+1)")
	}
	if _, ok := odd[Direction{DY: -1, DX: 1}]; ok {
		t.Fatal("odd column must not use the even up-right offset")
	}

	opts.Topology = ExtendedMoore
	opts.Radius = 2
	ext := mustGrid(t, uniform(7, 7, 0), opts)
	if got := len(ext.Cell(3, 3).Links()); got != 18 {
		t.Fatalf("expected 18 hex cells within radius 2, got %d", got)
	}
}

func TestTriNeighbors(t *testing.T) {
	opts := DefaultOptions()
	opts.Shape = Tri
	g := mustGrid(t, uniform(5, 8, 0), opts)
	up := g.Cell(2, 4)
	down := g.Cell(2, 3)
	if got := len(up.Links()); got != 12 {
		t.Fatalf("expected 12 moore neighbors for up triangle, got %d", got)
	}
	if got := len(down.Links()); got != 12 {
		t.Fatalf("expected 12 moore neighbors for down triangle, got %d", got)
	}
	if _, ok := g.Neighbor(up, Direction{DY: 1, DX: 2}); !ok {
		t.Fatal("up triangle should reach (row+1, col+2)")
	}
	if _, ok := g.Neighbor(down, Direction{DY: 1, DX: 2}); ok {
		t.Fatal("down triangle must not reach (row+1, col+2)")
	}

	opts.Topology = VonNeumann
	vn := mustGrid(t, uniform(5, 8, 0), opts)
	upMap := vn.NeighborMap(vn.Cell(2, 4))
	if len(upMap) != 3 || upMap[Direction{DY: 1, DX: 0}] == nil {
		t.Fatalf("up triangle edge neighbors should include below, got %v", upMap)
	}
	downMap := vn.NeighborMap(vn.Cell(2, 3))
	if len(downMap) != 3 || downMap[Direction{DY: -1, DX: 0}] == nil {
		t.Fatalf("down triangle edge neighbors should include above, got %v", downMap)
	}
}

func TestCustomOffsets(t *testing.T) {
	opts := DefaultOptions()
	opts.Topology = Custom
	opts.Offsets = []Direction{{DY: 0, DX: 2}, {DY: 2, DX: 0}}
	g := mustGrid(t, uniform(3, 3, 0), opts)
	if got := len(g.Cell(0, 0).Links()); got != 2 {
		t.Fatalf("expected 2 custom links, got %d", got)
	}
	if got := len(g.Cell(2, 2).Links()); got != 0 {
		t.Fatalf("expected no custom links at far corner, got %d", got)
	}
}

func TestNeighborsOutOfRangePanics(t *testing.T) {
	g := mustGrid(t, uniform(2, 2, 0), DefaultOptions())
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	g.Calculator().Neighbors(g, -1, 0, 1)
}
