package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/integrii/flaggy"

	"cellsociety/internal/core"
	"cellsociety/internal/grid"
	"cellsociety/internal/layout"
	_ "cellsociety/internal/sims/fire"
	_ "cellsociety/internal/sims/life"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	p := flaggy.NewParser("ca")
	cfg.Bind(p)
	args := []string{"--kind", "fire", "--rows", "5", "--cols", "7", "--edge", "toroidal",
		"-p", "probCatch=0.8", "-p", "burnTicks=3", "--seed", "42", "--no-color"}
	if err := p.ParseArgs(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Kind != "fire" || cfg.Rows != 5 || cfg.Cols != 7 || cfg.Seed != 42 || !cfg.NoColor {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.Params) != 2 {
		t.Fatalf("expected two params, got %v", cfg.Params)
	}
	if cfg.Shape != "square" || cfg.TPS != 10 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestGridOptions(t *testing.T) {
	cfg := NewConfig()
	cfg.Shape, cfg.Topology, cfg.Edge, cfg.Radius = "hex", "vonneumann", "mirror", 3
	opts, err := cfg.GridOptions()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Shape != grid.Hex || opts.Topology != grid.VonNeumann || opts.Edge != grid.Mirror || opts.Radius != 3 {
		t.Fatalf("unexpected options %+v", opts)
	}
	cfg.Edge = "klein"
	if _, err := cfg.GridOptions(); err == nil {
		t.Fatalf("expected error for unknown edge")
	}
}

func TestParamMap(t *testing.T) {
	cfg := NewConfig()
	cfg.Params = []string{"probCatch = 0.25", "program.hopper=MOVE"}
	m, err := cfg.ParamMap()
	if err != nil {
		t.Fatalf("param map: %v", err)
	}
	if m["probCatch"] != "0.25" || m["program.hopper"] != "MOVE" {
		t.Fatalf("unexpected map %v", m)
	}
	cfg.Params = []string{"probCatch"}
	if _, err := cfg.ParamMap(); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

const fireLayout = `{
	"kind": "fire",
	"states": 3,
	"cells": [[1, 1, 1], [1, 2, 1], [1, 1, 1]],
	"params": {"probCatch": "0.1", "burnTicks": "2"}
}`

func TestBuildFromLayout(t *testing.T) {
	cfg := NewConfig()
	cfg.Params = []string{"probCatch=1"}
	logic, raw, err := cfg.Build(strings.NewReader(fireLayout))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if logic.Kind() != core.KindFire {
		t.Fatalf("expected layout kind fire, got %s", logic.Kind())
	}
	if got := logic.Grid().Rows(); got != 3 || len(raw) != 3 {
		t.Fatalf("unexpected size rows=%d raw=%d", got, len(raw))
	}
	catch, _ := logic.FloatParameter("probCatch")
	burn, _ := logic.FloatParameter("burnTicks")
	if catch != 1 || burn != 2 {
		t.Fatalf("flags should override layout params: probCatch=%g burnTicks=%g", catch, burn)
	}
}

func TestBuildRandom(t *testing.T) {
	cfg := NewConfig()
	cfg.Rows, cfg.Cols, cfg.Fill = 10, 10, 25
	logic, _, err := cfg.Build(nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if logic.Kind() != core.KindLife {
		t.Fatalf("expected life, got %s", logic.Kind())
	}
	if got := logic.Grid().Counts()[1]; got != 25 {
		t.Fatalf("expected 25 live cells, got %d", got)
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	cfg := NewConfig()
	cfg.Kind = "volcano"
	if _, _, err := cfg.Build(nil); !errors.Is(err, core.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}

	cfg = NewConfig()
	cfg.Kind = "life"
	if _, _, err := cfg.Build(strings.NewReader(fireLayout)); !errors.Is(err, layout.ErrInvalidStates) {
		t.Fatalf("expected ErrInvalidStates for a 3-state layout on life, got %v", err)
	}

	cfg = NewConfig()
	cfg.Kind = "fire"
	cfg.Params = []string{"probCatch=2"}
	if _, _, err := cfg.Build(nil); !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestHeadlessFrameAndRun(t *testing.T) {
	cfg := NewConfig()
	cfg.Rows, cfg.Cols, cfg.NoColor, cfg.TPS = 4, 4, true, 1000
	logic, _, err := cfg.Build(nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	h := NewHeadless(logic, cfg)

	var b strings.Builder
	if err := h.Frame(&b); err != nil {
		t.Fatalf("frame: %v", err)
	}
	if !strings.Contains(b.String(), "tick 0") {
		t.Fatalf("frame missing status line:\n%s", b.String())
	}

	if err := h.Run(context.Background(), io.Discard, 3); err != nil {
		t.Fatalf("run: %v", err)
	}
	if h.Ticks() != 3 {
		t.Fatalf("expected 3 ticks, got %d", h.Ticks())
	}
}
