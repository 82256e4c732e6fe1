package layout

import (
	"errors"
	"strings"
	"testing"

	"cellsociety/internal/core"
	"cellsociety/internal/grid"
)

func tally(raw [][]grid.Record) map[int]int {
	out := map[int]int{}
	for _, row := range raw {
		for _, rec := range row {
			out[rec.State]++
		}
	}
	return out
}

func TestDecodeExplicitCells(t *testing.T) {
	l, err := Decode(strings.NewReader(`{
		"states": 3,
		"cells": [[0, 1, 2], [2, 1, 0]],
		"properties": [[{}, {"sugar": 4}, {}], [{}, {}, {}]],
		"kind": "fire",
		"params": {"probCatch": "0.7"}
	}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if l.Rows != 2 || l.Cols != 3 {
		t.Fatalf("expected inferred 2x3, got %dx%d", l.Rows, l.Cols)
	}
	raw, err := l.Build(core.NewRNG(1))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if raw[1][0].State != 2 || raw[0][1].Properties["sugar"] != 4 {
		t.Fatalf("unexpected records: %+v", raw)
	}
	if raw[0][0].Properties != nil {
		t.Fatal("empty property maps should be dropped")
	}
	if l.Params["probCatch"] != "0.7" {
		t.Fatalf("params not decoded: %v", l.Params)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]struct {
		src  string
		want error
	}{
		"syntax":     {`{"rows": `, ErrMalformed},
		"unknown":    {`{"states": 2, "colour": 1}`, ErrMalformed},
		"jagged":     {`{"states": 2, "cells": [[0, 1], [1]]}`, ErrMalformed},
		"bad code":   {`{"states": 2, "cells": [[0, 5]]}`, ErrInvalidStates},
		"count code": {`{"rows": 2, "cols": 2, "states": 2, "counts": {"3": 1}}`, ErrInvalidStates},
		"too many":   {`{"rows": 2, "cols": 2, "states": 3, "counts": {"1": 3, "2": 2}}`, ErrOverCapacity},
		"over 100":   {`{"rows": 2, "cols": 2, "states": 3, "percentages": {"1": 60, "2": 50}}`, ErrOverCapacity},
		"exclusive":  {`{"rows": 1, "cols": 1, "states": 2, "cells": [[0]], "counts": {"1": 1}}`, ErrMalformed},
		"no states":  {`{"rows": 1, "cols": 1}`, ErrMalformed},
	}
	for name, tc := range cases {
		if _, err := Decode(strings.NewReader(tc.src)); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
	}
}

func TestCountsFillRemainderWithStateZero(t *testing.T) {
	l := Layout{Rows: 4, Cols: 5, States: 3, Counts: map[int]int{1: 6, 2: 3}}
	raw, err := l.Build(core.NewRNG(7))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := tally(raw)
	if got[0] != 11 || got[1] != 6 || got[2] != 3 {
		t.Fatalf("unexpected tally %v", got)
	}
	again, _ := l.Build(core.NewRNG(7))
	for r := range raw {
		for c := range raw[r] {
			if raw[r][c].State != again[r][c].State {
				t.Fatalf("same seed produced different placement at (%d,%d)", r, c)
			}
		}
	}
}

func TestPercentagesRoundDown(t *testing.T) {
	l := Layout{Rows: 3, Cols: 3, States: 2, Percentages: map[int]float64{1: 50}}
	raw, err := l.Build(core.NewRNG(2))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := tally(raw); got[1] != 4 || got[0] != 5 {
		t.Fatalf("expected 4 ones and 5 zeros, got %v", got)
	}
}

func TestRandomStaysWithinCapacity(t *testing.T) {
	states := grid.StateSet{Names: []string{"a", "b", "c", "d"}}
	l := Random(10, 10, states, 50)
	if err := l.Validate(); err != nil {
		t.Fatalf("Random produced an invalid layout: %v", err)
	}
	raw, err := l.Build(core.NewRNG(3))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := tally(raw)
	if got[1] != 33 || got[0] != 1 {
		t.Fatalf("unexpected tally %v", got)
	}
}
