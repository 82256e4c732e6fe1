package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseKind("GameOfLife"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestRegisterRejectsKindOutsideSet(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown kind")
		}
	}()
	Register("ghost", grid0(), nil)
}

func TestNewUnknownKind(t *testing.T) {
	if _, err := New("ghost", nil, defaultOpts(), 1); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 16; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("same seed must yield the same sequence")
		}
	}
	if a.Chance(0) || !a.Chance(1) {
		t.Fatal("Chance must honor 0 and 1 exactly")
	}
	if a.IntN(0) != 0 {
		t.Fatal("IntN(0) should return 0")
	}
}

func TestFixedStepDue(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return now }

	if got := fs.Due(); got != 1 {
		t.Fatalf("expected the first call to release one tick, got %d", got)
	}
	now = now.Add(250 * time.Millisecond)
	if got := fs.Due(); got != 2 {
		t.Fatalf("expected 2 ticks after 250ms at 10 TPS, got %d", got)
	}
	now = now.Add(10 * time.Second)
	if got := fs.Due(); got != maxCatchUp {
		t.Fatalf("expected catch-up to cap at %d, got %d", maxCatchUp, got)
	}
	if fs.ShouldStep() {
		t.Fatal("no time elapsed, no tick expected")
	}
}
