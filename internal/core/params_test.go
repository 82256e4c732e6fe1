package core

import (
	"errors"
	"fmt"
	"testing"
)

func testParams() *Params {
	return NewParams(
		ParamSpec{Key: "prob", Label: "Probability", Group: "Spread", Type: ParamTypeFloat, Min: 0, Max: 1, Default: 0.5},
		ParamSpec{Key: "breed", Label: "Breed time", Group: "Spread", Type: ParamTypeInt, Min: 1, Max: 10, Default: 3},
		ParamSpec{Key: "rule", Label: "Rule", Type: ParamTypeString, DefaultString: "B3/S23", Validate: func(s string) error {
			if s == "" {
				return fmt.Errorf("empty rule")
			}
			return nil
		}},
	)
}

func TestSetFloatRejectsOutOfBounds(t *testing.T) {
	p := testParams()
	err := p.SetFloat("prob", 1.5)
	var bounds *BoundsError
	if !errors.As(err, &bounds) {
		t.Fatalf("expected BoundsError, got %v", err)
	}
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatal("BoundsError must wrap ErrOutOfBounds")
	}
	if bounds.Key != "prob" || bounds.Min != 0 || bounds.Max != 1 {
		t.Fatalf("unexpected bounds detail %+v", bounds)
	}
	if got, _ := p.GetFloat("prob"); got != 0.5 {
		t.Fatalf("expected prior value 0.5 to be kept, got %f", got)
	}

	if err := p.SetFloat("prob", 0.25); err != nil {
		t.Fatalf("in-bounds write failed: %v", err)
	}
	if got, _ := p.GetFloat("prob"); got != 0.25 {
		t.Fatalf("expected 0.25, got %f", got)
	}
	if err := p.SetFloat("prob", 1); err != nil {
		t.Fatalf("max bound is inclusive: %v", err)
	}
}

func TestSetFloatIntegerAndUnknown(t *testing.T) {
	p := testParams()
	if err := p.SetFloat("breed", 2.5); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for fractional int, got %v", err)
	}
	if p.Int("breed") != 3 {
		t.Fatalf("expected breed to stay 3, got %d", p.Int("breed"))
	}
	if err := p.SetFloat("nope", 1); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("expected ErrUnknownParameter, got %v", err)
	}
}

func TestStringParameters(t *testing.T) {
	p := testParams()
	if err := p.SetString("rule", ""); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if got, _ := p.GetString("rule"); got != "B3/S23" {
		t.Fatalf("expected default rule to be kept, got %q", got)
	}
	if err := p.SetString("prob", "x"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
}

func TestLoadFromMap(t *testing.T) {
	p := testParams()
	if err := p.Load(map[string]string{"prob": "0.75", "breed": "4", "rule": "B36/S23"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Float("prob") != 0.75 || p.Int("breed") != 4 || p.String("rule") != "B36/S23" {
		t.Fatalf("unexpected values after load: %f %d %q", p.Float("prob"), p.Int("breed"), p.String("rule"))
	}
	if err := p.Load(map[string]string{"prob": "abc"}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected parse failure, got %v", err)
	}
	if err := p.Load(map[string]string{"breed": "99"}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected bounds failure, got %v", err)
	}
}

func TestSnapshotAndControls(t *testing.T) {
	p := testParams()
	snap := p.Snapshot()
	if len(snap.Groups) != 2 || snap.Groups[0].Name != "Spread" || snap.Groups[1].Name != "Rule" {
		t.Fatalf("unexpected groups %+v", snap.Groups)
	}
	if v := snap.Groups[0].Params[1].Value; v != "3" {
		t.Fatalf("expected int formatting, got %q", v)
	}
	controls := p.Controls()
	if len(controls) != 2 {
		t.Fatalf("expected 2 numeric controls, got %d", len(controls))
	}
	if controls[0].Step != 0.05 {
		t.Fatalf("expected default float step 0.05, got %f", controls[0].Step)
	}
}
