package core

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeString denotes free-form string parameters.
	ParamTypeString ParamType = "string"
)

var (
	// ErrOutOfBounds is wrapped by BoundsError.
	ErrOutOfBounds = errors.New("parameter out of bounds")
	// ErrUnknownParameter reports a key the rule does not declare.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrInvalidParameter reports a value that cannot be parsed or has the
	// wrong type for its key.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// BoundsError describes a rejected write outside a parameter's range.
type BoundsError struct {
	Key      string
	Value    float64
	Min, Max float64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("parameter %q: %g outside [%g, %g]", e.Key, e.Value, e.Min, e.Max)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// ParamSpec declares one tunable value of a rule.
type ParamSpec struct {
	Key         string
	Label       string
	Group       string
	Type        ParamType
	Description string

	Min, Max float64
	Default  float64
	Step     float64

	DefaultString string
	// Validate checks string parameters. Nil accepts anything.
	Validate func(string) error
}

// Parameter describes a single tunable value exposed by a simulation.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current set of tunables exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterControl describes an adjustable parameter that should be exposed on
// the HUD.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min float64
	Max float64
}

// FloatParameterSetter allows HUD interactions to update numeric parameters.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) error
	FloatParameter(key string) (float64, error)
}

// StringParameterSetter allows callers to update string parameters.
type StringParameterSetter interface {
	SetStringParameter(key string, value string) error
	StringParameter(key string) (string, error)
}

// Params holds the live values of a rule's declared parameters.
type Params struct {
	specs   []ParamSpec
	floats  map[string]float64
	strings map[string]string
}

// NewParams initializes every spec to its default.
func NewParams(specs ...ParamSpec) *Params {
	p := &Params{
		specs:   specs,
		floats:  make(map[string]float64),
		strings: make(map[string]string),
	}
	for _, s := range specs {
		if s.Type == ParamTypeString {
			p.strings[s.Key] = s.DefaultString
			continue
		}
		p.floats[s.Key] = s.Default
	}
	return p
}

func (p *Params) spec(key string) (ParamSpec, bool) {
	for _, s := range p.specs {
		if s.Key == key {
			return s, true
		}
	}
	return ParamSpec{}, false
}

// Float returns a numeric value. Rules use it for keys they declared.
func (p *Params) Float(key string) float64 { return p.floats[key] }

// Int returns a numeric value truncated to int.
func (p *Params) Int(key string) int { return int(p.floats[key]) }

// String returns a string value.
func (p *Params) String(key string) string { return p.strings[key] }

// SetFloat writes a numeric parameter. Values outside [Min, Max] are rejected
// and the previous value is kept.
func (p *Params) SetFloat(key string, value float64) error {
	s, ok := p.spec(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
	if s.Type == ParamTypeString {
		return fmt.Errorf("%w: %q is a string parameter", ErrInvalidParameter, key)
	}
	if math.IsNaN(value) || value < s.Min || value > s.Max {
		return &BoundsError{Key: key, Value: value, Min: s.Min, Max: s.Max}
	}
	if s.Type == ParamTypeInt && value != math.Trunc(value) {
		return fmt.Errorf("%w: %q requires an integer, got %g", ErrInvalidParameter, key, value)
	}
	p.floats[key] = value
	return nil
}

// GetFloat returns a numeric parameter.
func (p *Params) GetFloat(key string) (float64, error) {
	s, ok := p.spec(key)
	if !ok || s.Type == ParamTypeString {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
	return p.floats[key], nil
}

// SetString writes a string parameter after validation.
func (p *Params) SetString(key, value string) error {
	s, ok := p.spec(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
	if s.Type != ParamTypeString {
		return fmt.Errorf("%w: %q is numeric", ErrInvalidParameter, key)
	}
	if s.Validate != nil {
		if err := s.Validate(value); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidParameter, key, err)
		}
	}
	p.strings[key] = value
	return nil
}

// GetString returns a string parameter.
func (p *Params) GetString(key string) (string, error) {
	s, ok := p.spec(key)
	if !ok || s.Type != ParamTypeString {
		return "", fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
	return p.strings[key], nil
}

// Load applies flag-style key/value pairs in key order. It stops at the first
// rejected value; earlier keys stay applied.
func (p *Params) Load(cfg map[string]string) error {
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s, ok := p.spec(k)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownParameter, k)
		}
		if s.Type == ParamTypeString {
			if err := p.SetString(k, cfg[k]); err != nil {
				return err
			}
			continue
		}
		v, err := strconv.ParseFloat(cfg[k], 64)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidParameter, k, err)
		}
		if err := p.SetFloat(k, v); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot groups the current values for display.
func (p *Params) Snapshot() ParameterSnapshot {
	var groups []ParameterGroup
	index := map[string]int{}
	for _, s := range p.specs {
		name := s.Group
		if name == "" {
			name = "Rule"
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, ParameterGroup{Name: name})
		}
		groups[i].Params = append(groups[i].Params, Parameter{
			Key:         s.Key,
			Label:       s.Label,
			Type:        s.Type,
			Value:       p.format(s),
			Description: s.Description,
		})
	}
	return ParameterSnapshot{Groups: groups}
}

func (p *Params) format(s ParamSpec) string {
	switch s.Type {
	case ParamTypeString:
		return p.strings[s.Key]
	case ParamTypeInt:
		return strconv.Itoa(int(p.floats[s.Key]))
	default:
		return strconv.FormatFloat(p.floats[s.Key], 'f', -1, 64)
	}
}

// Controls lists the numeric parameters a HUD can step through.
func (p *Params) Controls() []ParameterControl {
	var out []ParameterControl
	for _, s := range p.specs {
		if s.Type == ParamTypeString {
			continue
		}
		step := s.Step
		if step == 0 {
			step = 1
			if s.Type == ParamTypeFloat {
				step = (s.Max - s.Min) / 20
			}
		}
		out = append(out, ParameterControl{
			Key:   s.Key,
			Label: s.Label,
			Type:  s.Type,
			Step:  step,
			Min:   s.Min,
			Max:   s.Max,
		})
	}
	return out
}
