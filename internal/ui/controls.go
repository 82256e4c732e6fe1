package ui

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"cellsociety/internal/core"
)

// Controls tracks the numeric parameters of a rule, their displayed values
// and which one keyboard input currently targets.
type Controls struct {
	logic    core.Logic
	states   []controlState
	selected int
}

type controlState struct {
	control    core.ParameterControl
	value      string
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// Line is one rendered control row.
type Line struct {
	Label    string
	Value    string
	Selected bool
	CanDec   bool
	CanInc   bool
}

// NewControls reads the adjustable parameters of l.
func NewControls(l core.Logic) *Controls {
	c := &Controls{logic: l}
	for _, ctrl := range l.ParameterControls() {
		c.states = append(c.states, controlState{control: ctrl, value: "--"})
	}
	c.Refresh()
	return c
}

// Len returns the number of controls.
func (c *Controls) Len() int { return len(c.states) }

// Selected returns the index of the control targeted by the keyboard.
func (c *Controls) Selected() int { return c.selected }

// Select moves the keyboard selection by delta, wrapping at either end.
func (c *Controls) Select(delta int) {
	if len(c.states) == 0 {
		return
	}
	n := len(c.states)
	c.selected = ((c.selected+delta)%n + n) % n
}

// Title names the panel after the rule kind.
func (c *Controls) Title() string {
	name := string(c.logic.Kind())
	if name == "" {
		return "Controls"
	}
	return strings.ToUpper(name[:1]) + name[1:] + " Controls"
}

// Refresh re-reads every value from the rule.
func (c *Controls) Refresh() {
	values := map[string]core.Parameter{}
	for _, group := range c.logic.Parameters().Groups {
		for _, p := range group.Params {
			values[p.Key] = p
		}
	}
	for i := range c.states {
		st := &c.states[i]
		p, ok := values[st.control.Key]
		if !ok {
			st.hasValue, st.value = false, "--"
			continue
		}
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			st.hasValue, st.value = false, "--"
			continue
		}
		st.floatValue = v
		st.value = formatValue(st.control, v)
		st.hasValue = true
	}
}

// Adjust steps control i by direction steps, clamped to its bounds.
func (c *Controls) Adjust(i, direction int) error {
	if i < 0 || i >= len(c.states) || direction == 0 {
		return nil
	}
	st := &c.states[i]
	if !st.hasValue {
		return nil
	}
	target := c.target(st, direction)
	if math.Abs(target-st.floatValue) < 1e-9 {
		return nil
	}
	if err := c.logic.SetFloatParameter(st.control.Key, target); err != nil {
		return fmt.Errorf("adjust %s: %w", st.control.Key, err)
	}
	st.floatValue = target
	st.value = formatValue(st.control, target)
	return nil
}

// AdjustSelected steps the keyboard-selected control.
func (c *Controls) AdjustSelected(direction int) error {
	return c.Adjust(c.selected, direction)
}

// CanAdjust reports whether stepping control i by direction changes it.
func (c *Controls) CanAdjust(i, direction int) bool {
	if i < 0 || i >= len(c.states) || direction == 0 || !c.states[i].hasValue {
		return false
	}
	st := &c.states[i]
	return math.Abs(c.target(st, direction)-st.floatValue) >= 1e-9
}

func (c *Controls) target(st *controlState, direction int) float64 {
	step := st.control.Step
	if step <= 0 {
		step = 1
	}
	target := st.floatValue + float64(direction)*step
	if st.control.Type == core.ParamTypeInt {
		target = math.Round(target)
	}
	return math.Min(math.Max(target, st.control.Min), st.control.Max)
}

// Lines returns the rows to draw.
func (c *Controls) Lines() []Line {
	out := make([]Line, len(c.states))
	for i, st := range c.states {
		out[i] = Line{
			Label:    st.control.Label,
			Value:    st.value,
			Selected: i == c.selected,
			CanDec:   c.CanAdjust(i, -1),
			CanInc:   c.CanAdjust(i, 1),
		}
	}
	return out
}

func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	precision := 1
	switch step := ctrl.Step; {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
