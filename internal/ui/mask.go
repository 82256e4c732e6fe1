package ui

import (
	"sort"

	"cellsociety/internal/grid"
	"cellsociety/internal/render"
)

// MaskCycle steps through the property keys present on a grid so one of them
// can be drawn as an overlay.
type MaskCycle struct {
	keys   []string
	active string
}

// Refresh records the keys present in snap. An active key that disappeared
// is kept so its overlay reappears when the property does.
func (m *MaskCycle) Refresh(snap grid.Snapshot) {
	seen := map[string]bool{}
	for _, line := range snap.Cells {
		for _, v := range line {
			for k := range v.Properties {
				seen[k] = true
			}
		}
	}
	m.keys = m.keys[:0]
	for k := range seen {
		m.keys = append(m.keys, k)
	}
	sort.Strings(m.keys)
}

// Keys returns the known property keys in sorted order.
func (m *MaskCycle) Keys() []string { return m.keys }

// Next activates the key after the current one; after the last key the
// overlay turns off.
func (m *MaskCycle) Next() {
	if m.active == "" {
		if len(m.keys) > 0 {
			m.active = m.keys[0]
		}
		return
	}
	i := sort.SearchStrings(m.keys, m.active)
	if i < len(m.keys) && m.keys[i] == m.active {
		i++
	}
	if i >= len(m.keys) {
		m.active = ""
		return
	}
	m.active = m.keys[i]
}

// Active returns the key currently shown.
func (m *MaskCycle) Active() (string, bool) { return m.active, m.active != "" }

// Mask returns the active property of snap scaled into [0,1].
func (m *MaskCycle) Mask(snap grid.Snapshot) []float32 {
	if m.active == "" {
		return nil
	}
	return render.Normalize(snap.Field(m.active))
}
