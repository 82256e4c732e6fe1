package grid

// State is the integer code of a cell state. Each rule kind declares the
// closed set of codes it understands through a StateSet.
type State int

// StateSet names the states of one rule kind. Codes are indices into Names.
type StateSet struct {
	Names   []string
	Default State
}

// Len returns the number of states in the set.
func (s StateSet) Len() int { return len(s.Names) }

// Valid reports whether code names a state in the set.
func (s StateSet) Valid(code int) bool { return code >= 0 && code < len(s.Names) }

// Decode maps a serialized code to a state, falling back to the default
// variant for anything outside the set.
func (s StateSet) Decode(code int) State {
	if !s.Valid(code) {
		return s.Default
	}
	return State(code)
}

// Name returns the display name for st, or "?" when unknown.
func (s StateSet) Name(st State) string {
	if !s.Valid(int(st)) {
		return "?"
	}
	return s.Names[st]
}

// Lookup finds the state with the provided name.
func (s StateSet) Lookup(name string) (State, bool) {
	for i, n := range s.Names {
		if n == name {
			return State(i), true
		}
	}
	return s.Default, false
}
