// Package summary provides the summary/limit layer contract: resolution of
// symbolic control targets into concrete numeric limits for one report step.
// The schedule layer stores targets either as literal numbers or as named
// values looked up here.
package summary

// State holds the resolved numeric values for one report step.
type State struct {
	values map[string]float64
}

// New creates an empty summary state.
func New() *State {
	return &State{values: make(map[string]float64)}
}

// Set stores a named value.
func (s *State) Set(key string, value float64) {
	s.values[key] = value
}

// Get returns the value for key, or def if the key has no entry.
func (s *State) Get(key string, def float64) float64 {
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

// Has reports whether key has a resolved value.
func (s *State) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}
