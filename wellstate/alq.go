package wellstate

import "sort"

// ALQState tracks the artificial-lift quantity of each producer: the
// schedule default and any dynamically set value. Its packed form rides
// along with the group-rate reduction so ALQ stays consistent across
// processes without a second collective call.
type ALQState struct {
	current  map[string]float64
	defaults map[string]float64
}

func newALQState() ALQState {
	return ALQState{
		current:  make(map[string]float64),
		defaults: make(map[string]float64),
	}
}

// UpdateDefault records the schedule-supplied default ALQ for a well.
// Wells are registered here on every process, owners and non-owners alike,
// so the packed layout is identical on every rank.
func (a *ALQState) UpdateDefault(well string, alq float64) {
	a.defaults[well] = alq
}

// Set stores a dynamically chosen ALQ value for a well.
func (a *ALQState) Set(well string, alq float64) {
	a.current[well] = alq
}

// Get returns the well's ALQ: the dynamic value if one has been set,
// otherwise the schedule default.
func (a *ALQState) Get(well string) float64 {
	if v, ok := a.current[well]; ok {
		return v
	}
	return a.defaults[well]
}

// names returns the registered wells in sorted order. The reduction packs
// and unpacks in this order on every rank.
func (a *ALQState) names() []string {
	out := make([]string, 0, len(a.defaults))
	for name := range a.defaults {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// PackSize returns the number of values Pack writes.
func (a *ALQState) PackSize() int { return len(a.defaults) }

// Pack writes each registered well's ALQ into data, contributing the true
// value only when owner reports this process as the well's owner, and zero
// otherwise. Returns the number of values written.
func (a *ALQState) Pack(data []float64, owner func(well string) bool) int {
	pos := 0
	for _, name := range a.names() {
		if owner(name) {
			data[pos] = a.Get(name)
		} else {
			data[pos] = 0
		}
		pos++
	}
	return pos
}

// Unpack reads the post-reduction ALQ values back, in Pack order.
// Returns the number of values read.
func (a *ALQState) Unpack(data []float64) int {
	pos := 0
	for _, name := range a.names() {
		a.current[name] = data[pos]
		pos++
	}
	return pos
}
