// Package phase defines the fluid phases tracked by the simulator and the
// PhaseUsage descriptor that maps active phases to compact vector positions.
// All rate and productivity-index vectors in the well state are laid out in
// PhaseUsage order.
package phase

// Phase identifies one of the canonical fluid phases.
type Phase int

const (
	Water Phase = iota
	Oil
	Gas
	numCanonical
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case Water:
		return "water"
	case Oil:
		return "oil"
	case Gas:
		return "gas"
	default:
		return "unknown"
	}
}

// Usage describes which phases are active in a run and where each active
// phase sits in the compact per-phase vectors.
type Usage struct {
	used [numCanonical]bool
	pos  [numCanonical]int
	num  int

	// Extra-component flags. These do not occupy phase positions; their
	// rates live in dedicated per-perforation arrays.
	HasSolvent bool
	HasPolymer bool
	HasBrine   bool
}

// NewUsage creates a Usage with the given phases active, positioned in the
// order supplied. Duplicate phases are ignored.
func NewUsage(phases ...Phase) Usage {
	var u Usage
	for _, p := range phases {
		if p < 0 || p >= numCanonical || u.used[p] {
			continue
		}
		u.used[p] = true
		u.pos[p] = u.num
		u.num++
	}
	return u
}

// AllPhases returns a Usage with water, oil and gas active in that order.
func AllPhases() Usage {
	return NewUsage(Water, Oil, Gas)
}

// NumPhases returns the number of active phases.
func (u Usage) NumPhases() int { return u.num }

// Used reports whether the given phase is active.
func (u Usage) Used(p Phase) bool {
	return p >= 0 && p < numCanonical && u.used[p]
}

// Pos returns the compact vector position of the given phase.
// The second return value is false if the phase is not active.
func (u Usage) Pos(p Phase) (int, bool) {
	if !u.Used(p) {
		return 0, false
	}
	return u.pos[p], true
}

// Active returns the active phases in vector order.
func (u Usage) Active() []Phase {
	out := make([]Phase, u.num)
	for p := Phase(0); p < numCanonical; p++ {
		if u.used[p] {
			out[u.pos[p]] = p
		}
	}
	return out
}
