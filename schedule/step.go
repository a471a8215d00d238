package schedule

// Events is a bitmask of control-changing actions recorded for a well
// since the last report step.
type Events uint

const (
	// NewWell marks a well first appearing in the schedule this step.
	NewWell Events = 1 << iota
	// StatusChange marks an explicit status directive (open/stop/shut).
	StatusChange
	// ProductionUpdate marks a new production control target.
	ProductionUpdate
	// InjectionUpdate marks a new injection control target.
	InjectionUpdate
	// GroupChange marks reassignment to a different group.
	GroupChange
)

// HasEvent reports whether any event in mask has been recorded.
func (e Events) HasEvent(mask Events) bool {
	return e&mask != 0
}

// Step is the schedule snapshot for one report step: the well definitions
// in well-list order and the per-well event log.
type Step struct {
	Wells      []Well            `json:"wells"`
	WellEvents map[string]Events `json:"well_events,omitempty"`
}

// WellNames returns the names of all wells in well-list order.
func (s *Step) WellNames() []string {
	names := make([]string, len(s.Wells))
	for i := range s.Wells {
		names[i] = s.Wells[i].Name
	}
	return names
}

// Events returns the recorded events for the named well.
func (s *Step) Events(well string) Events {
	if s.WellEvents == nil {
		return 0
	}
	return s.WellEvents[well]
}
