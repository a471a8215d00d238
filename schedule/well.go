// Package schedule provides the schedule/parser layer contract consumed by
// the well state core: well definitions with their controls, connections and
// segment topology, plus the per-step event log of control-changing actions.
// It carries no simulation state of its own; the wellstate package reads it.
package schedule

// Status is the scheduled operating status of a well.
type Status int

const (
	StatusOpen Status = iota
	StatusStop
	StatusShut
)

// String returns the schedule keyword for the status.
func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "OPEN"
	case StatusStop:
		return "STOP"
	case StatusShut:
		return "SHUT"
	default:
		return "UNKNOWN"
	}
}

// Connection is one link between a well and a grid cell.
type Connection struct {
	CellIndex   int     `json:"cell_index"`
	SatNum      int     `json:"satnum"`       // saturation function region
	Open        bool    `json:"open"`         // closed connections carry no flow
	Segment     int     `json:"segment"`      // segment number, 0 when not multi-segment
	TransFactor float64 `json:"trans_factor"` // connection transmissibility factor
}

// Well is one well definition for a report step.
type Well struct {
	Name     string  `json:"name"`
	Injector bool    `json:"injector"`
	Producer bool    `json:"producer"`
	Status   Status  `json:"status"`
	ALQ      float64 `json:"alq"` // artificial lift quantity (producers)

	Connections []Connection `json:"connections"`
	Segments    *SegmentSet  `json:"segments,omitempty"`

	InjectionTargets  InjectionTargets  `json:"injection_targets"`
	ProductionTargets ProductionTargets `json:"production_targets"`
}

// IsInjector reports whether the well is declared as an injector.
func (w *Well) IsInjector() bool { return w.Injector }

// IsProducer reports whether the well is declared as a producer.
func (w *Well) IsProducer() bool { return w.Producer }

// IsMultiSegment reports whether the well has a segment network.
func (w *Well) IsMultiSegment() bool {
	return w.Segments != nil && w.Segments.Size() > 0
}

// NumOpenConnections returns the number of open connections in the
// definition. Under domain decomposition this is the global count; a
// process may see only a subset of these locally.
func (w *Well) NumOpenConnections() int {
	n := 0
	for i := range w.Connections {
		if w.Connections[i].Open {
			n++
		}
	}
	return n
}
