package wellstate

import (
	"github.com/wellflow-xyz/go-wellflow/phase"
	"github.com/wellflow-xyz/go-wellflow/schedule"
)

// GasRateConditioningFactor scales perforation gas rates before the initial
// segment-rate aggregation. A near-zero initial gas fraction gives the
// nonlinear solver a degenerate starting point; the factor is a tunable
// conditioning aid, not a physical quantity, and is applied to a scratch
// copy only so stored and reported rates are never affected.
const GasRateConditioningFactor = 100.0

// SegmentState holds the pipe-network state of one multi-segment well as a
// flat arena indexed by segment position. Index 0 is the top (wellhead)
// segment. Rates is a flat array of numPhases values per segment.
type SegmentState struct {
	np int

	Number   []int // deck segment numbers, by arena index
	Pressure []float64
	Rates    []float64

	PDropHydrostatic []float64
	PDropFriction    []float64
	PDropAccel       []float64
}

// NewSegmentState creates zeroed segment state for the given topology.
func NewSegmentState(np int, set *schedule.SegmentSet) *SegmentState {
	n := set.Size()
	ss := &SegmentState{
		np:               np,
		Number:           make([]int, n),
		Pressure:         make([]float64, n),
		Rates:            make([]float64, n*np),
		PDropHydrostatic: make([]float64, n),
		PDropFriction:    make([]float64, n),
		PDropAccel:       make([]float64, n),
	}
	for i := range set.Segments {
		ss.Number[i] = set.Segments[i].Number
	}
	return ss
}

// Size returns the number of segments.
func (ss *SegmentState) Size() int { return len(ss.Number) }

// RatesOf returns the per-phase rate slice of one segment, aliasing the
// underlying array.
func (ss *SegmentState) RatesOf(seg int) []float64 {
	return ss.Rates[seg*ss.np : (seg+1)*ss.np]
}

// PressureDrop returns the total pressure drop over one segment.
func (ss *SegmentState) PressureDrop(seg int) float64 {
	return ss.PDropHydrostatic[seg] + ss.PDropFriction[seg] + ss.PDropAccel[seg]
}

// Copy returns a deep copy of the segment state.
func (ss *SegmentState) Copy() *SegmentState {
	out := &SegmentState{np: ss.np}
	out.Number = append([]int(nil), ss.Number...)
	out.Pressure = append([]float64(nil), ss.Pressure...)
	out.Rates = append([]float64(nil), ss.Rates...)
	out.PDropHydrostatic = append([]float64(nil), ss.PDropHydrostatic...)
	out.PDropFriction = append([]float64(nil), ss.PDropFriction...)
	out.PDropAccel = append([]float64(nil), ss.PDropAccel...)
	return out
}

// InitSegments builds the segment network state of every multi-segment well
// in the container: per-segment rates by bottom-up tree aggregation over
// the perforation rates, and seed pressures for the solver. When prev is
// supplied, surviving multi-segment wells take their whole segment state
// from the previous step instead.
//
// Must be called after Init, which fills the perforation rates the
// aggregation consumes.
func (ws *WellState) InitSegments(wells []schedule.Well, prev *WellState) {
	np := ws.pu.NumPhases()

	for w := range wells {
		def := &wells[w]
		if !def.IsMultiSegment() {
			continue
		}
		sws := ws.wells[w]
		segSet := def.Segments
		nseg := segSet.Size()
		sws.Segments = NewSegmentState(np, segSet)

		// For each segment: which active perforations feed it directly,
		// and which segments drain into it. Active perforation numbering
		// follows the open connections in deck order.
		segmentPerforations := make([][]int, nseg)
		nActivePerf := 0
		for i := range def.Connections {
			conn := &def.Connections[i]
			if !conn.Open {
				continue
			}
			segIdx := segSet.NumberToIndex(conn.Segment)
			if segIdx >= 0 {
				segmentPerforations[segIdx] = append(segmentPerforations[segIdx], nActivePerf)
			}
			nActivePerf++
		}

		segmentInlets := make([][]int, nseg)
		for i := range segSet.Segments {
			outlet := segSet.Segments[i].Outlet
			if outlet > 0 {
				outIdx := segSet.NumberToIndex(outlet)
				if outIdx >= 0 {
					segmentInlets[outIdx] = append(segmentInlets[outIdx], i)
				}
			}
		}

		// Aggregate over a scratch copy of the perforation rates so the
		// gas conditioning never reaches the stored per-connection state.
		perfRates := append([]float64(nil), sws.Perf.PhaseRates...)
		if gasPos, ok := ws.pu.Pos(phase.Gas); ok {
			for perf := 0; perf < sws.Perf.Size(); perf++ {
				perfRates[perf*np+gasPos] *= GasRateConditioningFactor
			}
		}
		calculateSegmentRates(segmentInlets, segmentPerforations, perfRates, np, 0, sws.Segments.Rates)

		// Seed pressures: top segment carries the well bhp; any other
		// segment takes its first perforation's pressure, or inherits from
		// its outlet. Outlets have lower arena indices, so a forward sweep
		// resolves them before their inlets look them up.
		sws.Segments.Pressure[0] = sws.Bhp
		for seg := 1; seg < nseg; seg++ {
			if len(segmentPerforations[seg]) > 0 {
				first := segmentPerforations[seg][0]
				sws.Segments.Pressure[seg] = sws.Perf.Pressure[first]
			} else {
				outIdx := segSet.NumberToIndex(segSet.Segments[seg].Outlet)
				if outIdx >= 0 {
					sws.Segments.Pressure[seg] = sws.Segments.Pressure[outIdx]
				}
			}
		}
	}

	if prev == nil {
		return
	}
	for w := range wells {
		def := &wells[w]
		if def.Status == schedule.StatusShut || !def.IsMultiSegment() {
			continue
		}
		prevIdx, ok := prev.Index(def.Name)
		if !ok {
			continue
		}
		prevWell := prev.wells[prevIdx]
		if prevWell.Status == schedule.StatusShut || prevWell.Segments == nil {
			continue
		}
		// Segment count may differ between steps when the schedule edits
		// the network; only a matching topology is carried over.
		if prevWell.Segments.Size() == ws.wells[w].Segments.Size() {
			ws.wells[w].Segments = prevWell.Segments.Copy()
		}
	}
}

// calculateSegmentRates accumulates per-phase segment rates bottom-up: a
// segment's rate is the sum of its directly attached perforation rates plus
// the aggregated rates of all its inlet segments. Called with segment 0 it
// fills the whole arena by post-order recursion; the top segment then holds
// the well total.
func calculateSegmentRates(segmentInlets, segmentPerforations [][]int,
	perforationRates []float64, np, segment int, segmentRates []float64) {

	for _, perf := range segmentPerforations[segment] {
		for p := 0; p < np; p++ {
			segmentRates[np*segment+p] += perforationRates[np*perf+p]
		}
	}
	for _, inlet := range segmentInlets[segment] {
		calculateSegmentRates(segmentInlets, segmentPerforations, perforationRates, np, inlet, segmentRates)
		for p := 0; p < np; p++ {
			segmentRates[np*segment+p] += segmentRates[np*inlet+p]
		}
	}
}
