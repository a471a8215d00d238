package wellstate

import (
	"github.com/wellflow-xyz/go-wellflow/parallel"
	"github.com/wellflow-xyz/go-wellflow/phase"
	"github.com/wellflow-xyz/go-wellflow/schedule"
)

// SingleWellState aggregates the dynamic state of one well: control mode,
// pressures, per-phase rate vectors, per-connection records and, for
// multi-segment wells, the segment network state. It is mutated in place by
// the solver during a timestep.
type SingleWellState struct {
	Name     string
	Producer bool
	Status   schedule.Status
	Events   schedule.Events

	InjectionCMode  schedule.InjectorCMode
	ProductionCMode schedule.ProducerCMode

	Bhp         float64
	Thp         float64
	Temperature float64

	SurfaceRates      []float64
	ReservoirRates    []float64
	WellPotentials    []float64
	ProductivityIndex []float64

	DissolvedGasRate float64
	VaporizedOilRate float64

	Perf     *PerfData
	Segments *SegmentState // nil unless multi-segment

	// ParallelInfo is a reference to the partition descriptor, shared with
	// the owner of the decomposition; never copied.
	ParallelInfo *parallel.WellInfo

	pu phase.Usage
}

func newSingleWellState(name string, info *parallel.WellInfo, producer bool,
	perfs []PerforationData, pu phase.Usage, temperature float64) *SingleWellState {

	np := pu.NumPhases()
	return &SingleWellState{
		Name:              name,
		Producer:          producer,
		Status:            schedule.StatusOpen,
		Temperature:       temperature,
		SurfaceRates:      make([]float64, np),
		ReservoirRates:    make([]float64, np),
		WellPotentials:    make([]float64, np),
		ProductivityIndex: make([]float64, np),
		Perf:              newPerfData(np, perfs, pu.HasSolvent, pu.HasPolymer, pu.HasBrine),
		ParallelInfo:      info,
		pu:                pu,
	}
}

// Open marks the well open. Rates and pressures are left untouched; they
// are re-derived at the next full initialization.
func (ws *SingleWellState) Open() {
	ws.Status = schedule.StatusOpen
}

// Stop stops the well: surface flow ceases but the well remains connected.
// Surface rates and thp are zeroed; bhp is kept as the last known value.
func (ws *SingleWellState) Stop() {
	ws.Status = schedule.StatusStop
	ws.Thp = 0
	zero(ws.SurfaceRates)
}

// Shut closes the well entirely, zeroing all rates and pressures including
// the per-connection and per-segment values.
func (ws *SingleWellState) Shut() {
	ws.Status = schedule.StatusShut
	ws.Bhp = 0
	ws.Thp = 0
	zero(ws.SurfaceRates)
	zero(ws.ReservoirRates)
	zero(ws.Perf.PhaseRates)
	zero(ws.Perf.ReservoirRate)
	if ws.Segments != nil {
		zero(ws.Segments.Rates)
	}
}

// UpdateStatus applies the transition for the given terminal status.
func (ws *SingleWellState) UpdateStatus(status schedule.Status) {
	switch status {
	case schedule.StatusOpen:
		ws.Open()
	case schedule.StatusStop:
		ws.Stop()
	case schedule.StatusShut:
		ws.Shut()
	}
}

// InitTimestep seeds the pressure state from the previous step's well as a
// numerical warm start. Rates are carried separately by the container.
func (ws *SingleWellState) InitTimestep(prev *SingleWellState) {
	ws.Bhp = prev.Bhp
	ws.Thp = prev.Thp
	ws.Temperature = prev.Temperature
}

// SumSolventRates returns the total solvent rate over local perforations.
func (ws *SingleWellState) SumSolventRates() float64 { return sum(ws.Perf.SolventRates) }

// SumPolymerRates returns the total polymer rate over local perforations.
func (ws *SingleWellState) SumPolymerRates() float64 { return sum(ws.Perf.PolymerRates) }

// SumBrineRates returns the total brine rate over local perforations.
func (ws *SingleWellState) SumBrineRates() float64 { return sum(ws.Perf.BrineRates) }

func zero(v []float64) {
	for i := range v {
		v[i] = 0
	}
}
