// Package wellstate tracks the dynamic state of injection and production
// wells across simulation timesteps and across the processes that share a
// well's connections under domain decomposition.
//
// The WellState container is rebuilt at every timestep advance, seeded from
// the previous step's container when one exists. Between initializations
// the solver mutates the contained values in place; the container itself
// performs no flow computation. Within a process there is no concurrent
// access; cross-process consistency is reached only through the collective
// operations in CommunicateGroupRates and UpdateGlobalIsGrup.
package wellstate

import (
	"fmt"

	"github.com/wellflow-xyz/go-wellflow/parallel"
	"github.com/wellflow-xyz/go-wellflow/phase"
	"github.com/wellflow-xyz/go-wellflow/schedule"
	"github.com/wellflow-xyz/go-wellflow/summary"
)

// ambientTemperature is the default well temperature (K) when the schedule
// does not specify an injection temperature.
const ambientTemperature = 273.15 + 15.56

// controlEventMask selects the events that mean "a new control target was
// set this step": when any of them is recorded, the previous step's control
// mode is not carried over.
const controlEventMask = schedule.StatusChange | schedule.ProductionUpdate | schedule.InjectionUpdate

// wellRates is one well's entry in the group-rate exchange: the canonical
// per-phase rate vector and whether this process owns it.
type wellRates struct {
	owner bool
	rates []float64
}

// WellState owns the per-well states of one process for one timestep and
// drives initialization, carryover, status transitions, parallel reduction
// and report generation.
type WellState struct {
	pu phase.Usage

	wells []*SingleWellState
	index map[string]int

	rates  map[string]*wellRates
	alq    ALQState
	global *GlobalWellInfo
}

// New creates an empty container for the given phase usage.
func New(pu phase.Usage) *WellState {
	return &WellState{
		pu:    pu,
		index: make(map[string]int),
		rates: make(map[string]*wellRates),
		alq:   newALQState(),
	}
}

// Init rebuilds the container for one report step.
//
// cellPressures holds the grid pressure of every local cell, indexed by the
// cell identifiers appearing in perfData. step supplies the well
// definitions in well-list order; wellInfo and perfData are parallel to
// step.Wells. prev, when non-nil, is the previous timestep's container and
// seeds rates, potentials and productivity indices by well name. st
// resolves symbolic control targets.
func (ws *WellState) Init(cellPressures []float64, step *schedule.Step,
	wellInfo []*parallel.WellInfo, prev *WellState,
	perfData [][]PerforationData, st *summary.State) error {

	nw := len(step.Wells)
	if len(wellInfo) != nw || len(perfData) != nw {
		return fmt.Errorf("wellstate: init arguments disagree on well count: %d wells, %d infos, %d perforation sets",
			nw, len(wellInfo), len(perfData))
	}

	ws.wells = ws.wells[:0]
	ws.index = make(map[string]int, nw)
	for w := range step.Wells {
		if err := ws.initSingleWell(cellPressures, &step.Wells[w], perfData[w], wellInfo[w], st); err != nil {
			return err
		}
	}

	ws.global = NewGlobalWellInfo(step)
	np := ws.pu.NumPhases()
	ws.rates = make(map[string]*wellRates, nw)
	for _, name := range step.WellNames() {
		ws.rates[name] = &wellRates{rates: make([]float64, np)}
	}
	for _, info := range wellInfo {
		if wr, ok := ws.rates[info.Name()]; ok {
			wr.owner = info.IsOwner()
		}
		ws.global.SetOwner(info.Name(), info.IsOwner())
	}

	if nw == 0 {
		return nil
	}

	for w := range step.Wells {
		ws.wells[w].Events = step.Events(step.Wells[w].Name)
	}

	// Spread each well's aggregate rate evenly over its open connections
	// as the initial per-connection guess, and seed connection pressures
	// from the grid.
	for w := range step.Wells {
		def := &step.Wells[w]
		sws := ws.wells[w]
		globalOpen := def.NumOpenConnections()
		for perf := 0; perf < sws.Perf.Size(); perf++ {
			if def.Status == schedule.StatusOpen && globalOpen > 0 {
				rates := sws.Perf.PhaseRatesOf(perf)
				for p := 0; p < np; p++ {
					rates[p] = sws.SurfaceRates[p] / float64(globalOpen)
				}
			}
			sws.Perf.Pressure[perf] = cellPressures[perfData[w][perf].CellIndex]
		}
	}

	for w := range step.Wells {
		def := &step.Wells[w]
		if def.IsProducer() {
			ws.wells[w].ProductionCMode = def.ProductionControls(st).CMode
		} else {
			ws.wells[w].InjectionCMode = def.InjectionControls(st).CMode
		}
	}

	for w := range step.Wells {
		switch step.Wells[w].Status {
		case schedule.StatusShut:
			ws.ShutWell(w)
		case schedule.StatusStop:
			ws.StopWell(w)
		default:
			ws.OpenWell(w)
		}
	}

	if prev != nil && prev.Size() > 0 {
		ws.carryover(step, prev, st)
	}

	// Stopped wells and wells deferring to group control start the step
	// with no flow regardless of history.
	for w := range step.Wells {
		sws := ws.wells[w]
		grup := (sws.Producer && sws.ProductionCMode == schedule.ProducerGRUP) ||
			(!sws.Producer && sws.InjectionCMode == schedule.InjectorGRUP)
		if sws.Status == schedule.StatusStop || grup {
			zero(sws.SurfaceRates)
			zero(sws.Perf.PhaseRates)
		}
	}

	ws.updateWellsDefaultALQ(step.Wells)
	return nil
}

// initSingleWell builds the baseline state of one well: status, control
// mode, seed pressures and, for single-phase rate controls, seed rates.
func (ws *WellState) initSingleWell(cellPressures []float64, def *schedule.Well,
	perfs []PerforationData, info *parallel.WellInfo, st *summary.State) error {

	if def.IsInjector() == def.IsProducer() {
		return fmt.Errorf("%w: %s", ErrInvalidWellRole, def.Name)
	}

	var injControls schedule.InjectionControls
	temp := ambientTemperature
	if def.IsInjector() {
		injControls = def.InjectionControls(st)
		temp = injControls.Temperature
	}

	sws := newSingleWellState(def.Name, info, def.IsProducer(), perfs, ws.pu, temp)
	ws.index[def.Name] = len(ws.wells)
	ws.wells = append(ws.wells, sws)
	if sws.Perf.Empty() {
		// No locally visible connections: the well stays a zero
		// placeholder on this process but is still tracked globally.
		return nil
	}

	var prodControls schedule.ProductionControls
	if def.IsProducer() {
		prodControls = def.ProductionControls(st)
	}

	isBhp := false
	bhpLimit := 0.0
	injSurfRate := 0.0
	if def.IsInjector() {
		isBhp = injControls.CMode == schedule.InjectorBHP
		bhpLimit = injControls.BhpLimit
		injSurfRate = injControls.SurfaceRate
	} else {
		isBhp = prodControls.CMode == schedule.ProducerBHP
		bhpLimit = prodControls.BhpLimit
	}

	globalPressure, err := info.BroadcastFirstPerforationValue(cellPressures[perfs[0].CellIndex])
	if err != nil {
		return fmt.Errorf("wellstate: broadcast first perforation pressure for well %s: %w", def.Name, err)
	}

	if def.Status == schedule.StatusOpen {
		sws.Status = schedule.StatusOpen
	}

	// Seed thp from the thp target/limit if such a limit exists,
	// otherwise keep it zero.
	if def.IsInjector() {
		if injControls.HasTHPControl() {
			sws.Thp = injControls.ThpLimit
		}
	} else if prodControls.HasTHPControl() {
		sws.Thp = prodControls.ThpLimit
	}

	if def.Status == schedule.StatusStop {
		// Stopped well: zero rates; bhp from the bhp limit when
		// bhp-controlled, otherwise the first perforation cell pressure.
		if isBhp {
			sws.Bhp = bhpLimit
		} else {
			sws.Bhp = globalPressure
		}
		return nil
	}

	isGrup := false
	if def.IsInjector() {
		isGrup = injControls.CMode == schedule.InjectorGRUP
	} else {
		isGrup = prodControls.CMode == schedule.ProducerGRUP
	}
	if isGrup {
		// Group-controlled well: zero rates; bhp a little above (injector)
		// or below (producer) the first perforation cell pressure so the
		// solver does not start from a zero pressure differential.
		sws.Bhp = grupSafetyFactor(def.IsInjector()) * globalPressure
		return nil
	}

	// Open well under its own control: seed rates from the target when the
	// mode is a single-phase surface rate control, otherwise keep the
	// neutral zero start. Producer rates carry a negative sign (outflow).
	if def.IsInjector() {
		if injControls.CMode == schedule.InjectorRATE {
			switch injControls.Type {
			case schedule.InjectWater:
				ws.setPhaseRate(sws, phase.Water, injSurfRate)
			case schedule.InjectGas:
				ws.setPhaseRate(sws, phase.Gas, injSurfRate)
			case schedule.InjectOil:
				ws.setPhaseRate(sws, phase.Oil, injSurfRate)
			case schedule.InjectMulti:
				// Multi-phase injection target: keep zero init.
			}
		}
	} else {
		switch prodControls.CMode {
		case schedule.ProducerORAT:
			ws.setPhaseRate(sws, phase.Oil, -prodControls.OilRate)
		case schedule.ProducerWRAT:
			ws.setPhaseRate(sws, phase.Water, -prodControls.WaterRate)
		case schedule.ProducerGRAT:
			ws.setPhaseRate(sws, phase.Gas, -prodControls.GasRate)
		default:
			// Keep zero init.
		}
	}

	if isBhp {
		sws.Bhp = bhpLimit
	} else {
		sws.Bhp = grupSafetyFactor(def.IsInjector()) * globalPressure
	}
	return nil
}

// carryover seeds the new step's wells from the previous container,
// matched by name. Shut wells and wells that flipped between injector and
// producer keep their fresh initialization.
func (ws *WellState) carryover(step *schedule.Step, prev *WellState, st *summary.State) {
	np := ws.pu.NumPhases()
	for w := range step.Wells {
		def := &step.Wells[w]
		if def.Status == schedule.StatusShut {
			continue
		}
		newWell := ws.wells[w]
		oldIdx, found := prev.Index(def.Name)
		if found {
			prevWell := prev.wells[oldIdx]
			newWell.InitTimestep(prevWell)

			usePrev := prevWell.Status != schedule.StatusShut &&
				newWell.Producer == prevWell.Producer
			if usePrev {
				// A control-change directive this step overrides the
				// previous control mode; rates still warm-start below.
				if !newWell.Events.HasEvent(controlEventMask) {
					newWell.InjectionCMode = prevWell.InjectionCMode
					newWell.ProductionCMode = prevWell.ProductionCMode
				}

				copy(newWell.SurfaceRates, prevWell.SurfaceRates)
				copy(newWell.ReservoirRates, prevWell.ReservoirRates)
				copy(newWell.WellPotentials, prevWell.WellPotentials)
				copy(newWell.ProductivityIndex, prevWell.ProductivityIndex)

				// Same connection count: copy per-connection values
				// positionally. Otherwise re-derive by spreading the
				// carried totals over the new connections.
				if !newWell.Perf.TryAssign(prevWell.Perf) {
					globalOpen := def.NumOpenConnections()
					for perf := 0; perf < newWell.Perf.Size(); perf++ {
						rates := newWell.Perf.PhaseRatesOf(perf)
						for p := 0; p < np; p++ {
							rates[p] = newWell.SurfaceRates[p] / float64(globalOpen)
						}
					}
				}
			}
		}

		// A well with no thp target left this step must not keep a stale
		// thp from the carried state.
		hasTHP := false
		if def.IsInjector() {
			hasTHP = def.InjectionControls(st).HasTHPControl()
		} else {
			hasTHP = def.ProductionControls(st).HasTHPControl()
		}
		if !hasTHP {
			newWell.Thp = 0
		}
	}
}

// grupSafetyFactor nudges the seed bhp away from the reservoir pressure:
// injectors slightly above (net sink), producers slightly below (net
// source).
func grupSafetyFactor(injector bool) float64 {
	if injector {
		return 1.01
	}
	return 0.99
}

func (ws *WellState) setPhaseRate(sws *SingleWellState, p phase.Phase, rate float64) {
	if pos, ok := ws.pu.Pos(p); ok {
		sws.SurfaceRates[pos] = rate
	}
}

// updateWellsDefaultALQ refreshes the schedule default artificial-lift
// quantity of every producer.
func (ws *WellState) updateWellsDefaultALQ(wells []schedule.Well) {
	for i := range wells {
		if wells[i].IsProducer() {
			ws.alq.UpdateDefault(wells[i].Name, wells[i].ALQ)
		}
	}
}

// Resize initializes the container to the correct shape with zeroed cell
// pressures, for callers that need a sized container before a pressure
// field exists. Segment state is built when handleMSWells is set.
func (ws *WellState) Resize(step *schedule.Step, wellInfo []*parallel.WellInfo,
	handleMSWells bool, numCells int, perfData [][]PerforationData, st *summary.State) error {

	tmp := make([]float64, numCells)
	if err := ws.Init(tmp, step, wellInfo, nil, perfData, st); err != nil {
		return err
	}
	if handleMSWells {
		ws.InitSegments(step.Wells, nil)
	}
	return nil
}

// Size returns the number of wells in the container.
func (ws *WellState) Size() int { return len(ws.wells) }

// Index returns the container index of the named well.
func (ws *WellState) Index(name string) (int, bool) {
	i, ok := ws.index[name]
	return i, ok
}

// Name returns the name of the well at the given index.
func (ws *WellState) Name(i int) string { return ws.wells[i].Name }

// Well returns the state of the well at the given index.
func (ws *WellState) Well(i int) *SingleWellState { return ws.wells[i] }

// WellByName returns the named well's state.
func (ws *WellState) WellByName(name string) (*SingleWellState, error) {
	i, ok := ws.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWellNotFound, name)
	}
	return ws.wells[i], nil
}

// PhaseUsage returns the phase usage the container was built with.
func (ws *WellState) PhaseUsage() phase.Usage { return ws.pu }

// GlobalInfo returns the cross-process well registry for this step.
func (ws *WellState) GlobalInfo() *GlobalWellInfo { return ws.global }

// ALQ returns the well's current artificial-lift quantity.
func (ws *WellState) ALQ(name string) float64 { return ws.alq.Get(name) }

// SetALQ sets the well's artificial-lift quantity.
func (ws *WellState) SetALQ(name string, value float64) { ws.alq.Set(name, value) }

// CurrentWellRates returns the group-exchange rate vector of the named
// well, as last set locally or received through CommunicateGroupRates.
func (ws *WellState) CurrentWellRates(name string) ([]float64, error) {
	wr, ok := ws.rates[name]
	if !ok {
		return nil, fmt.Errorf("%w: no rates for well %s", ErrWellNotFound, name)
	}
	return wr.rates, nil
}

// SetCurrentWellRates stores this process's view of the named well's rate
// vector ahead of the group-rate reduction.
func (ws *WellState) SetCurrentWellRates(name string, rates []float64) error {
	wr, ok := ws.rates[name]
	if !ok {
		return fmt.Errorf("%w: no rates for well %s", ErrWellNotFound, name)
	}
	copy(wr.rates, rates)
	return nil
}

// WellIsOwned reports whether this process owns the well at the given
// index.
func (ws *WellState) WellIsOwned(i int) bool {
	return ws.wells[i].ParallelInfo.IsOwner()
}

// WellIsOwnedByName reports whether this process owns the named well.
func (ws *WellState) WellIsOwnedByName(name string) (bool, error) {
	i, ok := ws.index[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrWellNotFound, name)
	}
	return ws.WellIsOwned(i), nil
}

// ParallelWellInfo returns the partition descriptor of the well at the
// given index.
func (ws *WellState) ParallelWellInfo(i int) *parallel.WellInfo {
	return ws.wells[i].ParallelInfo
}

// OpenWell marks the well at the given index open.
func (ws *WellState) OpenWell(i int) { ws.wells[i].Open() }

// StopWell stops the well at the given index.
func (ws *WellState) StopWell(i int) { ws.wells[i].Stop() }

// ShutWell shuts the well at the given index.
func (ws *WellState) ShutWell(i int) { ws.wells[i].Shut() }

// UpdateStatus applies a status transition to the well at the given index.
func (ws *WellState) UpdateStatus(i int, status schedule.Status) {
	ws.wells[i].UpdateStatus(status)
}

// ResetConnectionTransFactors replaces the connection transmissibility
// factors of one well with freshly computed values. The supplied data must
// describe exactly the well's existing connections; any disagreement in
// count, cell mapping or saturation region is an upstream snapshot
// inconsistency and fails hard.
func (ws *WellState) ResetConnectionTransFactors(i int, newPerfData []PerforationData) error {
	sws := ws.wells[i]
	pd := sws.Perf
	if pd.Size() != len(newPerfData) {
		return fmt.Errorf("%w: well %s has %d connections, got %d",
			ErrConnectionMismatch, sws.Name, pd.Size(), len(newPerfData))
	}
	for conn := range newPerfData {
		if pd.CellIndex[conn] != newPerfData[conn].CellIndex {
			return fmt.Errorf("%w: cell index mismatch in connection %d of well %s",
				ErrConnectionMismatch, conn, sws.Name)
		}
		if pd.SatNum[conn] != newPerfData[conn].SatNum {
			return fmt.Errorf("%w: saturation function table mismatch in connection %d of well %s",
				ErrConnectionMismatch, conn, sws.Name)
		}
		pd.TransFactor[conn] = newPerfData[conn].TransFactor
	}
	return nil
}
