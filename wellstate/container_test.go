package wellstate

import (
	"errors"
	"math"
	"testing"

	"github.com/wellflow-xyz/go-wellflow/parallel"
	"github.com/wellflow-xyz/go-wellflow/phase"
	"github.com/wellflow-xyz/go-wellflow/schedule"
	"github.com/wellflow-xyz/go-wellflow/summary"
)

func openConns(cells ...int) []schedule.Connection {
	out := make([]schedule.Connection, len(cells))
	for i, c := range cells {
		out[i] = schedule.Connection{CellIndex: c, Open: true, TransFactor: 1.0}
	}
	return out
}

func perfsFor(def *schedule.Well) []PerforationData {
	var out []PerforationData
	for _, c := range def.Connections {
		if c.Open {
			out = append(out, PerforationData{CellIndex: c.CellIndex, SatNum: c.SatNum, TransFactor: c.TransFactor})
		}
	}
	return out
}

func serialSetup(step *schedule.Step) ([]*parallel.WellInfo, [][]PerforationData) {
	infos := make([]*parallel.WellInfo, len(step.Wells))
	perfs := make([][]PerforationData, len(step.Wells))
	for i := range step.Wells {
		infos[i] = parallel.SerialWellInfo(step.Wells[i].Name)
		perfs[i] = perfsFor(&step.Wells[i])
	}
	return infos, perfs
}

func mustInit(t *testing.T, ws *WellState, pressures []float64, step *schedule.Step, prev *WellState) {
	t.Helper()
	infos, perfs := serialSetup(step)
	if err := ws.Init(pressures, step, infos, prev, perfs, summary.New()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
}

func bhpProducer(name string, limit float64, cells ...int) schedule.Well {
	return schedule.Well{
		Name:        name,
		Producer:    true,
		Status:      schedule.StatusOpen,
		Connections: openConns(cells...),
		ProductionTargets: schedule.ProductionTargets{
			CMode:    schedule.ProducerBHP,
			BhpLimit: schedule.Target{Value: limit},
		},
	}
}

func oratProducer(name string, rate, bhpLimit float64, cells ...int) schedule.Well {
	return schedule.Well{
		Name:        name,
		Producer:    true,
		Status:      schedule.StatusOpen,
		Connections: openConns(cells...),
		ProductionTargets: schedule.ProductionTargets{
			CMode:    schedule.ProducerORAT,
			OilRate:  schedule.Target{Value: rate},
			BhpLimit: schedule.Target{Value: bhpLimit},
		},
	}
}

func grupInjector(name string, cells ...int) schedule.Well {
	return schedule.Well{
		Name:        name,
		Injector:    true,
		Status:      schedule.StatusOpen,
		Connections: openConns(cells...),
		InjectionTargets: schedule.InjectionTargets{
			CMode:       schedule.InjectorGRUP,
			Type:        schedule.InjectWater,
			Temperature: 350,
		},
	}
}

func TestInitBhpControlledProducer(t *testing.T) {
	step := &schedule.Step{Wells: []schedule.Well{bhpProducer("P1", 200e5, 0)}}
	ws := New(phase.AllPhases())
	mustInit(t, ws, []float64{210e5}, step, nil)

	sws, err := ws.WellByName("P1")
	if err != nil {
		t.Fatalf("WellByName failed: %v", err)
	}
	if sws.Bhp != 200e5 {
		t.Errorf("Expected bhp=200e5 (the limit), got %g", sws.Bhp)
	}
	for p, v := range sws.SurfaceRates {
		if v != 0 {
			t.Errorf("Expected zero surface rate for phase %d, got %g", p, v)
		}
	}
	if sws.Perf.Pressure[0] != 210e5 {
		t.Errorf("Expected connection pressure 210e5, got %g", sws.Perf.Pressure[0])
	}
}

func TestInitGrupInjector(t *testing.T) {
	step := &schedule.Step{Wells: []schedule.Well{grupInjector("I1", 0)}}
	ws := New(phase.AllPhases())
	mustInit(t, ws, []float64{100e5}, step, nil)

	sws, _ := ws.WellByName("I1")
	if math.Abs(sws.Bhp-101e5) > 1e-6 {
		t.Errorf("Expected bhp=101e5 (1.01 safety margin), got %g", sws.Bhp)
	}
	for p, v := range sws.SurfaceRates {
		if v != 0 {
			t.Errorf("Expected zero surface rate for phase %d, got %g", p, v)
		}
	}
	if sws.Temperature != 350 {
		t.Errorf("Expected injection temperature 350, got %g", sws.Temperature)
	}
}

func TestInitGrupProducerSafetyFactor(t *testing.T) {
	def := bhpProducer("P1", 0, 0)
	def.ProductionTargets.CMode = schedule.ProducerGRUP
	step := &schedule.Step{Wells: []schedule.Well{def}}
	ws := New(phase.AllPhases())
	mustInit(t, ws, []float64{100e5}, step, nil)

	sws, _ := ws.WellByName("P1")
	if math.Abs(sws.Bhp-99e5) > 1e-6 {
		t.Errorf("Expected bhp=99e5 (0.99 safety margin), got %g", sws.Bhp)
	}
}

func TestInitRateTargetProducer(t *testing.T) {
	pu := phase.AllPhases()
	step := &schedule.Step{Wells: []schedule.Well{oratProducer("P1", 800, 50e5, 0, 1, 2, 3)}}
	ws := New(pu)
	mustInit(t, ws, []float64{100e5, 101e5, 102e5, 103e5}, step, nil)

	sws, _ := ws.WellByName("P1")
	oilPos, _ := pu.Pos(phase.Oil)
	if sws.SurfaceRates[oilPos] != -800 {
		t.Errorf("Expected oil rate -800 (negative producer convention), got %g", sws.SurfaceRates[oilPos])
	}
	for p, v := range sws.SurfaceRates {
		if p != oilPos && v != 0 {
			t.Errorf("Expected zero rate for non-target phase %d, got %g", p, v)
		}
	}
	// Aggregate rate spread evenly over the 4 open connections.
	for perf := 0; perf < sws.Perf.Size(); perf++ {
		if got := sws.Perf.PhaseRatesOf(perf)[oilPos]; got != -200 {
			t.Errorf("Expected perf %d oil rate -200, got %g", perf, got)
		}
	}
	// Not bhp controlled: seeded slightly below the first cell pressure.
	if math.Abs(sws.Bhp-0.99*100e5) > 1e-6 {
		t.Errorf("Expected bhp=0.99*100e5, got %g", sws.Bhp)
	}
}

func TestInitRateTargetInjector(t *testing.T) {
	pu := phase.AllPhases()
	def := schedule.Well{
		Name:        "I1",
		Injector:    true,
		Status:      schedule.StatusOpen,
		Connections: openConns(0),
		InjectionTargets: schedule.InjectionTargets{
			CMode:       schedule.InjectorRATE,
			Type:        schedule.InjectWater,
			SurfaceRate: schedule.Target{Value: 500},
			Temperature: 300,
		},
	}
	step := &schedule.Step{Wells: []schedule.Well{def}}
	ws := New(pu)
	mustInit(t, ws, []float64{100e5}, step, nil)

	sws, _ := ws.WellByName("I1")
	watPos, _ := pu.Pos(phase.Water)
	if sws.SurfaceRates[watPos] != 500 {
		t.Errorf("Expected water rate 500, got %g", sws.SurfaceRates[watPos])
	}
	for p, v := range sws.SurfaceRates {
		if p != watPos && v != 0 {
			t.Errorf("Expected zero rate for non-target phase %d, got %g", p, v)
		}
	}
}

func TestInitResolvesNamedTargets(t *testing.T) {
	def := bhpProducer("P1", 0, 0)
	def.ProductionTargets.BhpLimit = schedule.Target{Name: "FUBHP", Value: 1}
	step := &schedule.Step{Wells: []schedule.Well{def}}

	st := summary.New()
	st.Set("FUBHP", 180e5)

	ws := New(phase.AllPhases())
	infos, perfs := serialSetup(step)
	if err := ws.Init([]float64{210e5}, step, infos, nil, perfs, st); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	sws, _ := ws.WellByName("P1")
	if sws.Bhp != 180e5 {
		t.Errorf("Expected bhp from resolved summary value 180e5, got %g", sws.Bhp)
	}
}

func TestInitRejectsAmbiguousRole(t *testing.T) {
	both := schedule.Well{Name: "W", Injector: true, Producer: true, Connections: openConns(0)}
	neither := schedule.Well{Name: "W", Connections: openConns(0)}

	for _, def := range []schedule.Well{both, neither} {
		step := &schedule.Step{Wells: []schedule.Well{def}}
		infos, perfs := serialSetup(step)
		ws := New(phase.AllPhases())
		err := ws.Init([]float64{1e5}, step, infos, nil, perfs, summary.New())
		if !errors.Is(err, ErrInvalidWellRole) {
			t.Errorf("Expected ErrInvalidWellRole, got %v", err)
		}
	}
}

func TestInitPlaceholderWithoutConnections(t *testing.T) {
	def := bhpProducer("P1", 200e5)
	def.Connections = nil
	step := &schedule.Step{Wells: []schedule.Well{def}}
	ws := New(phase.AllPhases())
	mustInit(t, ws, []float64{}, step, nil)

	sws, _ := ws.WellByName("P1")
	if sws.Bhp != 0 {
		t.Errorf("Expected placeholder well to keep zero bhp, got %g", sws.Bhp)
	}
	if !sws.Perf.Empty() {
		t.Errorf("Expected no perforations, got %d", sws.Perf.Size())
	}
}

func TestInitStopWell(t *testing.T) {
	bhpStopped := bhpProducer("P1", 200e5, 0)
	bhpStopped.Status = schedule.StatusStop
	rateStopped := oratProducer("P2", 800, 50e5, 1)
	rateStopped.Status = schedule.StatusStop
	step := &schedule.Step{Wells: []schedule.Well{bhpStopped, rateStopped}}

	ws := New(phase.AllPhases())
	mustInit(t, ws, []float64{210e5, 150e5}, step, nil)

	p1, _ := ws.WellByName("P1")
	if p1.Status != schedule.StatusStop {
		t.Errorf("Expected STOP status, got %v", p1.Status)
	}
	if p1.Bhp != 200e5 {
		t.Errorf("Expected stopped bhp-controlled well at the limit, got %g", p1.Bhp)
	}
	p2, _ := ws.WellByName("P2")
	if p2.Bhp != 150e5 {
		t.Errorf("Expected stopped rate-controlled well at first cell pressure, got %g", p2.Bhp)
	}
	for _, sws := range []*SingleWellState{p1, p2} {
		for p, v := range sws.SurfaceRates {
			if v != 0 {
				t.Errorf("Expected zero rates in stopped well %s phase %d, got %g", sws.Name, p, v)
			}
		}
	}
}

func TestInitShutWell(t *testing.T) {
	def := oratProducer("P1", 800, 50e5, 0)
	def.Status = schedule.StatusShut
	step := &schedule.Step{Wells: []schedule.Well{def}}
	ws := New(phase.AllPhases())
	mustInit(t, ws, []float64{210e5}, step, nil)

	sws, _ := ws.WellByName("P1")
	if sws.Status != schedule.StatusShut {
		t.Errorf("Expected SHUT status, got %v", sws.Status)
	}
	if sws.Bhp != 0 || sws.Thp != 0 {
		t.Errorf("Expected zero pressures in shut well, got bhp=%g thp=%g", sws.Bhp, sws.Thp)
	}
}

func TestInitThpSeededFromLimit(t *testing.T) {
	def := oratProducer("P1", 800, 50e5, 0)
	def.ProductionTargets.HasTHP = true
	def.ProductionTargets.ThpLimit = schedule.Target{Value: 30e5}
	step := &schedule.Step{Wells: []schedule.Well{def}}
	ws := New(phase.AllPhases())
	mustInit(t, ws, []float64{100e5}, step, nil)

	sws, _ := ws.WellByName("P1")
	if sws.Thp != 30e5 {
		t.Errorf("Expected thp=30e5 from the declared limit, got %g", sws.Thp)
	}
}

func TestInitIdempotent(t *testing.T) {
	step := &schedule.Step{Wells: []schedule.Well{
		oratProducer("P1", 800, 50e5, 0, 1),
		grupInjector("I1", 2),
	}}
	pressures := []float64{100e5, 110e5, 120e5}

	a := New(phase.AllPhases())
	b := New(phase.AllPhases())
	mustInit(t, a, pressures, step, nil)
	mustInit(t, b, pressures, step, nil)

	for i := 0; i < a.Size(); i++ {
		wa, wb := a.Well(i), b.Well(i)
		if wa.Bhp != wb.Bhp || wa.Thp != wb.Thp {
			t.Errorf("Well %s: pressures differ between identical inits", wa.Name)
		}
		for p := range wa.SurfaceRates {
			if wa.SurfaceRates[p] != wb.SurfaceRates[p] {
				t.Errorf("Well %s phase %d: rates differ between identical inits", wa.Name, p)
			}
		}
		for k := range wa.Perf.PhaseRates {
			if wa.Perf.PhaseRates[k] != wb.Perf.PhaseRates[k] {
				t.Errorf("Well %s: perforation rates differ between identical inits", wa.Name)
			}
		}
	}
}

func TestCarryoverRoundTrip(t *testing.T) {
	pu := phase.AllPhases()
	step := &schedule.Step{Wells: []schedule.Well{oratProducer("P1", 800, 50e5, 0, 1)}}
	pressures := []float64{100e5, 110e5}

	prev := New(pu)
	mustInit(t, prev, pressures, step, nil)

	// Solver moves the state during the step.
	sws, _ := prev.WellByName("P1")
	sws.SurfaceRates[0] = -12.5
	sws.SurfaceRates[1] = -640
	sws.SurfaceRates[2] = -77
	sws.ReservoirRates[1] = -650
	sws.WellPotentials[1] = 900
	sws.ProductivityIndex[1] = 3.5

	next := New(pu)
	mustInit(t, next, pressures, step, prev)

	got, _ := next.WellByName("P1")
	for p, want := range []float64{-12.5, -640, -77} {
		if got.SurfaceRates[p] != want {
			t.Errorf("Expected carried surface rate %g for phase %d, got %g", want, p, got.SurfaceRates[p])
		}
	}
	if got.ReservoirRates[1] != -650 {
		t.Errorf("Expected carried reservoir rate -650, got %g", got.ReservoirRates[1])
	}
	if got.WellPotentials[1] != 900 {
		t.Errorf("Expected carried potential 900, got %g", got.WellPotentials[1])
	}
	if got.ProductivityIndex[1] != 3.5 {
		t.Errorf("Expected carried productivity index 3.5, got %g", got.ProductivityIndex[1])
	}
	if got.ProductionCMode != schedule.ProducerORAT {
		t.Errorf("Expected carried control mode ORAT, got %v", got.ProductionCMode)
	}
}

func TestCarryoverControlChangeEventWins(t *testing.T) {
	pu := phase.AllPhases()
	oldStep := &schedule.Step{Wells: []schedule.Well{oratProducer("P1", 800, 50e5, 0)}}
	prev := New(pu)
	mustInit(t, prev, []float64{100e5}, oldStep, nil)
	pws, _ := prev.WellByName("P1")
	pws.ProductionCMode = schedule.ProducerGRUP // solver moved it to group control

	newStep := &schedule.Step{
		Wells:      []schedule.Well{bhpProducer("P1", 200e5, 0)},
		WellEvents: map[string]schedule.Events{"P1": schedule.ProductionUpdate},
	}
	next := New(pu)
	mustInit(t, next, []float64{210e5}, newStep, prev)

	got, _ := next.WellByName("P1")
	if got.ProductionCMode != schedule.ProducerBHP {
		t.Errorf("Expected new BHP control after control-change event, got %v", got.ProductionCMode)
	}
	// The carryover still warm-starts the rates.
	if got.SurfaceRates[1] == 0 {
		t.Errorf("Expected warm-started rates despite the control change")
	}
}

func TestCarryoverSkipsPreviouslyShutWell(t *testing.T) {
	pu := phase.AllPhases()
	step := &schedule.Step{Wells: []schedule.Well{oratProducer("P1", 800, 50e5, 0)}}
	prev := New(pu)
	mustInit(t, prev, []float64{100e5}, step, nil)
	pws, _ := prev.WellByName("P1")
	pws.Shut()
	pws.SurfaceRates[1] = -999 // stale value that must not leak

	next := New(pu)
	mustInit(t, next, []float64{100e5}, step, prev)
	got, _ := next.WellByName("P1")
	if got.SurfaceRates[1] != -800 {
		t.Errorf("Expected fresh target rate -800 for well shut in previous step, got %g", got.SurfaceRates[1])
	}
}

func TestCarryoverSkipsNewlyShutWell(t *testing.T) {
	pu := phase.AllPhases()
	openStep := &schedule.Step{Wells: []schedule.Well{oratProducer("P1", 800, 50e5, 0)}}
	prev := New(pu)
	mustInit(t, prev, []float64{100e5}, openStep, nil)

	shutDef := oratProducer("P1", 800, 50e5, 0)
	shutDef.Status = schedule.StatusShut
	next := New(pu)
	mustInit(t, next, []float64{100e5}, &schedule.Step{Wells: []schedule.Well{shutDef}}, prev)

	got, _ := next.WellByName("P1")
	for p, v := range got.SurfaceRates {
		if v != 0 {
			t.Errorf("Expected no carried rates into newly shut well, phase %d got %g", p, v)
		}
	}
}

func TestCarryoverSkipsRoleFlip(t *testing.T) {
	pu := phase.AllPhases()
	prodStep := &schedule.Step{Wells: []schedule.Well{oratProducer("W1", 800, 50e5, 0)}}
	prev := New(pu)
	mustInit(t, prev, []float64{100e5}, prodStep, nil)

	injStep := &schedule.Step{Wells: []schedule.Well{grupInjector("W1", 0)}}
	next := New(pu)
	mustInit(t, next, []float64{100e5}, injStep, prev)

	got, _ := next.WellByName("W1")
	for p, v := range got.SurfaceRates {
		if v != 0 {
			t.Errorf("Expected zero rates after injector/producer flip, phase %d got %g", p, v)
		}
	}
}

func TestCarryoverRedistributesOnConnectionCountChange(t *testing.T) {
	pu := phase.AllPhases()
	oilPos, _ := pu.Pos(phase.Oil)

	oldStep := &schedule.Step{Wells: []schedule.Well{oratProducer("P1", 800, 50e5, 0, 1, 2, 3)}}
	prev := New(pu)
	mustInit(t, prev, []float64{100e5, 100e5, 100e5, 100e5, 100e5, 100e5}, oldStep, nil)

	newStep := &schedule.Step{Wells: []schedule.Well{oratProducer("P1", 800, 50e5, 0, 1, 2, 3, 4, 5)}}
	next := New(pu)
	mustInit(t, next, []float64{100e5, 100e5, 100e5, 100e5, 100e5, 100e5}, newStep, prev)

	got, _ := next.WellByName("P1")
	if got.Perf.Size() != 6 {
		t.Fatalf("Expected 6 perforations, got %d", got.Perf.Size())
	}
	want := -800.0 / 6.0
	for perf := 0; perf < 6; perf++ {
		if v := got.Perf.PhaseRatesOf(perf)[oilPos]; math.Abs(v-want) > 1e-12 {
			t.Errorf("Expected perf %d oil rate %g, got %g", perf, want, v)
		}
	}
}

func TestCarryoverCopiesConnectionsPositionally(t *testing.T) {
	pu := phase.AllPhases()
	step := &schedule.Step{Wells: []schedule.Well{oratProducer("P1", 800, 50e5, 0, 1)}}
	prev := New(pu)
	mustInit(t, prev, []float64{100e5, 110e5}, step, nil)
	pws, _ := prev.WellByName("P1")
	pws.Perf.PhaseRatesOf(0)[1] = -300
	pws.Perf.PhaseRatesOf(1)[1] = -500

	next := New(pu)
	mustInit(t, next, []float64{100e5, 110e5}, step, prev)
	got, _ := next.WellByName("P1")
	if got.Perf.PhaseRatesOf(0)[1] != -300 || got.Perf.PhaseRatesOf(1)[1] != -500 {
		t.Errorf("Expected positional copy of perforation rates, got %g and %g",
			got.Perf.PhaseRatesOf(0)[1], got.Perf.PhaseRatesOf(1)[1])
	}
}

func TestCarryoverZeroesThpWithoutControl(t *testing.T) {
	pu := phase.AllPhases()
	withTHP := oratProducer("P1", 800, 50e5, 0)
	withTHP.ProductionTargets.HasTHP = true
	withTHP.ProductionTargets.ThpLimit = schedule.Target{Value: 30e5}
	prev := New(pu)
	mustInit(t, prev, []float64{100e5}, &schedule.Step{Wells: []schedule.Well{withTHP}}, nil)

	withoutTHP := oratProducer("P1", 800, 50e5, 0)
	next := New(pu)
	mustInit(t, next, []float64{100e5}, &schedule.Step{Wells: []schedule.Well{withoutTHP}}, prev)

	got, _ := next.WellByName("P1")
	if got.Thp != 0 {
		t.Errorf("Expected thp forced to zero without an active limit, got %g", got.Thp)
	}
}

func TestStopAndGrupWellsEndWithZeroRates(t *testing.T) {
	pu := phase.AllPhases()
	step := &schedule.Step{Wells: []schedule.Well{oratProducer("P1", 800, 50e5, 0)}}
	prev := New(pu)
	mustInit(t, prev, []float64{100e5}, step, nil)

	stopped := oratProducer("P1", 800, 50e5, 0)
	stopped.Status = schedule.StatusStop
	next := New(pu)
	mustInit(t, next, []float64{100e5}, &schedule.Step{Wells: []schedule.Well{stopped}}, prev)
	got, _ := next.WellByName("P1")
	for p, v := range got.SurfaceRates {
		if v != 0 {
			t.Errorf("Expected stopped well with zero rates after carryover, phase %d got %g", p, v)
		}
	}

	grup := oratProducer("P1", 800, 50e5, 0)
	grup.ProductionTargets.CMode = schedule.ProducerGRUP
	next2 := New(pu)
	mustInit(t, next2, []float64{100e5}, &schedule.Step{
		Wells:      []schedule.Well{grup},
		WellEvents: map[string]schedule.Events{"P1": schedule.ProductionUpdate},
	}, prev)
	got2, _ := next2.WellByName("P1")
	for p, v := range got2.SurfaceRates {
		if v != 0 {
			t.Errorf("Expected group-controlled well with zero rates after carryover, phase %d got %g", p, v)
		}
	}
}

func TestLookupFailures(t *testing.T) {
	ws := New(phase.AllPhases())
	mustInit(t, ws, []float64{}, &schedule.Step{}, nil)

	if _, err := ws.WellByName("NOPE"); !errors.Is(err, ErrWellNotFound) {
		t.Errorf("Expected ErrWellNotFound for unknown well, got %v", err)
	}
	if _, err := ws.CurrentWellRates("NOPE"); !errors.Is(err, ErrWellNotFound) {
		t.Errorf("Expected ErrWellNotFound for unknown rates, got %v", err)
	}
	if _, err := ws.WellIsOwnedByName("NOPE"); !errors.Is(err, ErrWellNotFound) {
		t.Errorf("Expected ErrWellNotFound for unknown ownership, got %v", err)
	}
}

func TestResetConnectionTransFactors(t *testing.T) {
	def := oratProducer("P1", 800, 50e5, 0, 1)
	def.Connections[0].SatNum = 3
	step := &schedule.Step{Wells: []schedule.Well{def}}
	ws := New(phase.AllPhases())
	mustInit(t, ws, []float64{100e5, 110e5}, step, nil)

	idx, _ := ws.Index("P1")
	fresh := []PerforationData{
		{CellIndex: 0, SatNum: 3, TransFactor: 2.5},
		{CellIndex: 1, SatNum: 0, TransFactor: 7.5},
	}
	if err := ws.ResetConnectionTransFactors(idx, fresh); err != nil {
		t.Fatalf("ResetConnectionTransFactors failed: %v", err)
	}
	sws := ws.Well(idx)
	if sws.Perf.TransFactor[0] != 2.5 || sws.Perf.TransFactor[1] != 7.5 {
		t.Errorf("Expected updated trans factors, got %v", sws.Perf.TransFactor)
	}

	// Count mismatch.
	err := ws.ResetConnectionTransFactors(idx, fresh[:1])
	if !errors.Is(err, ErrConnectionMismatch) {
		t.Errorf("Expected ErrConnectionMismatch on count change, got %v", err)
	}
	// Cell mapping mismatch.
	err = ws.ResetConnectionTransFactors(idx, []PerforationData{
		{CellIndex: 9, SatNum: 3}, {CellIndex: 1, SatNum: 0},
	})
	if !errors.Is(err, ErrConnectionMismatch) {
		t.Errorf("Expected ErrConnectionMismatch on cell change, got %v", err)
	}
	// Saturation region mismatch.
	err = ws.ResetConnectionTransFactors(idx, []PerforationData{
		{CellIndex: 0, SatNum: 8}, {CellIndex: 1, SatNum: 0},
	})
	if !errors.Is(err, ErrConnectionMismatch) {
		t.Errorf("Expected ErrConnectionMismatch on satnum change, got %v", err)
	}
}

func TestStatusTransitions(t *testing.T) {
	step := &schedule.Step{Wells: []schedule.Well{oratProducer("P1", 800, 50e5, 0)}}
	ws := New(phase.AllPhases())
	mustInit(t, ws, []float64{100e5}, step, nil)
	idx, _ := ws.Index("P1")

	ws.StopWell(idx)
	if got := ws.Well(idx).Status; got != schedule.StatusStop {
		t.Errorf("Expected STOP, got %v", got)
	}
	ws.OpenWell(idx)
	if got := ws.Well(idx).Status; got != schedule.StatusOpen {
		t.Errorf("Expected OPEN, got %v", got)
	}
	ws.UpdateStatus(idx, schedule.StatusShut)
	if got := ws.Well(idx).Status; got != schedule.StatusShut {
		t.Errorf("Expected SHUT, got %v", got)
	}
	if ws.Well(idx).Bhp != 0 {
		t.Errorf("Expected shut transition to zero bhp, got %g", ws.Well(idx).Bhp)
	}
}
