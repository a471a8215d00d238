package wellstate

import (
	"math"
	"testing"

	"github.com/wellflow-xyz/go-wellflow/phase"
	"github.com/wellflow-xyz/go-wellflow/schedule"
)

// branchedWell builds a producer on a branched segment network:
//
//	seg 1 (top) <- seg 2 <- seg 3 (perf 1)
//	                     <- seg 4 (perfs 2, 3)
//	perf 0 attaches to seg 2; seg 5 hangs off seg 4 with no perforations.
func branchedWell() schedule.Well {
	def := oratProducer("MS1", 800, 50e5, 0, 1, 2, 3)
	def.Connections[0].Segment = 2
	def.Connections[1].Segment = 3
	def.Connections[2].Segment = 4
	def.Connections[3].Segment = 4
	def.Segments = &schedule.SegmentSet{Segments: []schedule.Segment{
		{Number: 1, Outlet: 0},
		{Number: 2, Outlet: 1},
		{Number: 3, Outlet: 2},
		{Number: 4, Outlet: 2},
		{Number: 5, Outlet: 4},
	}}
	return def
}

func TestInitSegmentsAggregation(t *testing.T) {
	pu := phase.AllPhases()
	np := pu.NumPhases()
	step := &schedule.Step{Wells: []schedule.Well{branchedWell()}}
	ws := New(pu)
	mustInit(t, ws, []float64{100e5, 110e5, 120e5, 130e5}, step, nil)

	sws, _ := ws.WellByName("MS1")
	watPos, _ := pu.Pos(phase.Water)
	oilPos, _ := pu.Pos(phase.Oil)
	gasPos, _ := pu.Pos(phase.Gas)
	for perf := 0; perf < sws.Perf.Size(); perf++ {
		r := sws.Perf.PhaseRatesOf(perf)
		r[watPos] = float64(1 + perf)
		r[oilPos] = float64(10 + perf)
		r[gasPos] = 0.5
	}

	ws.InitSegments(step.Wells, nil)

	seg := sws.Segments
	if seg == nil || seg.Size() != 5 {
		t.Fatalf("Expected 5 segments, got %v", seg)
	}

	// Top segment holds the well totals, with the gas conditioning applied.
	top := seg.RatesOf(0)
	if top[watPos] != 1+2+3+4 {
		t.Errorf("Expected top water rate 10, got %g", top[watPos])
	}
	if top[oilPos] != 10+11+12+13 {
		t.Errorf("Expected top oil rate 46, got %g", top[oilPos])
	}
	if top[gasPos] != 4*0.5*GasRateConditioningFactor {
		t.Errorf("Expected top gas rate 200, got %g", top[gasPos])
	}

	// Branch sums: segment 4 drains perfs 2 and 3, segment 2 adds perf 0 to
	// both inlet branches. Segment 5 has no feed at all.
	if got := seg.RatesOf(3)[oilPos]; got != 12+13 {
		t.Errorf("Expected branch oil rate 25, got %g", got)
	}
	if got := seg.RatesOf(1)[oilPos]; got != 10+11+12+13 {
		t.Errorf("Expected trunk oil rate 46, got %g", got)
	}
	for p := 0; p < np; p++ {
		if got := seg.RatesOf(4)[p]; got != 0 {
			t.Errorf("Expected zero rate in unperforated segment, phase %d got %g", p, got)
		}
	}

	// The conditioning must not leak into the stored perforation rates.
	for perf := 0; perf < sws.Perf.Size(); perf++ {
		if got := sws.Perf.PhaseRatesOf(perf)[gasPos]; got != 0.5 {
			t.Errorf("Expected stored perf %d gas rate 0.5, got %g", perf, got)
		}
	}
}

func TestInitSegmentsPressureSeeding(t *testing.T) {
	step := &schedule.Step{Wells: []schedule.Well{branchedWell()}}
	pressures := []float64{100e5, 110e5, 120e5, 130e5}
	ws := New(phase.AllPhases())
	mustInit(t, ws, pressures, step, nil)

	sws, _ := ws.WellByName("MS1")
	sws.Bhp = 95e5
	ws.InitSegments(step.Wells, nil)

	seg := sws.Segments
	if seg.Pressure[0] != 95e5 {
		t.Errorf("Expected top segment at bhp 95e5, got %g", seg.Pressure[0])
	}
	// Perforated segments take their first perforation's cell pressure.
	if seg.Pressure[1] != pressures[0] {
		t.Errorf("Expected segment 2 pressure %g, got %g", pressures[0], seg.Pressure[1])
	}
	if seg.Pressure[2] != pressures[1] {
		t.Errorf("Expected segment 3 pressure %g, got %g", pressures[1], seg.Pressure[2])
	}
	if seg.Pressure[3] != pressures[2] {
		t.Errorf("Expected segment 4 pressure %g, got %g", pressures[2], seg.Pressure[3])
	}
	// The unperforated tail inherits its outlet's pressure.
	if seg.Pressure[4] != seg.Pressure[3] {
		t.Errorf("Expected segment 5 to inherit outlet pressure %g, got %g", seg.Pressure[3], seg.Pressure[4])
	}
}

func TestInitSegmentsCarryover(t *testing.T) {
	pu := phase.AllPhases()
	step := &schedule.Step{Wells: []schedule.Well{branchedWell()}}
	pressures := []float64{100e5, 110e5, 120e5, 130e5}

	prev := New(pu)
	mustInit(t, prev, pressures, step, nil)
	prev.InitSegments(step.Wells, nil)
	pws, _ := prev.WellByName("MS1")
	pws.Segments.Pressure[2] = 42e5
	pws.Segments.RatesOf(1)[1] = -333

	next := New(pu)
	mustInit(t, next, pressures, step, prev)
	next.InitSegments(step.Wells, prev)

	got, _ := next.WellByName("MS1")
	if got.Segments.Pressure[2] != 42e5 {
		t.Errorf("Expected carried segment pressure 42e5, got %g", got.Segments.Pressure[2])
	}
	if got.Segments.RatesOf(1)[1] != -333 {
		t.Errorf("Expected carried segment rate -333, got %g", got.Segments.RatesOf(1)[1])
	}
	// The copy must be deep: mutating the old state cannot touch the new.
	pws.Segments.Pressure[2] = 0
	if got.Segments.Pressure[2] != 42e5 {
		t.Errorf("Expected deep segment copy, got aliasing")
	}
}

func TestInitSegmentsCarryoverSkipsChangedTopology(t *testing.T) {
	pu := phase.AllPhases()
	pressures := []float64{100e5, 110e5, 120e5, 130e5}

	oldStep := &schedule.Step{Wells: []schedule.Well{branchedWell()}}
	prev := New(pu)
	mustInit(t, prev, pressures, oldStep, nil)
	prev.InitSegments(oldStep.Wells, nil)
	pws, _ := prev.WellByName("MS1")
	pws.Segments.Pressure[0] = 42e5

	shrunk := branchedWell()
	shrunk.Segments = &schedule.SegmentSet{Segments: []schedule.Segment{
		{Number: 1, Outlet: 0},
		{Number: 2, Outlet: 1},
	}}
	shrunk.Connections[0].Segment = 2
	shrunk.Connections[1].Segment = 2
	shrunk.Connections[2].Segment = 2
	shrunk.Connections[3].Segment = 2
	newStep := &schedule.Step{Wells: []schedule.Well{shrunk}}

	next := New(pu)
	mustInit(t, next, pressures, newStep, prev)
	next.InitSegments(newStep.Wells, prev)

	got, _ := next.WellByName("MS1")
	if got.Segments.Size() != 2 {
		t.Fatalf("Expected 2 segments after topology change, got %d", got.Segments.Size())
	}
	if got.Segments.Pressure[0] == 42e5 {
		t.Errorf("Expected fresh segment state after topology change, got carried pressure")
	}
}

func TestCalculateSegmentRates(t *testing.T) {
	// Linear chain of three segments with one perforation each, single phase.
	inlets := [][]int{{1}, {2}, nil}
	perfs := [][]int{{0}, {1}, {2}}
	perfRates := []float64{-1, -2, -4}
	segRates := make([]float64, 3)
	calculateSegmentRates(inlets, perfs, perfRates, 1, 0, segRates)

	want := []float64{-7, -6, -4}
	for i := range want {
		if math.Abs(segRates[i]-want[i]) > 1e-15 {
			t.Errorf("Expected segment %d rate %g, got %g", i, want[i], segRates[i])
		}
	}
}
