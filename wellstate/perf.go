package wellstate

// PerforationData describes one locally visible open connection of a well,
// as supplied by the grid/schedule layer. Under domain decomposition a
// process passes only the connections whose cells it holds.
type PerforationData struct {
	CellIndex   int
	SatNum      int
	TransFactor float64
}

// PerfData holds the per-connection state of one well. All arrays are
// indexed by local perforation number; PhaseRates and ProdIndex are flat
// arrays of numPhases values per perforation.
type PerfData struct {
	np int

	CellIndex     []int
	SatNum        []int
	Pressure      []float64
	ReservoirRate []float64
	PhaseRates    []float64
	ProdIndex     []float64
	TransFactor   []float64

	// Extra-component rates, allocated only when the run tracks them.
	SolventRates []float64
	PolymerRates []float64
	BrineRates   []float64
}

// newPerfData creates zeroed per-connection state for the given local
// perforations.
func newPerfData(np int, perfs []PerforationData, solvent, polymer, brine bool) *PerfData {
	n := len(perfs)
	pd := &PerfData{
		np:            np,
		CellIndex:     make([]int, n),
		SatNum:        make([]int, n),
		Pressure:      make([]float64, n),
		ReservoirRate: make([]float64, n),
		PhaseRates:    make([]float64, n*np),
		ProdIndex:     make([]float64, n*np),
		TransFactor:   make([]float64, n),
	}
	for i, p := range perfs {
		pd.CellIndex[i] = p.CellIndex
		pd.SatNum[i] = p.SatNum
		pd.TransFactor[i] = p.TransFactor
	}
	if solvent {
		pd.SolventRates = make([]float64, n)
	}
	if polymer {
		pd.PolymerRates = make([]float64, n)
	}
	if brine {
		pd.BrineRates = make([]float64, n)
	}
	return pd
}

// Size returns the number of local perforations.
func (pd *PerfData) Size() int { return len(pd.CellIndex) }

// Empty reports whether the well has no local perforations.
func (pd *PerfData) Empty() bool { return len(pd.CellIndex) == 0 }

// PhaseRatesOf returns the per-phase rate slice of one perforation,
// aliasing the underlying array.
func (pd *PerfData) PhaseRatesOf(perf int) []float64 {
	return pd.PhaseRates[perf*pd.np : (perf+1)*pd.np]
}

// ProdIndexOf returns the per-phase productivity index slice of one
// perforation, aliasing the underlying array.
func (pd *PerfData) ProdIndexOf(perf int) []float64 {
	return pd.ProdIndex[perf*pd.np : (perf+1)*pd.np]
}

// TryAssign copies the dynamic values of prev into pd when both hold the
// same number of perforations, and reports whether the copy happened.
// Values are matched positionally: connections are assumed to keep a
// stable order between steps.
func (pd *PerfData) TryAssign(prev *PerfData) bool {
	if prev == nil || pd.Size() != prev.Size() || pd.np != prev.np {
		return false
	}
	copy(pd.Pressure, prev.Pressure)
	copy(pd.ReservoirRate, prev.ReservoirRate)
	copy(pd.PhaseRates, prev.PhaseRates)
	copy(pd.ProdIndex, prev.ProdIndex)
	if pd.SolventRates != nil && prev.SolventRates != nil {
		copy(pd.SolventRates, prev.SolventRates)
	}
	if pd.PolymerRates != nil && prev.PolymerRates != nil {
		copy(pd.PolymerRates, prev.PolymerRates)
	}
	if pd.BrineRates != nil && prev.BrineRates != nil {
		copy(pd.BrineRates, prev.BrineRates)
	}
	return true
}

func sum(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s
}
