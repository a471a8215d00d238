package schedule

import "github.com/wellflow-xyz/go-wellflow/summary"

// InjectorCMode is the active control mode of an injection well.
type InjectorCMode int

const (
	InjectorCModeNone InjectorCMode = iota
	InjectorRATE                    // surface rate target
	InjectorRESV                    // reservoir rate target
	InjectorBHP                     // bottom-hole pressure limit
	InjectorTHP                     // tubing-head pressure limit
	InjectorGRUP                    // deferred to group control
)

// String returns the schedule keyword for the mode.
func (m InjectorCMode) String() string {
	switch m {
	case InjectorRATE:
		return "RATE"
	case InjectorRESV:
		return "RESV"
	case InjectorBHP:
		return "BHP"
	case InjectorTHP:
		return "THP"
	case InjectorGRUP:
		return "GRUP"
	default:
		return "NONE"
	}
}

// ProducerCMode is the active control mode of a production well.
type ProducerCMode int

const (
	ProducerCModeNone ProducerCMode = iota
	ProducerORAT                    // oil rate target
	ProducerWRAT                    // water rate target
	ProducerGRAT                    // gas rate target
	ProducerLRAT                    // liquid rate target
	ProducerRESV                    // reservoir rate target
	ProducerBHP                     // bottom-hole pressure limit
	ProducerTHP                     // tubing-head pressure limit
	ProducerGRUP                    // deferred to group control
)

// String returns the schedule keyword for the mode.
func (m ProducerCMode) String() string {
	switch m {
	case ProducerORAT:
		return "ORAT"
	case ProducerWRAT:
		return "WRAT"
	case ProducerGRAT:
		return "GRAT"
	case ProducerLRAT:
		return "LRAT"
	case ProducerRESV:
		return "RESV"
	case ProducerBHP:
		return "BHP"
	case ProducerTHP:
		return "THP"
	case ProducerGRUP:
		return "GRUP"
	default:
		return "NONE"
	}
}

// InjectorType selects which phase an injection well injects.
type InjectorType int

const (
	InjectWater InjectorType = iota
	InjectGas
	InjectOil
	InjectMulti
)

// Target is a control target that is either a literal value or a named
// value resolved through the summary state (a user-defined argument).
type Target struct {
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value"`
}

// Resolve returns the concrete numeric target for this step.
// Named targets fall back to the literal value when unresolved.
func (t Target) Resolve(st *summary.State) float64 {
	if t.Name != "" && st != nil {
		return st.Get(t.Name, t.Value)
	}
	return t.Value
}

// InjectionTargets holds the raw injection control targets of a well
// definition, before summary resolution.
type InjectionTargets struct {
	CMode         InjectorCMode `json:"cmode"`
	Type          InjectorType  `json:"type"`
	SurfaceRate   Target        `json:"surface_rate"`
	ReservoirRate Target        `json:"reservoir_rate"`
	BhpLimit      Target        `json:"bhp_limit"`
	ThpLimit      Target        `json:"thp_limit"`
	Temperature   float64       `json:"temperature"`
	HasTHP        bool          `json:"has_thp"` // a THP limit is declared
}

// ProductionTargets holds the raw production control targets of a well
// definition, before summary resolution.
type ProductionTargets struct {
	CMode      ProducerCMode `json:"cmode"`
	OilRate    Target        `json:"oil_rate"`
	WaterRate  Target        `json:"water_rate"`
	GasRate    Target        `json:"gas_rate"`
	LiquidRate Target        `json:"liquid_rate"`
	ResvRate   Target        `json:"resv_rate"`
	BhpLimit   Target        `json:"bhp_limit"`
	ThpLimit   Target        `json:"thp_limit"`
	HasTHP     bool          `json:"has_thp"`
}

// InjectionControls are the resolved injection controls for one step.
type InjectionControls struct {
	CMode         InjectorCMode
	Type          InjectorType
	SurfaceRate   float64
	ReservoirRate float64
	BhpLimit      float64
	ThpLimit      float64
	Temperature   float64
	hasTHP        bool
}

// HasTHPControl reports whether a tubing-head pressure limit is declared.
func (c InjectionControls) HasTHPControl() bool { return c.hasTHP }

// ProductionControls are the resolved production controls for one step.
type ProductionControls struct {
	CMode      ProducerCMode
	OilRate    float64
	WaterRate  float64
	GasRate    float64
	LiquidRate float64
	ResvRate   float64
	BhpLimit   float64
	ThpLimit   float64
	hasTHP     bool
}

// HasTHPControl reports whether a tubing-head pressure limit is declared.
func (c ProductionControls) HasTHPControl() bool { return c.hasTHP }

// InjectionControls resolves the well's injection targets for this step.
func (w *Well) InjectionControls(st *summary.State) InjectionControls {
	t := w.InjectionTargets
	return InjectionControls{
		CMode:         t.CMode,
		Type:          t.Type,
		SurfaceRate:   t.SurfaceRate.Resolve(st),
		ReservoirRate: t.ReservoirRate.Resolve(st),
		BhpLimit:      t.BhpLimit.Resolve(st),
		ThpLimit:      t.ThpLimit.Resolve(st),
		Temperature:   t.Temperature,
		hasTHP:        t.HasTHP,
	}
}

// ProductionControls resolves the well's production targets for this step.
func (w *Well) ProductionControls(st *summary.State) ProductionControls {
	t := w.ProductionTargets
	return ProductionControls{
		CMode:      t.CMode,
		OilRate:    t.OilRate.Resolve(st),
		WaterRate:  t.WaterRate.Resolve(st),
		GasRate:    t.GasRate.Resolve(st),
		LiquidRate: t.LiquidRate.Resolve(st),
		ResvRate:   t.ResvRate.Resolve(st),
		BhpLimit:   t.BhpLimit.Resolve(st),
		ThpLimit:   t.ThpLimit.Resolve(st),
		hasTHP:     t.HasTHP,
	}
}
