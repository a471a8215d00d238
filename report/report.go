// Package report defines the value types produced by well state report
// extraction: per-well pressures and rates, per-connection detail, and
// per-segment detail for multi-segment wells. These are plain data records
// handed to the output stage; nothing here mutates simulation state.
package report

import "github.com/wellflow-xyz/go-wellflow/schedule"

// RateType identifies one reported rate quantity.
type RateType string

const (
	WaterRate RateType = "wat"
	OilRate   RateType = "oil"
	GasRate   RateType = "gas"

	ReservoirWater RateType = "reservoir_water"
	ReservoirOil   RateType = "reservoir_oil"
	ReservoirGas   RateType = "reservoir_gas"

	ProductivityIndexWater RateType = "productivity_index_water"
	ProductivityIndexOil   RateType = "productivity_index_oil"
	ProductivityIndexGas   RateType = "productivity_index_gas"

	WellPotentialWater RateType = "well_potential_water"
	WellPotentialOil   RateType = "well_potential_oil"
	WellPotentialGas   RateType = "well_potential_gas"

	SolventRate RateType = "solvent"
	PolymerRate RateType = "polymer"
	BrineRate   RateType = "brine"

	ALQ          RateType = "alq"
	DissolvedGas RateType = "dissolved_gas"
	VaporizedOil RateType = "vaporized_oil"
)

// Rates is a sparse set of reported rate quantities.
type Rates map[RateType]float64

// Set stores a rate value.
func (r Rates) Set(t RateType, v float64) { r[t] = v }

// Get returns the stored value, or zero when the quantity was not reported.
func (r Rates) Get(t RateType) float64 { return r[t] }

// Has reports whether the quantity was reported.
func (r Rates) Has(t RateType) bool {
	_, ok := r[t]
	return ok
}

// CurrentControl identifies the active control mode of a well.
type CurrentControl struct {
	IsProducer bool                   `json:"is_producer"`
	Producer   schedule.ProducerCMode `json:"producer_cmode"`
	Injector   schedule.InjectorCMode `json:"injector_cmode"`
}

// Connection is the reported detail for one perforation.
type Connection struct {
	Index         int     `json:"index"` // global grid cell index
	Pressure      float64 `json:"pressure"`
	ReservoirRate float64 `json:"reservoir_rate"`
	TransFactor   float64 `json:"trans_factor"`
	Rates         Rates   `json:"rates"`
}

// Segment is the reported detail for one segment of a multi-segment well.
type Segment struct {
	Number           int     `json:"number"`
	Pressure         float64 `json:"pressure"`
	PressureDrop     float64 `json:"pressure_drop"` // hydrostatic + friction + acceleration
	PDropHydrostatic float64 `json:"pdrop_hydrostatic"`
	PDropFriction    float64 `json:"pdrop_friction"`
	PDropAccel       float64 `json:"pdrop_accel"`
	Rates            Rates   `json:"rates"`
}

// Well is the reported state of one well.
type Well struct {
	Bhp         float64         `json:"bhp"`
	Thp         float64         `json:"thp"`
	Temperature float64         `json:"temperature"`
	Rates       Rates           `json:"rates"`
	Control     CurrentControl  `json:"control"`
	Connections []Connection    `json:"connections"`
	Segments    map[int]Segment `json:"segments,omitempty"` // keyed by segment number
}

// Wells maps well name to its reported state.
type Wells map[string]Well
