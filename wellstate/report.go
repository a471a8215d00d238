package wellstate

import (
	"encoding/json"
	"fmt"

	"github.com/wellflow-xyz/go-wellflow/phase"
	"github.com/wellflow-xyz/go-wellflow/report"
	"github.com/wellflow-xyz/go-wellflow/schedule"
)

// Report extracts the container's state for the output stage.
//
// globalCellIndex maps local cell identifiers to global ones; nil means
// the identity mapping. Wells in SHUT status are omitted unless
// wasDynamicallyClosed flags them as closed by simulation logic this step
// (nil means never). When a well's connections span processes, the full
// connection list is gathered on the root rank of the well's communicator;
// other ranks report no connections for that well.
func (ws *WellState) Report(globalCellIndex []int, wasDynamicallyClosed func(wellIndex int) bool) (report.Wells, error) {
	res := make(report.Wells, len(ws.wells))
	if len(ws.wells) == 0 {
		return res, nil
	}

	for i, sws := range ws.wells {
		if sws.Status == schedule.StatusShut && (wasDynamicallyClosed == nil || !wasDynamicallyClosed(i)) {
			continue
		}

		well := report.Well{
			Bhp:         sws.Bhp,
			Thp:         sws.Thp,
			Temperature: sws.Temperature,
			Rates:       make(report.Rates),
			Control: report.CurrentControl{
				IsProducer: sws.Producer,
				Producer:   sws.ProductionCMode,
				Injector:   sws.InjectionCMode,
			},
		}

		ws.setPhaseReport(well.Rates, sws, phase.Water,
			report.WaterRate, report.ReservoirWater, report.ProductivityIndexWater, report.WellPotentialWater)
		ws.setPhaseReport(well.Rates, sws, phase.Oil,
			report.OilRate, report.ReservoirOil, report.ProductivityIndexOil, report.WellPotentialOil)
		ws.setPhaseReport(well.Rates, sws, phase.Gas,
			report.GasRate, report.ReservoirGas, report.ProductivityIndexGas, report.WellPotentialGas)

		if ws.pu.HasSolvent {
			well.Rates.Set(report.SolventRate, sws.SumSolventRates())
		}
		if ws.pu.HasPolymer {
			well.Rates.Set(report.PolymerRate, sws.SumPolymerRates())
		}
		if ws.pu.HasBrine {
			well.Rates.Set(report.BrineRate, sws.SumBrineRates())
		}

		if sws.Producer {
			well.Rates.Set(report.ALQ, ws.alq.Get(sws.Name))
		} else {
			well.Rates.Set(report.ALQ, 0)
		}
		well.Rates.Set(report.DissolvedGas, sws.DissolvedGasRate)
		well.Rates.Set(report.VaporizedOil, sws.VaporizedOilRate)

		conns := ws.reportConnections(i, globalCellIndex)
		comm := sws.ParallelInfo.Communication()
		if comm.Size() == 1 {
			well.Connections = conns
		} else {
			gathered, err := gatherConnectionsOnRoot(conns, sws)
			if err != nil {
				return nil, err
			}
			well.Connections = gathered
		}

		if sws.Segments != nil {
			well.Segments = make(map[int]report.Segment, sws.Segments.Size())
			for segIx := 0; segIx < sws.Segments.Size(); segIx++ {
				segNo := sws.Segments.Number[segIx]
				well.Segments[segNo] = ws.reportSegmentResults(i, segIx, segNo)
			}
		}

		res[sws.Name] = well
	}
	return res, nil
}

// gatherConnectionsOnRoot collects every sharing process's connection
// records on the root rank of the well's communicator. Records travel
// JSON-encoded; the root concatenates them in rank order.
func gatherConnectionsOnRoot(local []report.Connection, sws *SingleWellState) ([]report.Connection, error) {
	payload, err := json.Marshal(local)
	if err != nil {
		return nil, fmt.Errorf("wellstate: encode connections of well %s: %w", sws.Name, err)
	}
	parts, err := sws.ParallelInfo.Communication().Gatherv(payload, 0)
	if err != nil {
		return nil, fmt.Errorf("wellstate: gather connections of well %s: %w", sws.Name, err)
	}
	if parts == nil {
		return nil, nil
	}
	var all []report.Connection
	for _, part := range parts {
		var conns []report.Connection
		if err := json.Unmarshal(part, &conns); err != nil {
			return nil, fmt.Errorf("wellstate: decode connections of well %s: %w", sws.Name, err)
		}
		all = append(all, conns...)
	}
	return all, nil
}

// reportConnections builds the per-connection records of one well from its
// local perforation state.
func (ws *WellState) reportConnections(wellIndex int, globalCellIndex []int) []report.Connection {
	pd := ws.wells[wellIndex].Perf
	conns := make([]report.Connection, pd.Size())
	for i := 0; i < pd.Size(); i++ {
		cell := pd.CellIndex[i]
		if globalCellIndex != nil {
			cell = globalCellIndex[cell]
		}
		c := report.Connection{
			Index:         cell,
			Pressure:      pd.Pressure[i],
			ReservoirRate: pd.ReservoirRate[i],
			TransFactor:   pd.TransFactor[i],
			Rates:         make(report.Rates),
		}
		rates := pd.PhaseRatesOf(i)
		pi := pd.ProdIndexOf(i)
		if pos, ok := ws.pu.Pos(phase.Water); ok {
			c.Rates.Set(report.WaterRate, rates[pos])
			c.Rates.Set(report.ProductivityIndexWater, pi[pos])
		}
		if pos, ok := ws.pu.Pos(phase.Oil); ok {
			c.Rates.Set(report.OilRate, rates[pos])
			c.Rates.Set(report.ProductivityIndexOil, pi[pos])
		}
		if pos, ok := ws.pu.Pos(phase.Gas); ok {
			c.Rates.Set(report.GasRate, rates[pos])
			c.Rates.Set(report.ProductivityIndexGas, pi[pos])
		}
		if pd.SolventRates != nil {
			c.Rates.Set(report.SolventRate, pd.SolventRates[i])
		}
		if pd.PolymerRates != nil {
			c.Rates.Set(report.PolymerRate, pd.PolymerRates[i])
		}
		if pd.BrineRates != nil {
			c.Rates.Set(report.BrineRate, pd.BrineRates[i])
		}
		conns[i] = c
	}
	return conns
}

// reportSegmentResults builds the record of one segment.
func (ws *WellState) reportSegmentResults(wellIndex, segIx, segNo int) report.Segment {
	segs := ws.wells[wellIndex].Segments
	seg := report.Segment{
		Number:           segNo,
		Pressure:         segs.Pressure[segIx],
		PressureDrop:     segs.PressureDrop(segIx),
		PDropHydrostatic: segs.PDropHydrostatic[segIx],
		PDropFriction:    segs.PDropFriction[segIx],
		PDropAccel:       segs.PDropAccel[segIx],
		Rates:            make(report.Rates),
	}
	rates := segs.RatesOf(segIx)
	if pos, ok := ws.pu.Pos(phase.Water); ok {
		seg.Rates.Set(report.WaterRate, rates[pos])
	}
	if pos, ok := ws.pu.Pos(phase.Oil); ok {
		seg.Rates.Set(report.OilRate, rates[pos])
	}
	if pos, ok := ws.pu.Pos(phase.Gas); ok {
		seg.Rates.Set(report.GasRate, rates[pos])
	}
	return seg
}

func (ws *WellState) setPhaseReport(r report.Rates, sws *SingleWellState, p phase.Phase,
	rate, reservoir, prodIndex, potential report.RateType) {

	pos, ok := ws.pu.Pos(p)
	if !ok {
		return
	}
	r.Set(rate, sws.SurfaceRates[pos])
	r.Set(reservoir, sws.ReservoirRates[pos])
	r.Set(prodIndex, sws.ProductivityIndex[pos])
	r.Set(potential, sws.WellPotentials[pos])
}
