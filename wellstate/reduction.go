package wellstate

import (
	"sort"

	"github.com/wellflow-xyz/go-wellflow/parallel"
)

// CommunicateGroupRates makes the group-level rate vector of every well
// identical on all processes. Each process contributes the true values for
// the wells it owns and zero for the rest, so one elementwise sum yields
// exactly each owner's value everywhere without double counting. The
// packed artificial-lift state rides in the same buffer to avoid a second
// collective call.
//
// Packing iterates wells in sorted name order on every rank; the exchange
// is positional, so the order must be identical everywhere.
func (ws *WellState) CommunicateGroupRates(comm parallel.Communicator) error {
	names := make([]string, 0, len(ws.rates))
	for name := range ws.rates {
		names = append(names, name)
	}
	sort.Strings(names)

	sz := 0
	for _, name := range names {
		sz += len(ws.rates[name].rates)
	}
	sz += ws.alq.PackSize()

	data := make([]float64, sz)
	pos := 0
	for _, name := range names {
		wr := ws.rates[name]
		for _, v := range wr.rates {
			if wr.owner {
				data[pos] = v
			}
			pos++
		}
	}
	pos += ws.alq.Pack(data[pos:], ws.ownsRatesOf)

	if err := comm.Sum(data); err != nil {
		return err
	}

	pos = 0
	for _, name := range names {
		wr := ws.rates[name]
		for i := range wr.rates {
			wr.rates[i] = data[pos]
			pos++
		}
	}
	ws.alq.Unpack(data[pos:])
	return nil
}

// ownsRatesOf reports whether this process contributes the named well's
// values to the group exchange. Wells without a rate entry (not in this
// step's schedule) default to owned so their ALQ survives the reduction.
func (ws *WellState) ownsRatesOf(name string) bool {
	wr, ok := ws.rates[name]
	return !ok || wr.owner
}

// UpdateGlobalIsGrup refreshes the global well registry from the local
// well states and synchronizes it across processes: first a pure compute
// pass over every well's status and control mode, then a single collective
// call.
func (ws *WellState) UpdateGlobalIsGrup(comm parallel.Communicator) error {
	ws.global.Clear()
	for _, sws := range ws.wells {
		if sws.Producer {
			ws.global.UpdateProducer(sws.Name, sws.Status, sws.ProductionCMode)
		} else {
			ws.global.UpdateInjector(sws.Name, sws.Status, sws.InjectionCMode)
		}
	}
	return ws.global.Communicate(comm)
}
