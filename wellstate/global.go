package wellstate

import (
	"github.com/wellflow-xyz/go-wellflow/parallel"
	"github.com/wellflow-xyz/go-wellflow/schedule"
)

// GlobalWellInfo is the process-wide registry of every well's status and
// control mode, refreshed each step and synchronized across processes. It
// answers the one question that needs global knowledge: whether a well is
// open under group control. Per-well physical values never pass through
// here.
type GlobalWellInfo struct {
	names   []string
	index   map[string]int
	isOwner []bool

	status    []schedule.Status
	injCMode  []schedule.InjectorCMode
	prodCMode []schedule.ProducerCMode

	// 0/1 flags, synchronized by elementwise max across processes.
	inInjectingGroup []int
	inProducingGroup []int
}

// NewGlobalWellInfo builds the registry for one report step, covering
// every well in the schedule in well-list order.
func NewGlobalWellInfo(step *schedule.Step) *GlobalWellInfo {
	n := len(step.Wells)
	g := &GlobalWellInfo{
		names:            make([]string, n),
		index:            make(map[string]int, n),
		isOwner:          make([]bool, n),
		status:           make([]schedule.Status, n),
		injCMode:         make([]schedule.InjectorCMode, n),
		prodCMode:        make([]schedule.ProducerCMode, n),
		inInjectingGroup: make([]int, n),
		inProducingGroup: make([]int, n),
	}
	for i := range step.Wells {
		g.names[i] = step.Wells[i].Name
		g.index[step.Wells[i].Name] = i
	}
	return g
}

// Clear resets all recorded flags ahead of a fresh compute pass.
func (g *GlobalWellInfo) Clear() {
	for i := range g.names {
		g.status[i] = schedule.StatusShut
		g.injCMode[i] = schedule.InjectorCModeNone
		g.prodCMode[i] = schedule.ProducerCModeNone
		g.inInjectingGroup[i] = 0
		g.inProducingGroup[i] = 0
	}
}

// SetOwner records whether this process owns the well's canonical state.
func (g *GlobalWellInfo) SetOwner(well string, owner bool) {
	if i, ok := g.index[well]; ok {
		g.isOwner[i] = owner
	}
}

// IsOwner reports whether this process owns the well's canonical state.
func (g *GlobalWellInfo) IsOwner(well string) bool {
	i, ok := g.index[well]
	return ok && g.isOwner[i]
}

// UpdateInjector records the local view of an injector's status and mode.
func (g *GlobalWellInfo) UpdateInjector(well string, status schedule.Status, cmode schedule.InjectorCMode) {
	i, ok := g.index[well]
	if !ok {
		return
	}
	g.status[i] = status
	g.injCMode[i] = cmode
	if status == schedule.StatusOpen && cmode == schedule.InjectorGRUP {
		g.inInjectingGroup[i] = 1
	}
}

// UpdateProducer records the local view of a producer's status and mode.
func (g *GlobalWellInfo) UpdateProducer(well string, status schedule.Status, cmode schedule.ProducerCMode) {
	i, ok := g.index[well]
	if !ok {
		return
	}
	g.status[i] = status
	g.prodCMode[i] = cmode
	if status == schedule.StatusOpen && cmode == schedule.ProducerGRUP {
		g.inProducingGroup[i] = 1
	}
}

// Communicate merges the group-control flags across all processes with one
// collective max, so the process that owns a well propagates its view to
// the processes that only track it.
func (g *GlobalWellInfo) Communicate(comm parallel.Communicator) error {
	if err := comm.MaxInts(g.inInjectingGroup); err != nil {
		return err
	}
	return comm.MaxInts(g.inProducingGroup)
}

// InInjectingGroup reports whether the well is open under injection group
// control anywhere in the run.
func (g *GlobalWellInfo) InInjectingGroup(well string) bool {
	i, ok := g.index[well]
	return ok && g.inInjectingGroup[i] == 1
}

// InProducingGroup reports whether the well is open under production group
// control anywhere in the run.
func (g *GlobalWellInfo) InProducingGroup(well string) bool {
	i, ok := g.index[well]
	return ok && g.inProducingGroup[i] == 1
}
