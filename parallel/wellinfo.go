package parallel

// WellInfo is the parallel partition descriptor for one well: which process
// owns the well's canonical state and the communicator spanning the
// processes that share its connections. A well state holds a reference to
// its WellInfo, never a copy.
type WellInfo struct {
	name          string
	owner         bool
	firstPerfRank int
	comm          Communicator
}

// NewWellInfo creates a descriptor for a well whose first perforation lives
// on firstPerfRank. Exactly one participating process must set owner.
func NewWellInfo(name string, owner bool, firstPerfRank int, comm Communicator) *WellInfo {
	if comm == nil {
		comm = Serial{}
	}
	return &WellInfo{name: name, owner: owner, firstPerfRank: firstPerfRank, comm: comm}
}

// SerialWellInfo creates a descriptor for a well wholly owned by a
// single-process run.
func SerialWellInfo(name string) *WellInfo {
	return NewWellInfo(name, true, 0, Serial{})
}

// Name returns the well name.
func (w *WellInfo) Name() string { return w.name }

// IsOwner reports whether this process owns the well's canonical state.
func (w *WellInfo) IsOwner() bool { return w.owner }

// Communication returns the communicator spanning the processes that share
// this well's connections.
func (w *WellInfo) Communication() Communicator { return w.comm }

// BroadcastFirstPerforationValue distributes the value seen at the well's
// first perforation to all sharing processes. Processes that do not hold
// the first perforation pass their local placeholder and receive the
// authoritative value.
func (w *WellInfo) BroadcastFirstPerforationValue(value float64) (float64, error) {
	buf := []float64{value}
	if err := w.comm.Broadcast(buf, w.firstPerfRank); err != nil {
		return value, err
	}
	return buf[0], nil
}
