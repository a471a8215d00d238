// Package parallel defines the process-communication semantics required by
// the well state core: rank/size identification, blocking collective
// reductions over numeric vectors, and a gatherv primitive for collecting
// variable-length per-process record lists on a root process.
//
// The package does not bind to a real message-passing runtime. The serial
// implementation covers single-process runs; tests inject loopback
// implementations to exercise multi-process protocols in one process.
package parallel

// Communicator provides blocking collective operations over a fixed set of
// processes. All participants must call the same operation in the same
// order; a collective call is a full synchronization barrier. Failures are
// fatal to the enclosing step and surface as errors.
type Communicator interface {
	// Rank returns this process's index in [0, Size).
	Rank() int

	// Size returns the number of participating processes.
	Size() int

	// Sum replaces data on every process with the elementwise sum of all
	// processes' data. All processes must pass equal-length slices.
	Sum(data []float64) error

	// MaxInts replaces data on every process with the elementwise maximum
	// of all processes' data.
	MaxInts(data []int) error

	// Broadcast replaces data on every process with root's data.
	Broadcast(data []float64, root int) error

	// Gatherv collects each process's local byte record on root. On root
	// the result holds one entry per rank, in rank order; on other
	// processes the result is nil.
	Gatherv(local []byte, root int) ([][]byte, error)
}

// Serial is the single-process Communicator. Every collective operation is
// the identity.
type Serial struct{}

// Rank returns 0.
func (Serial) Rank() int { return 0 }

// Size returns 1.
func (Serial) Size() int { return 1 }

// Sum leaves data unchanged.
func (Serial) Sum(data []float64) error { return nil }

// MaxInts leaves data unchanged.
func (Serial) MaxInts(data []int) error { return nil }

// Broadcast leaves data unchanged.
func (Serial) Broadcast(data []float64, root int) error { return nil }

// Gatherv returns the local record as the only contribution.
func (Serial) Gatherv(local []byte, root int) ([][]byte, error) {
	return [][]byte{local}, nil
}
