// Package timing defines the external timing back-end contract that the
// DRAM-cache core consumes. The back-ends themselves (a fixed-latency
// model, an MD/1 queueing model, a full DDR model, and a DRAMSim binding)
// are treated as external collaborators per spec.md §1 — this package only
// owns the interface and a couple of lightweight reference
// implementations used in tests and small simulations.
package timing

import "github.com/sarchlab/dramcachectl/core"

//go:generate go run go.uber.org/mock/mockgen -destination mock_backend_test.go -package timing -write_package_comment=false . Backend

// AccessKind is whether a back-end access reads or writes its tier.
type AccessKind int

// The two access kinds a Backend sees.
const (
	Read AccessKind = iota
	Write
)

// AccessRequest is the tuple a timing back-end is handed.
type AccessRequest struct {
	LineAddress core.LineAddr
	Kind        AccessKind
	Cycle       core.Cycle
}

// Backend converts an (address, kind, burst-length) tuple into a
// completion cycle. One burst unit is 16 bytes; the minimum burst is 2
// units. Implementations must guarantee Access(req, ...) >= req.Cycle.
//
// Ordering guarantee (spec.md §5): within one goroutine's sequence of
// calls, the caller is responsible for threading req.Cycle from the
// previous return value when a serial dependency is intended; a Backend
// itself is not required to serialise calls that arrive with unrelated
// cycles.
type Backend interface {
	Access(req AccessRequest, priority core.Priority, burstUnits int) core.Cycle
}

// CXLBackend is the "second flavour" of the timing contract (spec.md §6)
// used by far-tier back-ends modelling CXL-attached memory.
type CXLBackend interface {
	Backend
	CXLAccess(req AccessRequest, priority core.Priority, burstUnits int) core.Cycle
}

// BurstCycles converts a burst length in bytes to burst units (16 B each),
// enforcing the minimum burst of 2 units described in spec.md §4.2.
func BurstCycles(bytes int) int {
	units := (bytes + 15) / 16
	if units < 2 {
		units = 2
	}

	return units
}
