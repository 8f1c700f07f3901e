package timing

import "github.com/sarchlab/dramcachectl/core"

// DRAMSimBackend adapts an external cycle-accurate DRAM simulator (e.g.
// DRAMSim) to the Backend contract. spec.md §1 keeps the real DRAMSim
// binding out of scope; this type only owns the glue a host would plug a
// real binding into.
type DRAMSimBackend struct {
	// Advance is supplied by the host: given the request and a burst
	// length in cycles-per-unit terms, it returns how many cycles the
	// external model says the access takes. A nil Advance makes the
	// backend behave like a fixed-latency stand-in using Fallback.
	Advance func(req AccessRequest, burstUnits int) core.Cycle

	// Fallback is used when no DRAMSim binding is attached, so that
	// configurations selecting "DRAMSim" without a binding still produce
	// a deterministic completion cycle rather than blocking forever.
	Fallback core.Cycle
}

// Access implements Backend.
func (b *DRAMSimBackend) Access(
	req AccessRequest,
	_ core.Priority,
	burstUnits int,
) core.Cycle {
	if burstUnits < 2 {
		burstUnits = 2
	}

	if b.Advance != nil {
		return req.Cycle + b.Advance(req, burstUnits)
	}

	return req.Cycle + b.Fallback
}
