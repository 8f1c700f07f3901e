package timing

import "github.com/sarchlab/dramcachectl/core"

// CXLWrapper adds a fixed link-latency surcharge to an inner Backend's
// Access when called through CXLAccess, modelling a CXL-attached far tier
// (spec.md §6: "a second flavour, cxl_access, is used for the far tier
// when a CXL latency model is desired; the contract is identical").
type CXLWrapper struct {
	Inner       Backend
	LinkLatency core.Cycle
}

// Access implements Backend by delegating to the wrapped back-end with no
// CXL surcharge.
func (w CXLWrapper) Access(
	req AccessRequest,
	priority core.Priority,
	burstUnits int,
) core.Cycle {
	return w.Inner.Access(req, priority, burstUnits)
}

// CXLAccess implements CXLBackend, adding the link latency on top of the
// wrapped back-end's completion cycle.
func (w CXLWrapper) CXLAccess(
	req AccessRequest,
	priority core.Priority,
	burstUnits int,
) core.Cycle {
	req.Cycle += w.LinkLatency
	return w.Inner.Access(req, priority, burstUnits)
}
