package timing

import "github.com/sarchlab/dramcachectl/core"

// SimpleBackend always responds in a fixed number of cycles, independent
// of burst length or priority. It is grounded on the teacher's
// mem/idealmemcontroller, which "always respond[s] to the request in a
// fixed number of cycles" with no concurrency limitation.
type SimpleBackend struct {
	// Latency is the fixed number of cycles every access takes.
	Latency core.Cycle
}

// Access implements Backend.
func (b SimpleBackend) Access(
	req AccessRequest,
	_ core.Priority,
	_ int,
) core.Cycle {
	return req.Cycle + b.Latency
}
