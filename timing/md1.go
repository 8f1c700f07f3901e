package timing

import "github.com/sarchlab/dramcachectl/core"

// MD1Backend models the tier as an M/D/1 queue: Poisson arrivals, a
// deterministic service time per burst unit, and a single server. The
// waiting time is estimated with the Pollaczek–Khinchine mean-wait formula
// for a deterministic-service queue, W = ρ / (2 μ (1-ρ)), added to the
// fixed service time of the request itself.
type MD1Backend struct {
	// ServiceCyclesPerUnit is the deterministic service time, in cycles,
	// of one burst unit (16 B).
	ServiceCyclesPerUnit core.Cycle

	// Utilization is the long-run server utilization ρ ∈ [0, 1) used to
	// estimate queueing delay ahead of the request's own service time.
	Utilization float64
}

// Access implements Backend.
func (b MD1Backend) Access(
	req AccessRequest,
	_ core.Priority,
	burstUnits int,
) core.Cycle {
	if burstUnits < 2 {
		burstUnits = 2
	}

	service := b.ServiceCyclesPerUnit * core.Cycle(burstUnits)

	rho := b.Utilization
	if rho < 0 {
		rho = 0
	}
	if rho >= 1 {
		rho = 0.999
	}

	mu := 1.0 / float64(b.ServiceCyclesPerUnit)
	wait := rho / (2 * mu * (1 - rho))

	return req.Cycle + core.Cycle(wait) + service
}
