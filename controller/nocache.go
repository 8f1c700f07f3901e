package controller

import "github.com/sarchlab/dramcachectl/core"

// noCacheHandler implements NoCache (spec.md §4.2.1): every request goes
// straight to the far tier.
type noCacheHandler struct{}

func (noCacheHandler) Access(c *MemoryController, req *core.Request) core.Cycle {
	isStore := req.Kind.IsStore()

	cycle := c.far.Access(accessReq(req.LineAddress, isStore, req.ArrivalCycle), core.PriorityCritical, 4)
	c.accountExt(4 * 16)

	// spec.md §4.2.1: "hit" here means hit-in-memory, so every request
	// counts as a loadHit regardless of kind.
	c.Stats.LoadHit++
	c.accountHit()

	return cycle
}
