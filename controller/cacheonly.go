package controller

import "github.com/sarchlab/dramcachectl/core"

// cacheOnlyHandler implements CacheOnly (spec.md §4.2.2): every request
// goes straight to the near tier, translated to its channel-interleaved
// address.
type cacheOnlyHandler struct{}

func (cacheOnlyHandler) Access(c *MemoryController, req *core.Request) core.Cycle {
	isStore := req.Kind.IsStore()
	na := core.LineAddr(nearAddr(req.LineAddress, c.cfg.McdramPerMC))

	cycle := c.near.Access(accessReq(na, isStore, req.ArrivalCycle), core.PriorityCritical, 4)
	c.accountMC(4 * 16)

	if isStore {
		c.Stats.StoreHit++
	} else {
		c.Stats.LoadHit++
	}
	c.accountHit()

	return cycle
}
