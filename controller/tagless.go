package controller

import (
	"github.com/sarchlab/dramcachectl/core"
	"github.com/sarchlab/dramcachectl/internal/tagarray"
)

// taglessHandler implements Tagless (spec.md §4.2.7): a single fully-
// associative set with FIFO replacement via a cursor that advances modulo
// num_ways, and an inverted page table maintained in the far tier.
type taglessHandler struct{}

func (taglessHandler) Access(c *MemoryController, req *core.Request) core.Cycle {
	isStore := req.Kind.IsStore()
	linesPerPage := c.cfg.LinesPerPage()
	tag := tagOf(req.LineAddress, linesPerPage)

	s := c.tags.SetFor(0)
	way, hit := s.FindTag(tag)

	if hit {
		na := core.LineAddr(nearAddr(req.LineAddress, c.cfg.McdramPerMC))
		cycle := c.near.Access(accessReq(na, isStore, req.ArrivalCycle), core.PriorityCritical, 4)
		c.accountMC(4 * 16)

		if isStore {
			s.Ways[way].Dirty = true
			c.Stats.StoreHit++
		} else {
			c.Stats.LoadHit++
		}
		s.UpdateLRU(way)
		c.accountHit()

		return cycle
	}

	cycle := c.far.Access(accessReq(req.LineAddress, isStore, req.ArrivalCycle), core.PriorityCritical, 4)
	c.accountExt(4 * 16)

	victim := c.nextEvict
	c.nextEvict = (c.nextEvict + 1) % c.tags.NumWays

	displaced := s.Ways[victim]
	if displaced.Valid && displaced.Dirty {
		evicted := core.LineAddr(displaced.Tag * uint64(linesPerPage))
		c.far.Access(accessReq(evicted, true, cycle), core.PriorityBackground, 4)
		c.accountExt(4 * 16)
		c.Stats.DirtyEvict++
	} else if displaced.Valid {
		c.Stats.CleanEvict++
	}

	c.tags.Install(0, victim, tagarray.Way{Tag: tag, Valid: true, Dirty: isStore})

	// Two 32 B accesses to update the global inverted page table kept in
	// the far tier (spec.md §4.2.7).
	c.far.Access(accessReq(req.LineAddress, true, cycle), core.PriorityBackground, 2)
	c.far.Access(accessReq(req.LineAddress, true, cycle), core.PriorityBackground, 2)
	c.accountExt(2 * 2 * 16)

	if isStore {
		c.Stats.StoreMiss++
	} else {
		c.Stats.LoadMiss++
	}
	c.accountMiss()

	return cycle
}
