package controller

import (
	"log"

	"github.com/sarchlab/dramcachectl/core"
	"github.com/sarchlab/dramcachectl/internal/tagarray"
)

// hmaHandler implements HMA (spec.md §4.2.6): page placement is delegated
// entirely to an OS policy, invoked on every access, with a periodic
// remapPages() migration pass every os_quantum requests.
type hmaHandler struct{}

func (hmaHandler) Access(c *MemoryController, req *core.Request) core.Cycle {
	if c.osPolicy == nil {
		log.Panicf("controller: HMA requires an OS placement policy")
	}

	isStore := req.Kind.IsStore()
	linesPerPage := c.cfg.LinesPerPage()
	tag := tagOf(req.LineAddress, linesPerPage)
	set := setOf(tag, c.tags.NumSets)

	c.osPolicy.HandleCacheAccess(tag, req.Kind)

	s := c.tags.SetFor(set)
	way, hit := s.FindTag(tag)

	var cycle core.Cycle
	if hit {
		na := core.LineAddr(nearAddr(req.LineAddress, c.cfg.McdramPerMC))
		cycle = c.near.Access(accessReq(na, isStore, req.ArrivalCycle), core.PriorityCritical, 4)
		c.accountMC(4 * 16)

		if isStore {
			s.Ways[way].Dirty = true
			c.Stats.StoreHit++
		} else {
			c.Stats.LoadHit++
		}
		s.UpdateLRU(way)
		c.accountHit()
	} else {
		cycle = c.far.Access(accessReq(req.LineAddress, isStore, req.ArrivalCycle), core.PriorityCritical, 4)
		c.accountExt(4 * 16)

		victim := s.FindLRUVictim()
		displaced := s.Ways[victim]
		if displaced.Valid && displaced.Dirty {
			evicted := core.LineAddr(displaced.Tag * uint64(linesPerPage))
			c.far.Access(accessReq(evicted, true, cycle), core.PriorityBackground, 4)
			c.accountExt(4 * 16)
			c.Stats.DirtyEvict++
		} else if displaced.Valid {
			c.Stats.CleanEvict++
		}

		c.tags.Install(set, victim, tagarray.Way{Tag: tag, Valid: true, Dirty: isStore})

		if isStore {
			c.Stats.StoreMiss++
		} else {
			c.Stats.LoadMiss++
		}
		c.accountMiss()
	}

	// Access increments c.numRequests after the handler returns, so the
	// request this call is servicing will be numbered numRequests+1.
	if (c.numRequests+1)%c.cfg.OSQuantum == 0 {
		moved := c.osPolicy.RemapPages()
		c.Stats.Placement += moved * 2
	}

	return cycle
}
