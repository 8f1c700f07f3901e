package controller

import (
	"github.com/sarchlab/dramcachectl/core"
	"github.com/sarchlab/dramcachectl/internal/tagarray"
)

// alloyCacheHandler implements AlloyCache (spec.md §4.2.3): 64 B
// granularity, direct mapped, tag and data fetched together as a 96 B TAD
// unit.
type alloyCacheHandler struct{}

func (alloyCacheHandler) Access(c *MemoryController, req *core.Request) core.Cycle {
	isStore := req.Kind.IsStore()
	linesPerPage := c.cfg.LinesPerPage()
	tag := tagOf(req.LineAddress, linesPerPage)
	set := setOf(tag, c.tags.NumSets)
	s := c.tags.SetFor(set)

	cycle := req.ArrivalCycle

	if c.cfg.SRAMTag {
		cycle += c.cfg.LLCLatency
	} else {
		na := core.LineAddr(nearAddr(req.LineAddress, c.cfg.McdramPerMC))
		cycle = c.near.Access(accessReq(na, false, cycle), core.PriorityCritical, 6)
		c.accountMC(6 * 16)
		c.Stats.TagLoad++
	}

	way0 := &s.Ways[0]

	if way0.Valid && way0.Tag == tag {
		return alloyHit(c, req, cycle, set, isStore)
	}

	return alloyMiss(c, req, cycle, tag, set, isStore)
}

func alloyHit(c *MemoryController, req *core.Request, cycle core.Cycle, set int, isStore bool) core.Cycle {
	na := core.LineAddr(nearAddr(req.LineAddress, c.cfg.McdramPerMC))

	if isStore {
		cycle = c.near.Access(accessReq(na, true, cycle), core.PriorityCritical, 4)
		c.accountMC(4 * 16)
		c.tags.SetFor(set).Ways[0].Dirty = true
		c.Stats.StoreHit++
	} else {
		if c.cfg.SRAMTag {
			cycle = c.near.Access(accessReq(na, false, cycle), core.PriorityCritical, 4)
			c.accountMC(4 * 16)
		}
		c.Stats.LoadHit++
	}

	c.tags.SetFor(set).UpdateLRU(0)
	c.accountHit()

	return cycle
}

func alloyMiss(c *MemoryController, req *core.Request, cycle core.Cycle, tag uint64, set int, isStore bool) core.Cycle {
	linesPerPage := c.cfg.LinesPerPage()

	cycle = c.far.Access(accessReq(req.LineAddress, false, cycle), core.PriorityCritical, 4)
	c.accountExt(4 * 16)

	s := c.tags.SetFor(set)
	way0Valid := s.Ways[0].Valid

	install := true
	if c.linePolicy != nil {
		install = c.linePolicy.HandleCacheMiss(way0Valid)
	}

	if install {
		displaced := s.Ways[0]

		burst := 6
		if c.cfg.SRAMTag {
			burst = 4
		}

		na := core.LineAddr(nearAddr(req.LineAddress, c.cfg.McdramPerMC))
		cycle = c.near.Access(accessReq(na, true, cycle), core.PriorityCritical, burst)
		c.accountMC(burst * 16)

		c.tags.Install(set, 0, tagarray.Way{Tag: tag, Valid: true, Dirty: isStore})

		if displaced.Valid {
			if displaced.Dirty {
				evicted := core.LineAddr(displaced.Tag * uint64(linesPerPage))
				c.far.Access(accessReq(evicted, true, cycle), core.PriorityBackground, 4)
				c.accountExt(4 * 16)
				c.Stats.DirtyEvict++
			} else {
				c.Stats.CleanEvict++
			}
		}
	}

	if isStore {
		c.Stats.StoreMiss++
	} else {
		c.Stats.LoadMiss++
	}
	c.accountMiss()

	return cycle
}
