package controller

import (
	"github.com/sarchlab/dramcachectl/core"
	"github.com/sarchlab/dramcachectl/internal/tagarray"
)

// basicCacheHandler implements BasicCache (spec.md §4.2.8): page
// granularity, tag-lookup traffic is not amortised across accesses to the
// same page — every access pays for reading the whole tag row unless the
// 1-entry short-circuit buffer covers it.
type basicCacheHandler struct{}

func (basicCacheHandler) Access(c *MemoryController, req *core.Request) core.Cycle {
	isStore := req.Kind.IsStore()
	linesPerPage := c.cfg.LinesPerPage()
	lineInPage := int(uint64(req.LineAddress) % uint64(linesPerPage))
	tag := tagOf(req.LineAddress, linesPerPage)
	set := setOf(tag, c.tags.NumSets)

	cycle := req.ArrivalCycle

	shortCircuit := c.lastValid && c.lastSet == set && c.lastTag == tag

	if !shortCircuit {
		c.Stats.TagLoad++
		if !c.cfg.Ideal {
			tagRowBytes := ((c.tags.NumWays*4 + 63) / 64) * 64
			na := core.LineAddr(nearAddr(req.LineAddress, c.cfg.McdramPerMC))
			cycle = c.near.Access(accessReq(na, false, cycle), core.PriorityCritical, burstUnitsForBytes(tagRowBytes))
			c.accountMC(tagRowBytes)
		}
	}

	s := c.tags.SetFor(set)
	way, hit := s.FindTag(tag)

	if hit {
		return basicHit(c, req, cycle, set, way, lineInPage, isStore, tag)
	}

	return basicMiss(c, req, cycle, set, tag, lineInPage, linesPerPage, isStore)
}

func basicHit(
	c *MemoryController, req *core.Request, cycle core.Cycle,
	set, way, lineInPage int, isStore bool, tag uint64,
) core.Cycle {
	na := core.LineAddr(nearAddr(req.LineAddress, c.cfg.McdramPerMC))
	cycle = c.near.Access(accessReq(na, isStore, cycle), core.PriorityCritical, 4)
	c.accountMC(4 * 16)

	s := c.tags.SetFor(set)
	s.Ways[way].SetLine(lineInPage, true, isStore || s.Ways[way].LineDirty(lineInPage))
	if isStore {
		s.Ways[way].Dirty = true
	}
	s.UpdateLRU(way)

	c.lastSet, c.lastTag, c.lastWay, c.lastValid = set, tag, way, true

	if isStore {
		c.Stats.StoreHit++
	} else {
		c.Stats.LoadHit++
	}
	c.accountHit()

	return cycle
}

func basicMiss(
	c *MemoryController, req *core.Request, cycle core.Cycle,
	set int, tag uint64, lineInPage, linesPerPage int, isStore bool,
) core.Cycle {
	cycle = c.far.Access(accessReq(req.LineAddress, isStore, cycle), core.PriorityCritical, 4)
	c.accountExt(4 * 16)

	s := c.tags.SetFor(set)
	victim := s.FindLRUVictim()
	displaced := s.Ways[victim]

	if displaced.Valid {
		dirtyLines := 0
		// Design note (spec.md §9(b)): iterate i in [0, lines_per_page),
		// not [0, num_ways) — the bitmap is per line within a page.
		for i := 0; i < linesPerPage; i++ {
			if displaced.LineDirty(i) {
				dirtyLines++
			}
		}

		if dirtyLines > 0 {
			evicted := core.LineAddr(displaced.Tag * uint64(linesPerPage))
			c.far.Access(accessReq(evicted, true, cycle), core.PriorityBackground, burstUnitsForLines(dirtyLines))
			c.accountExt(dirtyLines * 64)
			c.Stats.DirtyEvict++
			c.Stats.TotalEvictLines += uint64(dirtyLines)
		} else {
			c.Stats.CleanEvict++
		}
	}

	newWay := tagarray.Way{Tag: tag, Valid: true}
	newWay.SetLine(lineInPage, true, isStore)
	if isStore {
		newWay.Dirty = true
	}
	c.tags.Install(set, victim, newWay)

	c.lastSet, c.lastTag, c.lastWay, c.lastValid = set, tag, victim, true

	c.Stats.Placement++
	c.Stats.TotalTouchLines++

	if isStore {
		c.Stats.StoreMiss++
	} else {
		c.Stats.LoadMiss++
	}
	c.accountMiss()

	return cycle
}
