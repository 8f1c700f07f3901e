package controller

import (
	"log"
	"math/bits"

	"github.com/sarchlab/dramcachectl/core"
	"github.com/sarchlab/dramcachectl/internal/tagarray"
	"github.com/sarchlab/dramcachectl/placement"
)

// unisonCacheHandler implements UnisonCache (spec.md §4.2.4): 4 KiB pages,
// set-associative, backed by a page-placement policy, with a footprint
// tracker standing in for the TLB structure the spec describes.
type unisonCacheHandler struct{}

func (unisonCacheHandler) Access(c *MemoryController, req *core.Request) core.Cycle {
	if c.pagePolicy == nil {
		log.Panicf("controller: UnisonCache requires a page-placement policy")
	}

	isStore := req.Kind.IsStore()
	linesPerPage := c.cfg.LinesPerPage()
	lineInPage := int(uint64(req.LineAddress) % uint64(linesPerPage))
	tag := tagOf(req.LineAddress, linesPerPage)
	set := setOf(tag, c.tags.NumSets)

	cycle := req.ArrivalCycle

	if !c.cfg.Ideal {
		na := core.LineAddr(nearAddr(req.LineAddress, c.cfg.McdramPerMC))
		burst := 6 // 96 B TAD load
		if isStore {
			burst = 2 // 32 B tag probe
		}
		cycle = c.near.Access(accessReq(na, isStore, cycle), core.PriorityCritical, burst)
		c.accountMC(burst * 16)
		c.Stats.TagLoad++
	}

	way, hit := lookupUnisonWay(c, tag, set)

	if hit {
		return unisonHit(c, req, cycle, tag, set, way, lineInPage, isStore)
	}

	return unisonMiss(c, req, cycle, tag, set, lineInPage, isStore)
}

// lookupUnisonWay consults the footprint tracker (standing in for the TLB
// structure spec.md §4.2.4 describes) first; on a footprint miss it falls
// back to a linear scan of the set to assert the tag is truly absent.
func lookupUnisonWay(c *MemoryController, tag uint64, set int) (way int, hit bool) {
	if entry, ok := c.fp.Lookup(tag); ok && entry.WayInSet != -1 {
		return entry.WayInSet, true
	}

	return c.tags.SetFor(set).FindTag(tag)
}

func unisonHit(
	c *MemoryController, req *core.Request, cycle core.Cycle,
	tag uint64, set, way, lineInPage int, isStore bool,
) core.Cycle {
	entry := c.fp.Touch(tag)
	entry.MarkTouched(lineInPage)
	if isStore {
		entry.MarkDirty(lineInPage)
		c.tags.SetFor(set).Ways[way].Dirty = true
	}

	counter := placement.CounterAccess{}
	c.pagePolicy.HandleCacheHit(tag, req.Kind, set, &counter, way)
	c.Stats.CounterAccess += uint64(counter.Reads + counter.Writes)

	na := core.LineAddr(nearAddr(req.LineAddress, c.cfg.McdramPerMC))
	cycle = c.near.Access(accessReq(na, true, cycle), core.PriorityBackground, 2)
	c.accountMC(2 * 16)

	c.tags.SetFor(set).UpdateLRU(way)

	if isStore {
		c.Stats.StoreHit++
	} else {
		c.Stats.LoadHit++
	}
	c.accountHit()

	return cycle
}

func unisonMiss(
	c *MemoryController, req *core.Request, cycle core.Cycle,
	tag uint64, set, lineInPage int, isStore bool,
) core.Cycle {
	counter := placement.CounterAccess{}
	way := c.pagePolicy.HandleCacheMiss(tag, req.Kind, set, &counter)
	c.Stats.CounterAccess += uint64(counter.Reads + counter.Writes)

	numWays := c.tags.NumWays
	if way >= numWays {
		cycle = c.far.Access(accessReq(req.LineAddress, isStore, cycle), core.PriorityCritical, 4)
		c.accountExt(4 * 16)

		if isStore {
			c.Stats.StoreMiss++
		} else {
			c.Stats.LoadMiss++
		}
		c.accountMiss()

		return cycle
	}

	footprintSize := c.cfg.FootprintSize
	fillBurst := burstUnitsForLines(footprintSize)

	cycle = c.far.Access(accessReq(req.LineAddress, false, cycle), core.PriorityBackground, fillBurst)
	c.accountExt(footprintSize * 64)

	na := core.LineAddr(nearAddr(req.LineAddress, c.cfg.McdramPerMC))
	cycle = c.near.Access(accessReq(na, true, cycle), core.PriorityBackground, fillBurst)
	c.accountMC(footprintSize * 64)

	s := c.tags.SetFor(set)
	displaced := s.Ways[way]

	if displaced.Valid {
		if oldEntry, ok := c.fp.Lookup(displaced.Tag); ok {
			dirtyLines := bits.OnesCount16(oldEntry.DirtyBitvec) * 4
			if dirtyLines > 0 {
				evictBurst := burstUnitsForLines(dirtyLines)
				c.far.Access(accessReq(req.LineAddress, true, cycle), core.PriorityBackground, evictBurst)
				c.accountExt(dirtyLines * 64)
				c.Stats.DirtyEvict++
				c.Stats.TotalEvictLines += uint64(dirtyLines)
			} else {
				c.Stats.CleanEvict++
			}
			c.fp.Evict(displaced.Tag)
		}
	}

	c.tags.Install(set, way, tagarray.Way{Tag: tag, Valid: true, Dirty: isStore})

	entry := c.fp.Touch(tag)
	entry.WayInSet = way
	entry.Reset()
	entry.MarkTouched(lineInPage)
	if isStore {
		entry.MarkDirty(lineInPage)
	}

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
