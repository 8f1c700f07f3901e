package controller

import (
	"log"
	"math/bits"

	"github.com/sarchlab/dramcachectl/core"
	"github.com/sarchlab/dramcachectl/internal/tagarray"
	"github.com/sarchlab/dramcachectl/placement"
)

// hybridOccupancyFlushThreshold is the TagBuffer occupancy above which a
// HybridCache flushes it (spec.md §4.2.5).
const hybridOccupancyFlushThreshold = 0.7

// hybridCacheHandler implements HybridCache (spec.md §4.2.5): identical to
// UnisonCache for data movement, but metadata traffic is filtered through
// a TagBuffer.
type hybridCacheHandler struct{}

func (hybridCacheHandler) Access(c *MemoryController, req *core.Request) core.Cycle {
	if c.pagePolicy == nil {
		log.Panicf("controller: HybridCache requires a page-placement policy")
	}

	isStore := req.Kind.IsStore()
	linesPerPage := c.cfg.LinesPerPage()
	lineInPage := int(uint64(req.LineAddress) % uint64(linesPerPage))
	tag := tagOf(req.LineAddress, linesPerPage)
	set := setOf(tag, c.tags.NumSets)

	if c.tagBuf.ExistInTB(tag) {
		c.Stats.TBDirtyHit++
	} else {
		c.Stats.TBDirtyMiss++
	}

	cycle := req.ArrivalCycle
	way, hit := lookupUnisonWay(c, tag, set)

	if hit {
		cycle = hybridHit(c, req, cycle, tag, set, way, lineInPage, isStore)
	} else {
		cycle = hybridMiss(c, req, cycle, tag, set, lineInPage, isStore)
	}

	if c.tagBuf.Occupancy() > hybridOccupancyFlushThreshold {
		c.tagBuf.Clear()
		c.Stats.TagBufferFlush++
		c.tagBuf.SetClearTime(uint64(cycle))
	}

	return cycle
}

func hybridHit(
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

func hybridMiss(
	c *MemoryController, req *core.Request, cycle core.Cycle,
	tag uint64, set, lineInPage int, isStore bool,
) core.Cycle {
	if isStore && !c.tagBuf.ExistInTB(tag) {
		na := core.LineAddr(nearAddr(req.LineAddress, c.cfg.McdramPerMC))
		cycle = c.near.Access(accessReq(na, false, cycle), core.PriorityCritical, 2)
		c.accountMC(2 * 16)
	}

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
		if !c.tagBuf.CanInsertPair(tag, displaced.Tag) {
			log.Panicf("controller: HybridCache TagBuffer cannot admit tag %#x "+
				"alongside evicted tag %#x without a flush", tag, displaced.Tag)
		}

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

		c.tagBuf.Insert(displaced.Tag, true)
	} else if !c.tagBuf.CanInsert(tag) {
		log.Panicf("controller: HybridCache TagBuffer cannot admit tag %#x without a flush", tag)
	}

	c.tagBuf.Insert(tag, true)

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
