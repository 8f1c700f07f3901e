package controller

import "github.com/sarchlab/dramcachectl/core"

// targetRatio is r*, the target near/far bandwidth ratio reflecting the 4x
// speed difference between tiers (spec.md §4.4).
const targetRatio = 0.8

// ratioTolerance is how far r may drift from r* before ds_index moves.
const ratioTolerance = 0.02

// maxMissRateHistory bounds the miss-rate history's backing slice, in the
// spirit of the original's fixed-size _miss_rate_trace[MAX_STEPS] (see
// original_source/src/mc.h's getRecentMissRate/MAX_STEPS usage): the oldest
// sample is dropped once the history is full rather than growing forever.
const maxMissRateHistory = 128

// bwBalanceState holds the BW-balance loop's running counters and the
// disabled-set window (spec.md §4.4).
type bwBalanceState struct {
	numHit, numMiss uint64
	mcBW, extBW     uint64

	reqSinceHalving uint64
	period          uint64 // cache_size / 640

	dsIndex int // sets [0, dsIndex) are disabled (bypass the cache)

	missRateHistory []float64
}

// accountMC records bytes of near-tier traffic for this step's bandwidth
// accounting.
func (c *MemoryController) accountMC(bytes int) {
	c.bw.mcBW += uint64(bytes)
}

// accountExt records bytes of far-tier traffic for this step's bandwidth
// accounting.
func (c *MemoryController) accountExt(bytes int) {
	c.bw.extBW += uint64(bytes)
}

func (c *MemoryController) accountHit()  { c.bw.numHit++ }
func (c *MemoryController) accountMiss() { c.bw.numMiss++ }

// setDisabled reports whether set is currently in the disabled (bypass)
// window.
func (c *MemoryController) setDisabled(set int) bool {
	return set < c.bw.dsIndex
}

// bwStep runs once per dispatched request: it halves the running counters
// every cache_size/640 requests (an EWMA with roughly a cache-fill's
// window) and, if bw_balance is enabled, re-targets ds_index (spec.md
// §4.4).
func (c *MemoryController) bwStep() {
	if c.bw.period == 0 {
		period := uint64(c.cfg.SizeMiB) * 1024 * 1024 / 640
		if period == 0 {
			period = 1
		}
		c.bw.period = period
	}

	c.bw.reqSinceHalving++
	if c.bw.reqSinceHalving < c.bw.period {
		return
	}
	c.bw.reqSinceHalving = 0

	c.recordMissRateSample()

	c.bw.numHit /= 2
	c.bw.numMiss /= 2
	c.bw.mcBW /= 2
	c.bw.extBW /= 2

	if !c.cfg.BWBalance {
		return
	}

	total := c.bw.mcBW + c.bw.extBW
	if total == 0 {
		return
	}

	r := float64(c.bw.mcBW) / float64(total)
	if abs(r-targetRatio) <= ratioTolerance {
		return
	}

	numSets := c.tags.NumSets
	delta := (float64(numSets) / 1000) * (r - targetRatio) / 0.01
	newDsIndex := c.bw.dsIndex + int(delta)

	if newDsIndex < 0 {
		newDsIndex = 0
	}
	if newDsIndex > numSets {
		newDsIndex = numSets
	}

	if newDsIndex > c.bw.dsIndex {
		c.flushDisabledRange(c.bw.dsIndex, newDsIndex)
	}

	c.bw.dsIndex = newDsIndex
}

// flushDisabledRange writes back every dirty way in sets [lo, hi) to the
// far tier before they become unreachable behind the bypass window
// (spec.md §4.4). For HybridCache the flushed tags are re-inserted into
// the TagBuffer, flushing it first if it refuses them.
func (c *MemoryController) flushDisabledRange(lo, hi int) {
	for set := lo; set < hi; set++ {
		s := c.tags.SetFor(set)
		for way := range s.Ways {
			w := &s.Ways[way]
			if !w.Valid || !w.Dirty {
				continue
			}

			lineAddr := core.LineAddr(w.Tag * uint64(c.cfg.LinesPerPage()))
			c.far.Access(accessReq(lineAddr, true, 0), core.PriorityBackground,
				burstUnitsForLines(c.cfg.LinesPerPage()))
			c.Stats.DirtyEvict++

			if c.cfg.Scheme == SchemeHybridCache {
				if !c.tagBuf.CanInsert(w.Tag) {
					c.tagBuf.Clear()
					c.Stats.TagBufferFlush++
				}
				c.tagBuf.Insert(w.Tag, true)
			}

			w.Valid = false
			w.Dirty = false
			if c.pagePolicy != nil {
				c.pagePolicy.FlushChunk(set)
			}
		}
	}
}

// recordMissRateSample appends this window's hit/miss ratio to the bounded
// miss-rate history, dropping the oldest sample once full.
func (c *MemoryController) recordMissRateSample() {
	total := c.bw.numHit + c.bw.numMiss
	if total == 0 {
		return
	}

	sample := float64(c.bw.numMiss) / float64(total)

	if len(c.bw.missRateHistory) >= maxMissRateHistory {
		c.bw.missRateHistory = c.bw.missRateHistory[1:]
	}
	c.bw.missRateHistory = append(c.bw.missRateHistory, sample)
}

// MissRateHistory returns the bounded history of per-window miss rates
// sampled by the BW-balance loop, newest last. The monitoring package
// serves it as JSON on /api/controller/{name}/missrate.
func (c *MemoryController) MissRateHistory() []float64 {
	out := make([]float64, len(c.bw.missRateHistory))
	copy(out, c.bw.missRateHistory)

	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}

	return f
}
