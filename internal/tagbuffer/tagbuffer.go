// Package tagbuffer implements the small set-associative TagBuffer
// HybridCache uses to filter physical-tag probes (spec.md §3, §4.2.5),
// grounded on the original implementation's TagBuffer class
// (original_source/src/mc.h) and generalised to Go idiom the way the
// teacher's mem/cache/internal/tagging.TagArray generalises a directory.
package tagbuffer

import "log"

// DefaultSets and DefaultWays are the HybridCache defaults from spec.md
// §3 ("128×8").
const (
	DefaultSets = 128
	DefaultWays = 8
)

type entry struct {
	tag       uint64
	occupied  bool
	remap     bool
	lru       uint64
}

// TagBuffer is a small set-associative table of {tag, remap_flag, lru}
// entries, with two insertion modes ("remap", which must survive until a
// flush, and "reference", which is LRU-replaceable).
type TagBuffer struct {
	numSets, numWays int
	sets             [][]entry
	occupied         int // Σ remap_flag, per spec.md §3's invariant
	clearTime        uint64
}

// New builds a TagBuffer with the given geometry.
func New(numSets, numWays int) *TagBuffer {
	if numSets <= 0 || numWays <= 0 {
		log.Panicf("tagbuffer: invalid geometry %d sets x %d ways", numSets, numWays)
	}

	tb := &TagBuffer{numSets: numSets, numWays: numWays}
	tb.sets = make([][]entry, numSets)
	for i := range tb.sets {
		tb.sets[i] = make([]entry, numWays)
	}

	return tb
}

func (tb *TagBuffer) setIndex(tag uint64) int {
	return int(tag % uint64(tb.numSets))
}

// ExistInTB reports whether tag is currently buffered.
func (tb *TagBuffer) ExistInTB(tag uint64) bool {
	set := tb.sets[tb.setIndex(tag)]
	for i := range set {
		if set[i].occupied && set[i].tag == tag {
			return true
		}
	}

	return false
}

// CanInsert reports whether tag could be inserted into its set without
// displacing a remap-flagged entry.
func (tb *TagBuffer) CanInsert(tag uint64) bool {
	set := tb.sets[tb.setIndex(tag)]
	for i := range set {
		if !set[i].occupied || !set[i].remap {
			return true
		}
	}

	return false
}

// CanInsertPair reports whether both tags could coexist in their
// respective sets without displacing any remap-flagged entry — used by
// HybridCache installation, which needs room for both the new tag and the
// evicted tag it re-buffers, both as remap-flagged entries.
func (tb *TagBuffer) CanInsertPair(t1, t2 uint64) bool {
	if tb.setIndex(t1) != tb.setIndex(t2) {
		return tb.CanInsert(t1) && tb.CanInsert(t2)
	}

	set := tb.sets[tb.setIndex(t1)]
	free := 0
	for i := range set {
		if !set[i].occupied || !set[i].remap {
			free++
		}
	}

	return free >= 2
}

// Insert places tag into its set, evicting an LRU non-remap entry if
// necessary. It panics if no such entry exists — spec.md §7 treats an
// un-flushed CanInsert failure as fatal.
func (tb *TagBuffer) Insert(tag uint64, remap bool) {
	setIdx := tb.setIndex(tag)
	set := tb.sets[setIdx]

	victim := -1
	for i := range set {
		if !set[i].occupied {
			victim = i
			break
		}
	}

	if victim == -1 {
		best := -1
		for i := range set {
			if set[i].remap {
				continue
			}
			if best == -1 || set[i].lru > set[best].lru {
				best = i
			}
		}
		if best == -1 {
			log.Panicf("tagbuffer: cannot insert tag %#x into set %d, "+
				"every way is remap-flagged and unflushed", tag, setIdx)
		}
		victim = best
	}

	if set[victim].occupied && set[victim].remap {
		tb.occupied--
	}

	set[victim] = entry{tag: tag, occupied: true, remap: remap}
	if remap {
		tb.occupied++
	}

	tb.touch(setIdx, victim)
}

func (tb *TagBuffer) touch(setIdx, way int) {
	set := tb.sets[setIdx]
	for i := range set {
		if i != way && set[i].occupied {
			set[i].lru++
		}
	}
	set[way].lru = 0
}

// Occupancy returns entry_occupied / (numSets*numWays), spec.md §3's
// TagBuffer.getOccupancy.
func (tb *TagBuffer) Occupancy() float64 {
	return float64(tb.occupied) / float64(tb.numSets*tb.numWays)
}

// EntryOccupied returns the count of remap-flagged entries, kept equal to
// Σ remap_flag by construction (spec.md §3, §8's TagBuffer invariant).
func (tb *TagBuffer) EntryOccupied() int {
	return tb.occupied
}

// Clear empties every set and resets the remap-flagged count to zero.
func (tb *TagBuffer) Clear() {
	for i := range tb.sets {
		tb.sets[i] = make([]entry, tb.numWays)
	}
	tb.occupied = 0
}

// SetClearTime records when the buffer was last flushed.
func (tb *TagBuffer) SetClearTime(cycle uint64) { tb.clearTime = cycle }

// ClearTime returns the cycle the buffer was last flushed at.
func (tb *TagBuffer) ClearTime() uint64 { return tb.clearTime }
