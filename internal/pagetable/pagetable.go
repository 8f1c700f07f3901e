// Package pagetable implements the 3-level 9/9/9 virtual-to-physical page
// table (spec.md §3, §4.3), grounded on original_source/src/page_table.cpp
// and re-expressed with Go's lazily-allocated maps in place of the
// original's lazily-resized nested vectors, in the spirit of the teacher's
// mem/vm.pageTableImpl (a sync.Mutex-guarded map keyed by identity, built
// lazily on first use).
package pagetable

import "sync"

// PFN is a physical frame number. PFN 0 is reserved as the "not mapped"
// sentinel and is never handed out by the allocator.
type PFN uint32

// InvalidPFN is the sentinel PFN returned by a failed lookup.
const InvalidPFN PFN = 0

const (
	levelBits    = 9
	levelEntries = 1 << levelBits
	pageShift    = 12 // 4 KiB pages
)

// PageTable maps 4 KiB-aligned virtual addresses to PFNs through a 3-level
// table indexed by bits [38:30], [29:21], [20:12] of the VA. All
// operations hold a single mutex (spec.md §4.3, §5).
type PageTable struct {
	mu sync.Mutex

	maxPFN        PFN
	nextCandidate PFN

	l3 map[uint64]map[uint64]map[uint64]PFN // [l3idx][l2idx][l1idx] -> PFN

	pfnInUse  []bool
	pfnToVA   []uint64
	vaOfPFNOK []bool // pfnToVA[p] is meaningful iff vaOfPFNOK[p]
}

// New builds a PageTable whose allocator hands out PFNs in [1, maxPFN-1];
// PFN 0 is reserved.
func New(maxPFN PFN) *PageTable {
	pt := &PageTable{
		maxPFN:        maxPFN,
		nextCandidate: 1,
		l3:            make(map[uint64]map[uint64]map[uint64]PFN),
		pfnInUse:      make([]bool, maxPFN+1),
		pfnToVA:       make([]uint64, maxPFN+1),
		vaOfPFNOK:     make([]bool, maxPFN+1),
	}
	pt.pfnInUse[0] = true // PFN 0 is reserved, spec.md §3

	return pt
}

func l3Index(va uint64) uint64 { return (va >> (pageShift + 2*levelBits)) & (levelEntries - 1) }
func l2Index(va uint64) uint64 { return (va >> (pageShift + levelBits)) & (levelEntries - 1) }
func l1Index(va uint64) uint64 { return (va >> pageShift) & (levelEntries - 1) }

// allocatePFN implements the round-robin allocator: after max_pfn-1, the
// next candidate wraps to 1 (spec.md §4.3's invariant). If the candidate
// collides with a still-live mapping, that mapping is silently evicted
// (spec.md §7: "Page-table PFN collision → silent eviction of the older
// VA").
func (pt *PageTable) allocatePFN() PFN {
	candidate := pt.nextCandidate

	if candidate >= pt.maxPFN-1 {
		pt.nextCandidate = 1
	} else {
		pt.nextCandidate = candidate + 1
	}

	if pt.pfnInUse[candidate] && pt.vaOfPFNOK[candidate] {
		pt.unmapInternal(pt.pfnToVA[candidate])
	}

	pt.pfnInUse[candidate] = true

	return candidate
}

func (pt *PageTable) l1Table(va uint64, create bool) map[uint64]PFN {
	l3idx, l2idx := l3Index(va), l2Index(va)

	l2, ok := pt.l3[l3idx]
	if !ok {
		if !create {
			return nil
		}
		l2 = make(map[uint64]map[uint64]PFN)
		pt.l3[l3idx] = l2
	}

	l1, ok := l2[l2idx]
	if !ok {
		if !create {
			return nil
		}
		l1 = make(map[uint64]PFN)
		l2[l2idx] = l1
	}

	return l1
}

func (pt *PageTable) mapInternal(va uint64) PFN {
	pfn := pt.allocatePFN()

	l1 := pt.l1Table(va, true)
	l1[l1Index(va)] = pfn

	pt.pfnToVA[pfn] = va
	pt.vaOfPFNOK[pfn] = true

	return pfn
}

func (pt *PageTable) unmapInternal(va uint64) bool {
	l1 := pt.l1Table(va, false)
	if l1 == nil {
		return false
	}

	pfn, ok := l1[l1Index(va)]
	if !ok {
		return false
	}

	pt.pfnInUse[pfn] = false
	pt.vaOfPFNOK[pfn] = false
	delete(l1, l1Index(va))

	return true
}

func (pt *PageTable) lookupInternal(va uint64) (PFN, bool) {
	l1 := pt.l1Table(va, false)
	if l1 == nil {
		return InvalidPFN, false
	}

	pfn, ok := l1[l1Index(va)]
	return pfn, ok
}

// MapPage allocates a fresh PFN for va, evicting any mapping the
// round-robin allocator collides with.
func (pt *PageTable) MapPage(va uint64) PFN {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	return pt.mapInternal(va)
}

// UnmapPage releases va's mapping, if any, returning whether one existed.
func (pt *PageTable) UnmapPage(va uint64) bool {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	return pt.unmapInternal(va)
}

// LookupPFN returns va's PFN, or (InvalidPFN, false) if unmapped.
func (pt *PageTable) LookupPFN(va uint64) (PFN, bool) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	return pt.lookupInternal(va)
}

// GetOrMapPage atomically performs lookup-then-map.
func (pt *PageTable) GetOrMapPage(va uint64) PFN {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if pfn, ok := pt.lookupInternal(va); ok {
		return pfn
	}

	return pt.mapInternal(va)
}
