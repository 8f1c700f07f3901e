// Package placement defines the three placement-policy collaborator
// interfaces the scheme handlers consume (spec.md §6). The policies'
// internal decision heuristics are out of scope per spec.md §1; this
// package owns the contracts plus one reference implementation of each
// kind so the controller package can be exercised end to end.
package placement

import "github.com/sarchlab/dramcachectl/core"

//go:generate go run go.uber.org/mock/mockgen -destination mock_policy_test.go -package placement -write_package_comment=false . LinePolicy,PagePolicy,OSPolicy

// LinePolicy decides whether a line-granularity cache (AlloyCache) should
// install the line that just missed.
type LinePolicy interface {
	// HandleCacheMiss is told whether way0, the direct-mapped way the
	// missing line would occupy, currently holds valid data, and answers
	// whether the controller should install the new line there.
	HandleCacheMiss(way0Valid bool) (install bool)
}

// CounterAccess lets a page policy charge extra counter-array traffic
// (e.g. a frequency-based policy reading/writing per-page counters) back
// to the controller's stats.
type CounterAccess struct {
	Reads  int
	Writes int
}

// PagePolicy decides replacement for the page-granularity caches UnisonCache
// and HybridCache. Tagless (FIFO cursor) and BasicCache (tag-array LRU) pick
// their victims without it.
type PagePolicy interface {
	Initialize(numSets, numWays int)

	// HandleCacheMiss returns the way to install the missing tag into, or
	// numWays if no way should be used (the policy declines to cache it).
	HandleCacheMiss(
		tag uint64,
		kind core.Kind,
		set int,
		counter *CounterAccess,
	) (way int)

	HandleCacheHit(
		tag uint64,
		kind core.Kind,
		set int,
		counter *CounterAccess,
		hitWay int,
	)

	// FlushChunk is invoked by the BW-balance loop when a set is about to
	// be disabled, so the policy can drop any private state for it.
	FlushChunk(set int)
}

// OSPolicy models OS-driven page placement (HMA).
type OSPolicy interface {
	HandleCacheAccess(tag uint64, kind core.Kind)

	// RemapPages performs one migration pass and returns how many pages
	// were moved.
	RemapPages() uint64
}
