package controller

import "github.com/sarchlab/dramcachectl/core"

// SchemeHandler implements the tag/data/fill/writeback dance for one
// caching policy (spec.md §4.2). The controller dispatches to exactly one
// handler, fixed at construction from Config.Scheme (spec.md §9's "tagged
// variant dispatched once per request").
type SchemeHandler interface {
	// Access runs the scheme's full request-processing state machine and
	// returns the completion cycle. The controller's mutex is already held
	// by the caller.
	Access(c *MemoryController, req *core.Request) core.Cycle
}

func newHandler(s Scheme) SchemeHandler {
	switch s {
	case SchemeNoCache:
		return noCacheHandler{}
	case SchemeCacheOnly:
		return cacheOnlyHandler{}
	case SchemeAlloyCache:
		return alloyCacheHandler{}
	case SchemeUnisonCache:
		return unisonCacheHandler{}
	case SchemeHybridCache:
		return hybridCacheHandler{}
	case SchemeHMA:
		return hmaHandler{}
	case SchemeTagless:
		return taglessHandler{}
	case SchemeBasicCache:
		return basicCacheHandler{}
	case SchemeTrimma:
		return trimmaHandler{}
	case SchemeSD:
		return sdHandler{}
	default:
		return nil // New panics on an unknown scheme before this is reached
	}
}
