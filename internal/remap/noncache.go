package remap

// NonIdCacheWays and NonIdCacheSets are the geometry from spec.md §3:
// "2048 sets × 6 ways, LRU, caches active non-identity remappings".
const (
	NonIdCacheSets = 2048
	NonIdCacheWays = 6
)

type nonIdEntry struct {
	tag       uint64
	deviceAddr uint64
	valid     bool
	lru       uint64
}

// NonIdCache accelerates the iRT for actively-remapped (non-identity)
// physical tags.
type NonIdCache struct {
	sets [NonIdCacheSets][NonIdCacheWays]nonIdEntry
}

// NewNonIdCache builds an empty NonIdCache.
func NewNonIdCache() *NonIdCache {
	return &NonIdCache{}
}

func (c *NonIdCache) index(pa uint64) (setIdx int, tag uint64) {
	return int(pa % NonIdCacheSets), pa / NonIdCacheSets
}

// Lookup returns the cached device address for pa, if present.
func (c *NonIdCache) Lookup(pa uint64) (deviceAddr uint64, hit bool) {
	setIdx, tag := c.index(pa)
	set := &c.sets[setIdx]

	for i := range set {
		if set[i].valid && set[i].tag == tag {
			c.touch(setIdx, i)
			return set[i].deviceAddr, true
		}
	}

	return 0, false
}

// Insert records pa -> deviceAddr. An entry already cached for pa is
// updated in place; otherwise the LRU way of pa's set is evicted.
func (c *NonIdCache) Insert(pa, deviceAddr uint64) {
	setIdx, tag := c.index(pa)
	set := &c.sets[setIdx]

	for i := range set {
		if set[i].valid && set[i].tag == tag {
			set[i].deviceAddr = deviceAddr
			c.touch(setIdx, i)
			return
		}
	}

	victim := 0
	for i := range set {
		if !set[i].valid {
			victim = i
			break
		}
		if set[i].lru > set[victim].lru {
			victim = i
		}
	}

	set[victim] = nonIdEntry{tag: tag, deviceAddr: deviceAddr, valid: true}
	c.touch(setIdx, victim)
}

func (c *NonIdCache) touch(setIdx, way int) {
	set := &c.sets[setIdx]
	for i := range set {
		if i != way && set[i].valid {
			set[i].lru++
		}
	}
	set[way].lru = 0
}
