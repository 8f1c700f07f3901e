package placement

import "github.com/sarchlab/dramcachectl/core"

// LRULinePolicy always installs a missing line, evicting whatever way0
// currently holds. It is the default LinePolicy for AlloyCache.
type LRULinePolicy struct{}

// HandleCacheMiss implements LinePolicy.
func (LRULinePolicy) HandleCacheMiss(bool) bool {
	return true
}

// LRUPagePolicy is a straightforward least-recently-used page policy:
// every set has its own recency stack, and a miss always installs into
// the LRU way.
type LRUPagePolicy struct {
	numWays int
	recency [][]int // per set, most-recently-used way last
}

// Initialize implements PagePolicy.
func (p *LRUPagePolicy) Initialize(numSets, numWays int) {
	p.numWays = numWays
	p.recency = make([][]int, numSets)
	for s := range p.recency {
		stack := make([]int, numWays)
		for w := range stack {
			stack[w] = w
		}
		p.recency[s] = stack
	}
}

// HandleCacheMiss implements PagePolicy: it always installs, evicting the
// least-recently-used way of the set.
func (p *LRUPagePolicy) HandleCacheMiss(
	_ uint64,
	_ core.Kind,
	set int,
	_ *CounterAccess,
) int {
	victim := p.recency[set][0]
	p.touch(set, victim)

	return victim
}

// HandleCacheHit implements PagePolicy.
func (p *LRUPagePolicy) HandleCacheHit(
	_ uint64,
	_ core.Kind,
	set int,
	_ *CounterAccess,
	hitWay int,
) {
	p.touch(set, hitWay)
}

// FlushChunk implements PagePolicy; the LRU policy keeps no state worth
// invalidating beyond the recency stack, which self-heals on next use.
func (p *LRUPagePolicy) FlushChunk(int) {}

func (p *LRUPagePolicy) touch(set, way int) {
	stack := p.recency[set]
	for i, w := range stack {
		if w == way {
			stack = append(stack[:i], stack[i+1:]...)
			break
		}
	}
	p.recency[set] = append(stack, way)
}
