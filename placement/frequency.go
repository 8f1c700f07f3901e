package placement

import "github.com/sarchlab/dramcachectl/core"

// FrequencyPagePolicy evicts the resident way with the lowest access
// counter, charging one counter-array read per hit/miss decision and one
// write whenever a counter changes — this is the traffic spec.md §6
// attributes to the "FBR placement policy" via CounterAccess.
type FrequencyPagePolicy struct {
	numWays  int
	tags     [][]uint64
	counts   [][]uint64
	occupied [][]bool
}

// Initialize implements PagePolicy.
func (p *FrequencyPagePolicy) Initialize(numSets, numWays int) {
	p.numWays = numWays
	p.tags = make([][]uint64, numSets)
	p.counts = make([][]uint64, numSets)
	p.occupied = make([][]bool, numSets)

	for s := 0; s < numSets; s++ {
		p.tags[s] = make([]uint64, numWays)
		p.counts[s] = make([]uint64, numWays)
		p.occupied[s] = make([]bool, numWays)
	}
}

// HandleCacheMiss implements PagePolicy.
func (p *FrequencyPagePolicy) HandleCacheMiss(
	tag uint64,
	_ core.Kind,
	set int,
	counter *CounterAccess,
) int {
	counter.Reads++

	victim := 0
	for w := 0; w < p.numWays; w++ {
		if !p.occupied[set][w] {
			victim = w
			break
		}
		if p.counts[set][w] < p.counts[set][victim] {
			victim = w
		}
	}

	p.tags[set][victim] = tag
	p.counts[set][victim] = 0
	p.occupied[set][victim] = true
	counter.Writes++

	return victim
}

// HandleCacheHit implements PagePolicy.
func (p *FrequencyPagePolicy) HandleCacheHit(
	_ uint64,
	_ core.Kind,
	set int,
	counter *CounterAccess,
	hitWay int,
) {
	counter.Reads++
	p.counts[set][hitWay]++
	counter.Writes++
}

// FlushChunk implements PagePolicy, dropping the frequency counters of a
// set that is about to be disabled by BW-balance.
func (p *FrequencyPagePolicy) FlushChunk(set int) {
	for w := range p.occupied[set] {
		p.occupied[set][w] = false
		p.counts[set][w] = 0
	}
}
