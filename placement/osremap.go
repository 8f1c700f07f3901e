package placement

import "github.com/sarchlab/dramcachectl/core"

// OSRemapPolicy is the reference OSPolicy for HMA: it tracks a per-tag
// access count and, on RemapPages, "migrates" (reports as moved) every
// tag whose count crosses HotThreshold, resetting its count.
type OSRemapPolicy struct {
	HotThreshold uint64

	counts map[uint64]uint64
}

// HandleCacheAccess implements OSPolicy.
func (p *OSRemapPolicy) HandleCacheAccess(tag uint64, _ core.Kind) {
	if p.counts == nil {
		p.counts = make(map[uint64]uint64)
	}
	p.counts[tag]++
}

// RemapPages implements OSPolicy.
func (p *OSRemapPolicy) RemapPages() uint64 {
	var moved uint64

	for tag, count := range p.counts {
		if count >= p.HotThreshold {
			moved++
			p.counts[tag] = 0
		}
	}

	return moved
}
