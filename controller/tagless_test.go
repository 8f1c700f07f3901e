package controller

import (
	"github.com/sarchlab/dramcachectl/core"
	"github.com/sarchlab/dramcachectl/timing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tagless scheme", func() {
	// NumWays=4, NumSets=1 (the scheme's required geometry), so W+1
	// distinct tags force exactly one FIFO eviction round.
	newTaglessController := func() *MemoryController {
		cfg := NewConfig().
			WithScheme(SchemeTagless).
			WithGranularity(Granularity2MiB).
			WithNumWays(4).
			WithSizeMiB(8)

		return New(cfg, timing.SimpleBackend{Latency: 10}, timing.SimpleBackend{Latency: 100}, nil, nil, nil, nil)
	}

	linesPerPage := int(Granularity2MiB) / 64

	access := func(c *MemoryController, tag uint64) {
		req := &core.Request{
			LineAddress:  core.LineAddr(tag * uint64(linesPerPage)),
			Kind:         core.LoadShared,
			ArrivalCycle: 0,
		}
		c.Access(req)
	}

	It("enforces num_sets == 1", func() {
		Expect(New(NewConfig().WithScheme(SchemeTagless).WithGranularity(Granularity2MiB).
			WithNumWays(4).WithSizeMiB(8), timing.SimpleBackend{}, timing.SimpleBackend{},
			nil, nil, nil, nil).tags.NumSets).To(Equal(1))
	})

	It("misses on the first touch of each of the W ways, then hits on repeat", func() {
		c := newTaglessController()
		for tag := uint64(0); tag < 4; tag++ {
			access(c, tag)
		}
		Expect(c.Stats.LoadMiss).To(Equal(uint64(4)))

		access(c, 1) // still resident
		Expect(c.Stats.LoadHit).To(Equal(uint64(1)))
	})

	It("evicts the oldest way (FIFO) on the W+1th distinct tag", func() {
		c := newTaglessController()
		for tag := uint64(0); tag < 4; tag++ {
			access(c, tag)
		}

		access(c, 4) // 5th distinct tag: must evict tag 0's way
		Expect(c.Stats.LoadMiss).To(Equal(uint64(5)))

		access(c, 0) // tag 0 was evicted: must miss again, displacing tag 1
		Expect(c.Stats.LoadMiss).To(Equal(uint64(6)))

		access(c, 2) // tag 2 was never evicted: still a hit
		Expect(c.Stats.LoadHit).To(Equal(uint64(1)))
	})
})
