package controller

import (
	"github.com/sarchlab/dramcachectl/timing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BW-balance", func() {
	newTestController := func(bwBalance bool) *MemoryController {
		cfg := NewConfig().
			WithScheme(SchemeNoCache).
			WithGranularity(Granularity4KiB).
			WithNumWays(4).
			WithSizeMiB(16). // NumSets == 1024
			WithBWBalance(bwBalance)

		return New(cfg, timing.SimpleBackend{Latency: 10}, timing.SimpleBackend{Latency: 100}, nil, nil, nil, nil)
	}

	It("halves the running counters every period regardless of bw_balance", func() {
		c := newTestController(false)
		c.bw.period = 1
		c.bw.mcBW, c.bw.extBW = 900, 100
		c.bw.numHit, c.bw.numMiss = 40, 10

		c.bwStep()

		Expect(c.bw.mcBW).To(Equal(uint64(450)))
		Expect(c.bw.extBW).To(Equal(uint64(50)))
		Expect(c.bw.numHit).To(Equal(uint64(20)))
		Expect(c.bw.numMiss).To(Equal(uint64(5)))
		Expect(c.bw.dsIndex).To(Equal(0)) // bw_balance disabled: no retargeting
	})

	It("does not retarget ds_index while the ratio sits within tolerance", func() {
		c := newTestController(true)
		c.bw.period = 1
		c.bw.mcBW, c.bw.extBW = 800, 200 // r == targetRatio exactly

		c.bwStep()

		Expect(c.bw.dsIndex).To(Equal(0))
	})

	It("grows ds_index when near-tier traffic outpaces the target ratio", func() {
		c := newTestController(true)
		c.bw.period = 1
		c.bw.mcBW, c.bw.extBW = 900, 100 // r == 0.9, 0.1 above target

		c.bwStep()

		Expect(c.bw.dsIndex).To(BeNumerically(">", 0))
		Expect(c.setDisabled(0)).To(BeTrue())
		Expect(c.setDisabled(c.bw.dsIndex)).To(BeFalse())
	})

	It("clamps ds_index to [0, num_sets]", func() {
		c := newTestController(true)
		c.bw.period = 1
		c.bw.mcBW, c.bw.extBW = 1000, 0 // maximally imbalanced

		c.bwStep()

		Expect(c.bw.dsIndex).To(BeNumerically("<=", c.tags.NumSets))
	})
})
