package stats

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Counters", func() {
	It("snapshots independently of the live counters", func() {
		c := &Counters{LoadHit: 3}
		snap := c.Snapshot()

		c.LoadHit++

		Expect(snap.LoadHit).To(BeEquivalentTo(3))
		Expect(c.LoadHit).To(BeEquivalentTo(4))
	})

	It("names every spec-defined counter", func() {
		c := &Counters{
			Placement: 1, CleanEvict: 2, DirtyEvict: 3,
			LoadHit: 4, LoadMiss: 5, StoreHit: 6, StoreMiss: 7,
			CounterAccess: 8, TagLoad: 9, TagStore: 10, TagBufferFlush: 11,
			TBDirtyHit: 12, TBDirtyMiss: 13,
			TotalTouchLines: 14, TotalEvictLines: 15,
			TotalHit: 16, TotalMiss: 17, TotalInvalid: 18, TotalValid: 19,
			TotalMigrate: 20, TotalPolicy: 21,
		}

		named := c.Named()

		Expect(named).To(HaveLen(21))
		Expect(named["placement"]).To(BeEquivalentTo(1))
		Expect(named["TotalPolicy"]).To(BeEquivalentTo(21))
	})
})
