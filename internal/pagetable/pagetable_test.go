package pagetable

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PageTable", func() {
	It("round-robins PFNs and silently evicts the collided VA on wraparound", func() {
		pt := New(4)

		Expect(pt.MapPage(0x1000)).To(BeEquivalentTo(1))
		Expect(pt.MapPage(0x2000)).To(BeEquivalentTo(2))
		Expect(pt.MapPage(0x3000)).To(BeEquivalentTo(3))

		// Wraps back to PFN 1, evicting 0x1000's mapping.
		Expect(pt.MapPage(0x4000)).To(BeEquivalentTo(1))

		_, ok := pt.LookupPFN(0x1000)
		Expect(ok).To(BeFalse())

		pfn, ok := pt.LookupPFN(0x4000)
		Expect(ok).To(BeTrue())
		Expect(pfn).To(BeEquivalentTo(1))
	})

	It("never hands out PFN 0", func() {
		pt := New(4)
		Expect(pt.MapPage(0x1000)).NotTo(BeEquivalentTo(InvalidPFN))
	})

	It("satisfies the map/lookup round-trip law", func() {
		pt := New(16)
		va := uint64(0xABCDE000)

		pfn := pt.MapPage(va)

		got, ok := pt.LookupPFN(va)
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(pfn))
	})

	It("satisfies the unmap/lookup round-trip law", func() {
		pt := New(16)
		va := uint64(0xABCDE000)

		pt.MapPage(va)
		Expect(pt.UnmapPage(va)).To(BeTrue())

		_, ok := pt.LookupPFN(va)
		Expect(ok).To(BeFalse())
	})

	It("reports false when unmapping a VA that was never mapped", func() {
		pt := New(16)
		Expect(pt.UnmapPage(0xDEAD000)).To(BeFalse())
	})

	It("GetOrMapPage is idempotent", func() {
		pt := New(16)
		va := uint64(0x9000)

		first := pt.GetOrMapPage(va)
		second := pt.GetOrMapPage(va)

		Expect(second).To(Equal(first))
	})

	It("distinguishes VAs that share lower-level indices but differ at the top level", func() {
		pt := New(1024)

		va1 := uint64(0x1000)
		va2 := va1 | (uint64(1) << 30) // differs only in the l3 index

		pfn1 := pt.MapPage(va1)
		pfn2 := pt.MapPage(va2)

		Expect(pfn1).NotTo(Equal(pfn2))

		got1, ok1 := pt.LookupPFN(va1)
		got2, ok2 := pt.LookupPFN(va2)
		Expect(ok1).To(BeTrue())
		Expect(ok2).To(BeTrue())
		Expect(got1).To(Equal(pfn1))
		Expect(got2).To(Equal(pfn2))
	})
})
