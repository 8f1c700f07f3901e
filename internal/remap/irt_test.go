package remap

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Table (iRT)", func() {
	// A small 4-set (2 set bits), 3-bit-slot, 2-level, 4-bit-offset layout, chosen so
	// tests stay legible while exercising every level of the tree.
	newSmallTable := func() *Table {
		return NewTable(2, 3, 2, 4)
	}

	It("falls back to identity mapping for an address with no allocated path", func() {
		t := newSmallTable()
		pa := uint64(0x2AB)

		da, identity := t.Translate(pa)

		Expect(identity).To(BeTrue())
		Expect(da).To(Equal(pa))
	})

	It("satisfies the update/translate round-trip law, preserving the offset", func() {
		t := newSmallTable()

		const offset = uint64(0x5)
		pa := (uint64(1) << 10) | (uint64(2) << 7) | (uint64(3) << 4) | offset
		deviceBlock := uint64(0x3F)
		da := deviceBlock << 4 // offset bits of da are irrelevant to Update

		t.Update(pa, da)

		got, identity := t.Translate(pa)
		Expect(identity).To(BeFalse())
		Expect(got).To(Equal((deviceBlock << 4) | offset))
	})

	It("leaves an unrelated address in the same set at identity mapping", func() {
		t := newSmallTable()

		pa1 := (uint64(1) << 10) | (uint64(2) << 7) | (uint64(3) << 4)
		pa2 := (uint64(1) << 10) | (uint64(2) << 7) | (uint64(4) << 4) // different level-1 slot

		t.Update(pa1, 0xAA<<4)

		_, identity := t.Translate(pa2)
		Expect(identity).To(BeTrue())
	})

	It("lets a later Update overwrite an earlier remapping for the same address", func() {
		t := newSmallTable()
		pa := (uint64(0) << 10) | (uint64(1) << 7) | (uint64(1) << 4)

		t.Update(pa, 0x11<<4)
		t.Update(pa, 0x22<<4)

		da, identity := t.Translate(pa)
		Expect(identity).To(BeFalse())
		Expect(da).To(Equal(uint64(0x22 << 4)))
	})
})

var _ = Describe("NonIdCache", func() {
	It("caches an inserted remapping", func() {
		c := NewNonIdCache()
		pa := uint64(123)

		_, hit := c.Lookup(pa)
		Expect(hit).To(BeFalse())

		c.Insert(pa, 0xFACE)
		da, hit := c.Lookup(pa)
		Expect(hit).To(BeTrue())
		Expect(da).To(BeEquivalentTo(0xFACE))
	})
})

var _ = Describe("IdCache", func() {
	It("reports per-block identity status from a cached super-block bitmap", func() {
		c := NewIdCache()
		pa := uint64(3 * SuperBlockBytes)

		bitmap := uint32(1) << 5 // block 5 of the super-block is identity-mapped
		c.Insert(pa, bitmap)

		got, hit := c.Lookup(pa)
		Expect(hit).To(BeTrue())
		Expect(BlockIdentity(got, pa+5*256)).To(BeTrue())
		Expect(BlockIdentity(got, pa+6*256)).To(BeFalse())
	})
})
