package controller

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	It("builds with the WithXxx chain", func() {
		cfg := NewConfig().
			WithName("mc0").
			WithScheme(SchemeUnisonCache).
			WithGranularity(Granularity4KiB).
			WithNumWays(16).
			WithSizeMiB(128).
			WithFootprintSize(64).
			WithSRAMTag(true).
			WithBWBalance(true).
			WithIdeal(false)

		Expect(cfg.Name).To(Equal("mc0"))
		Expect(cfg.Scheme).To(Equal(SchemeUnisonCache))
		Expect(cfg.Granularity).To(Equal(Granularity4KiB))
		Expect(cfg.NumWays).To(Equal(16))
		Expect(cfg.SizeMiB).To(Equal(128))
		Expect(cfg.SRAMTag).To(BeTrue())
		Expect(cfg.BWBalance).To(BeTrue())
		Expect(cfg.Ideal).To(BeFalse())
	})

	It("computes LinesPerPage as granularity/64", func() {
		cfg := NewConfig().WithGranularity(Granularity4KiB)
		Expect(cfg.LinesPerPage()).To(Equal(64))

		cfg = NewConfig().WithGranularity(Granularity64B)
		Expect(cfg.LinesPerPage()).To(Equal(1))
	})

	It("computes NumSets as cache_size / num_ways / granularity", func() {
		cfg := NewConfig().
			WithSizeMiB(128).
			WithNumWays(16).
			WithGranularity(Granularity4KiB)

		sizeBytes := 128 * 1024 * 1024
		Expect(cfg.NumSets()).To(Equal(sizeBytes / 16 / 4096))
	})

	It("prints scheme names", func() {
		Expect(SchemeNoCache.String()).To(Equal("NoCache"))
		Expect(SchemeSD.String()).To(Equal("SD"))
		Expect(Scheme(999).String()).To(Equal("unknown"))
	})

	It("defaults to sensible reference values", func() {
		cfg := NewConfig()
		Expect(cfg.Scheme).To(Equal(SchemeNoCache))
		Expect(cfg.TagBufferSets).To(Equal(128))
		Expect(cfg.TagBufferWays).To(Equal(8))
		Expect(cfg.OSQuantum).To(Equal(uint64(1000)))
	})
})
