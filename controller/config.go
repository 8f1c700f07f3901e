package controller

import "github.com/sarchlab/dramcachectl/core"

// Scheme is the tagged variant spec.md §9's design notes ask for in place
// of the source's "if scheme == X" ladders.
type Scheme int

// The nine caching schemes spec.md §6 recognises, plus the supplemented
// SchemeSD (segmented-directory RRPV scheme, from original_source/).
const (
	SchemeNoCache Scheme = iota
	SchemeCacheOnly
	SchemeAlloyCache
	SchemeUnisonCache
	SchemeHybridCache
	SchemeHMA
	SchemeTagless
	SchemeBasicCache
	SchemeTrimma
	SchemeSD
)

func (s Scheme) String() string {
	switch s {
	case SchemeNoCache:
		return "NoCache"
	case SchemeCacheOnly:
		return "CacheOnly"
	case SchemeAlloyCache:
		return "AlloyCache"
	case SchemeUnisonCache:
		return "UnisonCache"
	case SchemeHybridCache:
		return "HybridCache"
	case SchemeHMA:
		return "HMA"
	case SchemeTagless:
		return "Tagless"
	case SchemeBasicCache:
		return "BasicCache"
	case SchemeTrimma:
		return "Trimma"
	case SchemeSD:
		return "SD"
	default:
		return "unknown"
	}
}

// Granularity is the page size a scheme is configured with: 64 B
// (AlloyCache), 4 KiB, or 2 MiB (spec.md §3).
type Granularity int

// The three granularities spec.md §6 recognises.
const (
	Granularity64B  Granularity = 64
	Granularity4KiB Granularity = 4096
	Granularity2MiB Granularity = 2 * 1024 * 1024
)

// Config is the full set of configuration keys spec.md §6 lists. It is
// built with the WithXxx chain below, mirroring the teacher's builder
// idiom for constructing components.
type Config struct {
	Name string

	Scheme        Scheme
	Granularity   Granularity
	NumWays       int
	SizeMiB       int
	FootprintSize int // lines per page, UnisonCache/Tagless only
	McdramPerMC   int

	SRAMTag         bool
	BWBalance       bool
	Ideal           bool
	DRAMTimingScale float64

	TagBufferSets int
	TagBufferWays int

	EnableTrace  bool
	TraceDir     string
	MaxTraceLen  int

	LLCLatency core.Cycle

	OSQuantum uint64 // HMA: remapPages() invoked every OSQuantum requests

	MaxPFN uint32 // page-table geometry
}

// NewConfig returns a Config with the defaults the reference schemes use.
func NewConfig() *Config {
	return &Config{
		Scheme:          SchemeNoCache,
		Granularity:     Granularity64B,
		NumWays:         1,
		SizeMiB:         1,
		FootprintSize:   64, // 4 KiB / 64 B
		McdramPerMC:     1,
		DRAMTimingScale: 1.0,
		TagBufferSets:   128,
		TagBufferWays:   8,
		MaxTraceLen:     4096,
		LLCLatency:      10,
		OSQuantum:       1000,
		MaxPFN:          1 << 20,
	}
}

func (c *Config) WithName(name string) *Config               { c.Name = name; return c }
func (c *Config) WithScheme(s Scheme) *Config                { c.Scheme = s; return c }
func (c *Config) WithGranularity(g Granularity) *Config      { c.Granularity = g; return c }
func (c *Config) WithNumWays(n int) *Config                  { c.NumWays = n; return c }
func (c *Config) WithSizeMiB(n int) *Config                  { c.SizeMiB = n; return c }
func (c *Config) WithFootprintSize(n int) *Config            { c.FootprintSize = n; return c }
func (c *Config) WithMcdramPerMC(n int) *Config              { c.McdramPerMC = n; return c }
func (c *Config) WithSRAMTag(b bool) *Config                 { c.SRAMTag = b; return c }
func (c *Config) WithBWBalance(b bool) *Config               { c.BWBalance = b; return c }
func (c *Config) WithIdeal(b bool) *Config                   { c.Ideal = b; return c }
func (c *Config) WithDRAMTimingScale(f float64) *Config      { c.DRAMTimingScale = f; return c }
func (c *Config) WithTagBufferSize(sets, ways int) *Config   { c.TagBufferSets, c.TagBufferWays = sets, ways; return c }
func (c *Config) WithTrace(enable bool, dir string) *Config  { c.EnableTrace, c.TraceDir = enable, dir; return c }
func (c *Config) WithMaxTraceLen(n int) *Config              { c.MaxTraceLen = n; return c }
func (c *Config) WithLLCLatency(cyc core.Cycle) *Config      { c.LLCLatency = cyc; return c }
func (c *Config) WithOSQuantum(n uint64) *Config             { c.OSQuantum = n; return c }
func (c *Config) WithMaxPFN(n uint32) *Config                { c.MaxPFN = n; return c }

// LinesPerPage returns granularity/64, the number of 64 B lines a page of
// this configuration's granularity spans (spec.md §3).
func (c *Config) LinesPerPage() int {
	return int(c.Granularity) / 64
}

// NumSets computes num_sets = cache_size / num_ways / granularity
// (spec.md §3). Tagless callers must separately enforce num_sets == 1.
func (c *Config) NumSets() int {
	sizeBytes := c.SizeMiB * 1024 * 1024
	return sizeBytes / c.NumWays / int(c.Granularity)
}
