// Package stats holds the fixed list of monotone counters spec.md §6
// defines for a cache controller, plus an optional SQLite-backed sink that
// snapshots them to disk.
package stats

// Counters is the fixed set of monotone counters spec.md §6 names. All
// operations that mutate a cache controller's stats go through these
// fields; the controller holds them behind its own mutex, so Counters
// itself does no locking.
type Counters struct {
	Placement  uint64
	CleanEvict uint64
	DirtyEvict uint64

	LoadHit   uint64
	LoadMiss  uint64
	StoreHit  uint64
	StoreMiss uint64

	CounterAccess  uint64
	TagLoad        uint64
	TagStore       uint64
	TagBufferFlush uint64
	TBDirtyHit     uint64
	TBDirtyMiss    uint64

	TotalTouchLines uint64
	TotalEvictLines uint64

	TotalHit     uint64
	TotalMiss    uint64
	TotalInvalid uint64
	TotalValid   uint64
	TotalMigrate uint64
	TotalPolicy  uint64
}

// Snapshot returns a copy safe to hand to a reporting sink without holding
// the controller's lock any longer than needed.
func (c *Counters) Snapshot() Counters {
	return *c
}

// Named returns the counters as a name->value map keyed by the names
// spec.md §6 lists, for sinks that report by name (SQLite rows, JSON, the
// monitoring HTTP endpoint). Being a map, it carries no ordering.
func (c *Counters) Named() map[string]uint64 {
	return map[string]uint64{
		"placement":       c.Placement,
		"cleanEvict":      c.CleanEvict,
		"dirtyEvict":      c.DirtyEvict,
		"loadHit":         c.LoadHit,
		"loadMiss":        c.LoadMiss,
		"storeHit":        c.StoreHit,
		"storeMiss":       c.StoreMiss,
		"counterAccess":   c.CounterAccess,
		"tagLoad":         c.TagLoad,
		"tagStore":        c.TagStore,
		"tagBufferFlush":  c.TagBufferFlush,
		"TBDirtyHit":      c.TBDirtyHit,
		"TBDirtyMiss":     c.TBDirtyMiss,
		"totalTouchLines": c.TotalTouchLines,
		"totalEvictLines": c.TotalEvictLines,
		"TotalHit":        c.TotalHit,
		"TotalMiss":       c.TotalMiss,
		"TotalInvalid":    c.TotalInvalid,
		"TotalValid":      c.TotalValid,
		"TotalMigrate":    c.TotalMigrate,
		"TotalPolicy":     c.TotalPolicy,
	}
}
