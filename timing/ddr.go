package timing

import "github.com/sarchlab/dramcachectl/core"

// DDRBackend is a reference stand-in for the full DDR timing model that
// spec.md §1 places out of scope ("only referenced through their
// interfaces"). It captures just enough of a real DDR controller's shape
// — a row-buffer hit/miss distinction and a per-burst-unit transfer time —
// to let scheme-handler tests exercise back-end selection without pulling
// in a real DDR simulator.
type DDRBackend struct {
	RowHitLatency    core.Cycle
	RowMissLatency   core.Cycle
	CyclesPerUnit    core.Cycle
	TimingScale      float64
	openRowPerChannel map[core.LineAddr]core.LineAddr
}

// NewDDRBackend constructs a DDRBackend with its open-row tracking
// initialised.
func NewDDRBackend(rowHit, rowMiss, perUnit core.Cycle, scale float64) *DDRBackend {
	return &DDRBackend{
		RowHitLatency:     rowHit,
		RowMissLatency:    rowMiss,
		CyclesPerUnit:     perUnit,
		TimingScale:       scale,
		openRowPerChannel: make(map[core.LineAddr]core.LineAddr),
	}
}

const ddrRowGranularity = 1024 // lines per open row, a coarse approximation

// Access implements Backend.
func (b *DDRBackend) Access(
	req AccessRequest,
	_ core.Priority,
	burstUnits int,
) core.Cycle {
	if burstUnits < 2 {
		burstUnits = 2
	}

	row := req.LineAddress / ddrRowGranularity
	latency := b.RowMissLatency
	if open, ok := b.openRowPerChannel[0]; ok && open == row {
		latency = b.RowHitLatency
	}
	b.openRowPerChannel[0] = row

	scale := b.TimingScale
	if scale <= 0 {
		scale = 1
	}

	transfer := b.CyclesPerUnit * core.Cycle(burstUnits)

	return req.Cycle + core.Cycle(float64(latency)*scale) + transfer
}
