package controller

import (
	"github.com/sarchlab/dramcachectl/core"
	"github.com/sarchlab/dramcachectl/timing"
)

// accessReq builds the AccessRequest a timing.Backend expects from a line
// address, whether the access writes, and the cycle it is issued at.
func accessReq(lineAddr core.LineAddr, isWrite bool, cycle core.Cycle) timing.AccessRequest {
	kind := timing.Read
	if isWrite {
		kind = timing.Write
	}

	return timing.AccessRequest{LineAddress: lineAddr, Kind: kind, Cycle: cycle}
}

// burstUnitsForBytes converts a byte count to burst units (spec.md §4.2).
func burstUnitsForBytes(bytes int) int {
	return timing.BurstCycles(bytes)
}

// burstUnitsForLines converts a count of 64 B lines to burst units.
func burstUnitsForLines(lines int) int {
	return timing.BurstCycles(lines * 64)
}
