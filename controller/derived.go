package controller

import "github.com/sarchlab/dramcachectl/core"

// derived quantities shared by every scheme handler, computed from a line
// address (spec.md §4.2 preamble).

func nearChannel(a core.LineAddr, mcdramPerMC int) uint64 {
	return (uint64(a) / 64) % uint64(mcdramPerMC)
}

func nearAddr(a core.LineAddr, mcdramPerMC int) uint64 {
	return ((uint64(a)/64/uint64(mcdramPerMC))*64) | (uint64(a) % 64)
}

func tagOf(a core.LineAddr, linesPerPage int) uint64 {
	return uint64(a) / uint64(linesPerPage)
}

func setOf(tag uint64, numSets int) int {
	return int(tag % uint64(numSets))
}
