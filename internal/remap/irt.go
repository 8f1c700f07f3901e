// Package remap implements the Trimma scheme's remapping index: a
// per-set two-level radix tree (iRT) over the upper bits of a physical
// address, plus the NonIdCache/IdCache SRAM accelerators that sit in
// front of it (spec.md §3, §4.2.9). Grounded on
// original_source/src/mc.h's iRT/NonIdCache/IdCache classes, re-expressed
// per spec.md §9's design note as a Go sum type instead of a C++ union.
package remap

import "log"

// Node is the sum type of an iRT tree node: it is either an Interior
// branch (a 2048-bit allocation bitmap plus 2048 child indices) or a Leaf
// (a 32-bit remapped block id).
type Node interface {
	isNode()
}

// Interior is a branch node of the radix tree.
type Interior struct {
	Bitmap   []uint64 // ChildrenPerNode bits, packed 64 per word
	Children []int32  // ChildrenPerNode entries; -1 means unallocated
}

func (Interior) isNode() {}

// Leaf stores the remapped block id for one physical block.
type Leaf struct {
	BlockID uint32
}

func (Leaf) isNode() {}

const invalidChild int32 = -1

func bitSet(bitmap []uint64, pos int) bool {
	return bitmap[pos/64]&(1<<uint(pos%64)) != 0
}

func setBit(bitmap []uint64, pos int) {
	bitmap[pos/64] |= 1 << uint(pos%64)
}

func newInterior(childrenPerNode int) Interior {
	n := Interior{
		Bitmap:   make([]uint64, (childrenPerNode+63)/64),
		Children: make([]int32, childrenPerNode),
	}
	for i := range n.Children {
		n.Children[i] = invalidChild
	}

	return n
}

// Table is the per-controller iRT: NumSets independent trees, sharing one
// flat node pool. Deallocation is not modelled (original_source/src/mc.h:
// "todo: handle memory alignment" notwithstanding, node reuse was never
// implemented there either).
type Table struct {
	SetBits    int
	LevelBits  int
	Levels     int
	OffsetBits int

	childrenPerNode int
	numSets         int
	roots           []int32
	pool            []Node
}

// NewTable builds an iRT with the given address-layout parameters. The
// spec.md §8 worked example uses SetBits=11? no — it names "2-level,
// 11-bit slots, 8-bit offset"; callers construct with the layout their
// scenario needs.
func NewTable(setBits, levelBits, levels, offsetBits int) *Table {
	if levels < 1 {
		log.Panicf("remap: iRT needs at least one level, got %d", levels)
	}

	t := &Table{
		SetBits:         setBits,
		LevelBits:       levelBits,
		Levels:          levels,
		OffsetBits:      offsetBits,
		childrenPerNode: 1 << uint(levelBits),
		numSets:         1 << uint(setBits),
	}

	t.roots = make([]int32, t.numSets)
	for i := range t.roots {
		t.roots[i] = t.allocate(newInterior(t.childrenPerNode))
	}

	return t
}

func (t *Table) allocate(n Node) int32 {
	t.pool = append(t.pool, n)
	return int32(len(t.pool) - 1)
}

func (t *Table) setIndex(pa uint64) int {
	shift := uint(t.LevelBits*t.Levels + t.OffsetBits)
	return int(pa>>shift) & (t.numSets - 1)
}

// slot extracts the level-th (0-indexed, root-first) branch slot from pa.
func (t *Table) slot(pa uint64, level int) int {
	shift := uint(t.OffsetBits + (t.Levels-level-1)*t.LevelBits)
	return int(pa>>shift) & (t.childrenPerNode - 1)
}

func (t *Table) offsetMask() uint64 {
	return (uint64(1) << uint(t.OffsetBits)) - 1
}

// Translate maps a physical address to a device address. Unallocated
// paths fall back to identity mapping (device address == physical
// address), per spec.md §4.2.9 step 4 and the GLOSSARY's "Identity
// mapping" entry.
func (t *Table) Translate(pa uint64) (deviceAddr uint64, identity bool) {
	setIdx := t.setIndex(pa)
	if setIdx < 0 || setIdx >= len(t.roots) {
		return pa, true
	}

	cur := t.roots[setIdx]

	for level := 0; level < t.Levels-1; level++ {
		node, ok := t.pool[cur].(Interior)
		if !ok {
			return pa, true
		}

		slot := t.slot(pa, level)
		if !bitSet(node.Bitmap, slot) {
			return pa, true
		}

		cur = node.Children[slot]
	}

	last, ok := t.pool[cur].(Interior)
	if !ok {
		return pa, true
	}

	slot := t.slot(pa, t.Levels-1)
	if !bitSet(last.Bitmap, slot) {
		return pa, true
	}

	leaf, ok := t.pool[last.Children[slot]].(Leaf)
	if !ok {
		return pa, true
	}

	deviceAddr = (uint64(leaf.BlockID) << uint(t.OffsetBits)) | (pa & t.offsetMask())

	return deviceAddr, false
}

// Update installs a remapping for pa's block, allocating interior nodes
// lazily along the way (marking their allocation bitmap) and writing the
// leaf's remapped block id. Reads worst-case Levels+1 pool entries, one
// per level plus the leaf, matching spec.md §4.2.9's "L+1 off-chip reads
// in the worst case for L levels".
func (t *Table) Update(pa, deviceAddr uint64) {
	setIdx := t.setIndex(pa)
	if setIdx < 0 || setIdx >= len(t.roots) {
		log.Panicf("remap: physical address %#x maps to out-of-range set %d", pa, setIdx)
	}

	cur := t.roots[setIdx]

	for level := 0; level < t.Levels-1; level++ {
		node := t.pool[cur].(Interior)
		slot := t.slot(pa, level)

		if !bitSet(node.Bitmap, slot) {
			child := t.allocate(newInterior(t.childrenPerNode))
			setBit(node.Bitmap, slot)
			node.Children[slot] = child
		}

		cur = node.Children[slot]
	}

	node := t.pool[cur].(Interior)
	slot := t.slot(pa, t.Levels-1)
	blockID := uint32(deviceAddr >> uint(t.OffsetBits))

	if bitSet(node.Bitmap, slot) {
		t.pool[node.Children[slot]] = Leaf{BlockID: blockID}
		return
	}

	leaf := t.allocate(Leaf{BlockID: blockID})
	setBit(node.Bitmap, slot)
	node.Children[slot] = leaf
}
