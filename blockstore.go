package sqrtrank

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// sortedBlock holds the ranks of one block's indices in ascending order.
type sortedBlock []int

// countLessOrEqual returns the number of entries <= rank.
func (sb sortedBlock) countLessOrEqual(rank int) int {
	pos, _ := slices.BinarySearch(sb, rank+1)
	return pos
}

func (sb *sortedBlock) insert(rank int) {
	pos, _ := slices.BinarySearch(*sb, rank)
	*sb = slices.Insert(*sb, pos, rank)
}

func (sb *sortedBlock) remove(rank int) {
	if len(*sb) == 0 {
		return
	}
	pos, found := slices.BinarySearch(*sb, rank)
	if !found {
		panic(fmt.Sprintf("sqrtrank: rank %d missing from its block (compression table and block store out of sync)", rank))
	}
	*sb = slices.Delete(*sb, pos, pos+1)
}

// blockStore keeps one sortedBlock per block of the partition.
type blockStore struct {
	part   blockPartition
	blocks []sortedBlock
}

func newBlockStore(part blockPartition, ranks []int) *blockStore {
	bs := &blockStore{
		part:   part,
		blocks: make([]sortedBlock, part.count),
	}
	bs.rebuildAll(ranks)
	return bs
}

// rebuildAll recomputes every block from ranks, which is indexed by
// position (ranks[0] is unused).
func (bs *blockStore) rebuildAll(ranks []int) {
	for b := 0; b < bs.part.count; b++ {
		start, end := bs.part.bounds(b)
		blk := append(bs.blocks[b][:0], ranks[start:end+1]...)
		slices.Sort(blk)
		bs.blocks[b] = blk
	}
}

func (bs *blockStore) countLessOrEqual(b, rank int) int {
	return bs.blocks[b].countLessOrEqual(rank)
}

func (bs *blockStore) insert(b, rank int) {
	bs.blocks[b].insert(rank)
}

func (bs *blockStore) remove(b, rank int) {
	bs.blocks[b].remove(rank)
}
