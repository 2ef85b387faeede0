package sqrtrank

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// compressionTable maps raw values to dense 1-based ranks.
// values is strictly increasing and never shrinks.
type compressionTable[T constraints.Signed] struct {
	values []T
}

func newCompressionTable[T constraints.Signed](vals []T) *compressionTable[T] {
	values := slices.Clone(vals)
	slices.Sort(values)
	values = slices.Compact(values)
	return &compressionTable[T]{values: slices.Clip(values)}
}

// Size returns the number of distinct values ever observed.
func (ct *compressionTable[T]) Size() int {
	return len(ct.values)
}

func (ct *compressionTable[T]) rankOf(val T) (int, bool) {
	pos, found := slices.BinarySearch(ct.values, val)
	if !found {
		return 0, false
	}
	return pos + 1, true
}

// ensure returns the rank of val, inserting it first if it is unseen.
// grew reports an insertion, after which every rank >= the returned one
// has shifted and derived state must be rebuilt.
func (ct *compressionTable[T]) ensure(val T) (rank int, grew bool) {
	pos, found := slices.BinarySearch(ct.values, val)
	if found {
		return pos + 1, false
	}
	ct.values = slices.Insert(ct.values, pos, val)
	return pos + 1, true
}

func (ct *compressionTable[T]) valueOf(rank int) T {
	return ct.values[rank-1]
}

// upperRank returns the number of known values <= val, which is the largest
// rank whose value does not exceed val (0 if none).
func (ct *compressionTable[T]) upperRank(val T) int {
	pos, found := slices.BinarySearch(ct.values, val)
	if found {
		return pos + 1
	}
	return pos
}
