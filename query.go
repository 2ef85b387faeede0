package sqrtrank

func (bi *BlockIndex[T]) validRange(l, r int) bool {
	return 1 <= l && l <= r && r <= bi.num
}

// Kth returns the k-th smallest value (k is 1-based) among indices [l, r].
// The second result is false if the range or k is invalid.
func (bi *BlockIndex[T]) Kth(l, r, k int) (T, bool) {
	var zero T
	if !bi.validRange(l, r) || k < 1 || k > r-l+1 {
		bi.metrics.observeQuery(0, false)
		return zero, false
	}
	low, high, ans := 1, bi.table.Size(), 0
	rounds := 0
	for low <= high {
		mid := int(uint(low+high) >> 1)
		rounds++
		if bi.countInRange(l, r, mid) >= k {
			ans = mid
			high = mid - 1
		} else {
			low = mid + 1
		}
	}
	if ans == 0 {
		bi.metrics.observeQuery(rounds, false)
		return zero, false
	}
	bi.metrics.observeQuery(rounds, true)
	return bi.table.valueOf(ans), true
}

// Quantile returns (k+1)th smallest value in T[ranze.L, ranze.R]
func (bi *BlockIndex[T]) Quantile(ranze Range, k int) (T, bool) {
	return bi.Kth(ranze.L, ranze.R, k+1)
}

// RankLessOrEqual returns the number of indices in ranze whose value is <= val.
// val need not be a value the index has seen.
func (bi *BlockIndex[T]) RankLessOrEqual(ranze Range, val T) int {
	if !bi.validRange(ranze.L, ranze.R) {
		return 0
	}
	rank := bi.table.upperRank(val)
	if rank == 0 {
		return 0
	}
	return bi.countInRange(ranze.L, ranze.R, rank)
}

// countInRange returns the number of indices in [l, r] with rank <= rank.
// Blocks fully inside the range are counted by binary search, partially
// covered ones index by index.
func (bi *BlockIndex[T]) countInRange(l, r, rank int) int {
	part := bi.store.part
	cnt := 0
	for b := part.blockOf(l); b <= part.blockOf(r); b++ {
		start, end := part.bounds(b)
		lo, hi := max(start, l), min(end, r)
		if lo == start && hi == end {
			cnt += bi.store.countLessOrEqual(b, rank)
			continue
		}
		for i := lo; i <= hi; i++ {
			if bi.ranks[i] <= rank {
				cnt++
			}
		}
	}
	return cnt
}
