package sqrtrank

import "golang.org/x/exp/constraints"

// OrderStatistics supports point updates and range order-statistic queries
// over a sequence indexed 1..Num().
type OrderStatistics[T constraints.Signed] interface {
	Num() int

	Dim() int

	Lookup(pos int) (T, bool)

	Update(pos int, val T) error

	Kth(l, r, k int) (T, bool)

	Quantile(ranze Range, k int) (T, bool)

	RankLessOrEqual(ranze Range, val T) int

	Close()
}

var (
	_ OrderStatistics[int64] = (*BlockIndex[int64])(nil)
	_ OrderStatistics[int64] = (*Synchronized[int64])(nil)
)
