package sqrtrank

import (
	"context"
	"sync"

	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
)

// Synchronized guards a BlockIndex with a single read/write lock.
// Queries share the read lock; updates take the write lock because a
// rebuild may change every rank.
type Synchronized[T constraints.Signed] struct {
	mu sync.RWMutex
	bi *BlockIndex[T]
}

// NewSynchronized wraps bi. bi must not be used directly afterwards.
func NewSynchronized[T constraints.Signed](bi *BlockIndex[T]) *Synchronized[T] {
	return &Synchronized[T]{bi: bi}
}

// Query is a single k-th smallest request over [L, R].
type Query struct {
	L int
	R int
	K int
}

// Result is the answer to a Query; Found is false for NotFound.
type Result[T constraints.Signed] struct {
	Value T
	Found bool
}

func (s *Synchronized[T]) Num() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bi.Num()
}

func (s *Synchronized[T]) Dim() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bi.Dim()
}

func (s *Synchronized[T]) Lookup(pos int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bi.Lookup(pos)
}

func (s *Synchronized[T]) Update(pos int, val T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bi.Update(pos, val)
}

func (s *Synchronized[T]) Kth(l, r, k int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bi.Kth(l, r, k)
}

func (s *Synchronized[T]) Quantile(ranze Range, k int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bi.Quantile(ranze, k)
}

func (s *Synchronized[T]) RankLessOrEqual(ranze Range, val T) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bi.RankLessOrEqual(ranze, val)
}

func (s *Synchronized[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bi.Close()
}

// MarshalBinary encodes the wrapped index under the read lock.
func (s *Synchronized[T]) MarshalBinary() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bi.MarshalBinary()
}

// QueryBatch answers qs against a single consistent state, running up to
// parallelism queries at once (unbounded if parallelism <= 0).
// Updates are blocked until the batch finishes.
func (s *Synchronized[T]) QueryBatch(ctx context.Context, qs []Query, parallelism int) ([]Result[T], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]Result[T], len(qs))
	g, gctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i, q := range qs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, ok := s.bi.Kth(q.L, q.R, q.K)
			results[i] = Result[T]{Value: v, Found: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
