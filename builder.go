package sqrtrank

import "golang.org/x/exp/constraints"

// Builder builds BlockIndex from an integer array.
// A user calls PushBack()s followed by Build().
type Builder[T constraints.Signed] struct {
	vals []T
	opts []Option
}

// NewBuilder returns a Builder; opts are applied by Build.
func NewBuilder[T constraints.Signed](opts ...Option) *Builder[T] {
	return &Builder[T]{
		vals: make([]T, 0),
		opts: opts,
	}
}

// PushBack appends val as the value of the next index.
func (b *Builder[T]) PushBack(val T) {
	b.vals = append(b.vals, val)
}

// Build returns a BlockIndex over the values pushed so far.
func (b *Builder[T]) Build() *BlockIndex[T] {
	return New(b.vals, b.opts...)
}
