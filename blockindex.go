// Package sqrtrank provides a block-decomposed index over a mutable
// integer sequence, supporting point updates and range k-th smallest
// (quantile) queries in O(sqrt(N) log N) time.
package sqrtrank

import (
	"time"

	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Range represents the inclusive 1-based index range [L, R]
// only valid for 1 <= L <= R <= Num()
type Range struct {
	L int
	R int
}

// BlockIndex is the core of the library.
type BlockIndex[T constraints.Signed] struct {
	raw     []T   // raw[1..num]; raw[0] unused
	ranks   []int // ranks[i] is the rank of raw[i]
	num     int
	table   *compressionTable[T]
	store   *blockStore
	logger  *zap.Logger
	metrics *Metrics
}

// New builds a BlockIndex holding vals at indices 1..len(vals).
func New[T constraints.Signed](vals []T, opts ...Option) *BlockIndex[T] {
	o := applyOptions(opts)
	bi := &BlockIndex[T]{
		logger:  o.logger,
		metrics: o.metrics,
	}
	bi.reset(vals, newCompressionTable(vals), o.blockWidth)
	bi.logger.Debug("block index built",
		zap.Int("num", bi.num),
		zap.Int("blocks", bi.store.part.count),
		zap.Int("width", bi.store.part.width),
		zap.Int("distinct", bi.table.Size()),
	)
	return bi
}

func (bi *BlockIndex[T]) reset(vals []T, table *compressionTable[T], width int) {
	bi.num = len(vals)
	bi.raw = make([]T, bi.num+1)
	copy(bi.raw[1:], vals)
	bi.ranks = make([]int, bi.num+1)
	bi.table = table
	bi.remap()
	bi.store = newBlockStore(newBlockPartition(bi.num, width), bi.ranks)
}

// remap recomputes every index's rank from its raw value.
func (bi *BlockIndex[T]) remap() {
	for i := 1; i <= bi.num; i++ {
		rank, ok := bi.table.rankOf(bi.raw[i])
		if !ok {
			panic("sqrtrank: raw value missing from compression table")
		}
		bi.ranks[i] = rank
	}
}

// Rebuild recomputes all ranks and re-sorts every block from scratch.
// Update calls it whenever a previously unseen value is introduced;
// its cost is O(N log N).
func (bi *BlockIndex[T]) Rebuild() {
	if bi.store == nil {
		return
	}
	began := time.Now()
	bi.remap()
	bi.store.rebuildAll(bi.ranks)
	bi.metrics.observeRebuild()
	bi.logger.Debug("block index rebuilt",
		zap.Int("num", bi.num),
		zap.Int("distinct", bi.table.Size()),
		zap.Duration("took", time.Since(began)),
	)
}

// Num returns the number of indices N.
func (bi *BlockIndex[T]) Num() int {
	return bi.num
}

// Dim returns the number of distinct values ever observed.
func (bi *BlockIndex[T]) Dim() int {
	if bi.table == nil {
		return 0
	}
	return bi.table.Size()
}

// BlockWidth returns the number of indices per block.
func (bi *BlockIndex[T]) BlockWidth() int {
	if bi.store == nil {
		return 0
	}
	return bi.store.part.width
}

// Lookup returns the value at pos.
func (bi *BlockIndex[T]) Lookup(pos int) (T, bool) {
	if pos < 1 || pos > bi.num {
		var zero T
		return zero, false
	}
	return bi.raw[pos], true
}

// Values returns a copy of the values at indices 1..Num().
func (bi *BlockIndex[T]) Values() []T {
	if bi.num == 0 {
		return []T{}
	}
	return slices.Clone(bi.raw[1:])
}

// Close releases all storage. The index behaves as empty afterwards.
func (bi *BlockIndex[T]) Close() {
	bi.raw = nil
	bi.ranks = nil
	bi.num = 0
	bi.table = nil
	bi.store = nil
}

// MarshalBinary encodes BlockIndex into a binary form and returns the result.
// Only the block width, the values and the compression table are stored;
// ranks and blocks are derived again on decode.
func (bi *BlockIndex[T]) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	err = enc.Encode(max(bi.BlockWidth(), 1))
	if err != nil {
		return
	}
	err = enc.Encode(bi.Values())
	if err != nil {
		return
	}
	var known []T
	if bi.table != nil {
		known = bi.table.values
	}
	err = enc.Encode(known)
	return
}

// UnmarshalBinary decodes BlockIndex from a binary form generated MarshalBinary
func (bi *BlockIndex[T]) UnmarshalBinary(in []byte) (err error) {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)
	var width int
	if err = dec.Decode(&width); err != nil {
		return errors.Wrap(err, "decode block width")
	}
	var vals []T
	if err = dec.Decode(&vals); err != nil {
		return errors.Wrap(err, "decode values")
	}
	var known []T
	if err = dec.Decode(&known); err != nil {
		return errors.Wrap(err, "decode compression table")
	}
	if width < 1 {
		return errors.Wrapf(ErrCorruptSnapshot, "block width %d", width)
	}
	for i := 1; i < len(known); i++ {
		if known[i-1] >= known[i] {
			return errors.Wrapf(ErrCorruptSnapshot, "compression table not strictly increasing at %d", i)
		}
	}
	table := &compressionTable[T]{values: known}
	for i, v := range vals {
		if _, ok := table.rankOf(v); !ok {
			return errors.Wrapf(ErrCorruptSnapshot, "value %d at index %d not in compression table", v, i+1)
		}
	}
	if bi.logger == nil {
		bi.logger = zap.NewNop()
	}
	bi.reset(vals, table, width)
	return nil
}
