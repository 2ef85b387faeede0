package sqrtrank

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Update sets the value at pos to val.
//
// If val has never been seen, the compression table grows and the whole
// index is rebuilt; otherwise only pos's block is edited.
func (bi *BlockIndex[T]) Update(pos int, val T) error {
	if pos < 1 || pos > bi.num {
		return errors.Wrapf(ErrOutOfRange, "update index %d not in [1, %d]", pos, bi.num)
	}
	rank, grew := bi.table.ensure(val)
	bi.metrics.observeUpdate(grew)
	if grew {
		bi.logger.Debug("compression table grew",
			zap.Int64("value", int64(val)),
			zap.Int("rank", rank),
			zap.Int("distinct", bi.table.Size()),
		)
		bi.raw[pos] = val
		bi.Rebuild()
		return nil
	}
	b := bi.store.part.blockOf(pos)
	if old := bi.ranks[pos]; old != 0 {
		bi.store.remove(b, old)
	}
	bi.raw[pos] = val
	bi.ranks[pos] = rank
	bi.store.insert(b, rank)
	return nil
}
