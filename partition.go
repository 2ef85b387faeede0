package sqrtrank

import "math"

// blockPartition splits the indices [1, num] into contiguous blocks of
// width indices each (the last one may be shorter).
type blockPartition struct {
	num   int
	width int
	count int
}

func newBlockPartition(num, width int) blockPartition {
	if width <= 0 {
		width = defaultBlockWidth(num)
	}
	return blockPartition{
		num:   num,
		width: width,
		count: (num + width - 1) / width,
	}
}

// defaultBlockWidth returns ceil(sqrt(num)), at least 1.
func defaultBlockWidth(num int) int {
	w := int(math.Sqrt(float64(num)))
	for w*w < num {
		w++
	}
	if w < 1 {
		w = 1
	}
	return w
}

// blockOf returns the 0-based block holding the 1-based index pos.
func (bp blockPartition) blockOf(pos int) int {
	return (pos - 1) / bp.width
}

// bounds returns the inclusive 1-based [start, end] of block b.
func (bp blockPartition) bounds(b int) (start, end int) {
	start = b*bp.width + 1
	end = start + bp.width - 1
	if end > bp.num {
		end = bp.num
	}
	return start, end
}
