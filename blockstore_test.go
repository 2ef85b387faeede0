package sqrtrank

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/exp/slices"
)

func TestSortedBlock(t *testing.T) {
	Convey("Given a sorted block with duplicates", t, func() {
		sb := sortedBlock{1, 3, 3, 5, 8}

		Convey("countLessOrEqual is an upper bound", func() {
			So(sb.countLessOrEqual(0), ShouldEqual, 0)
			So(sb.countLessOrEqual(1), ShouldEqual, 1)
			So(sb.countLessOrEqual(3), ShouldEqual, 3)
			So(sb.countLessOrEqual(4), ShouldEqual, 3)
			So(sb.countLessOrEqual(8), ShouldEqual, 5)
			So(sb.countLessOrEqual(99), ShouldEqual, 5)
		})

		Convey("insert keeps the order", func() {
			sb.insert(4)
			sb.insert(0)
			sb.insert(9)
			sb.insert(3)
			So(sb, ShouldResemble, sortedBlock{0, 1, 3, 3, 3, 4, 5, 8, 9})
		})

		Convey("remove drops a single occurrence", func() {
			sb.remove(3)
			So(sb, ShouldResemble, sortedBlock{1, 3, 5, 8})
			sb.remove(8)
			sb.remove(1)
			So(sb, ShouldResemble, sortedBlock{3, 5})
		})

		Convey("removing an absent rank panics", func() {
			So(func() { sb.remove(4) }, ShouldPanic)
		})
	})

	Convey("Removing from an empty block is a no-op", t, func() {
		var sb sortedBlock
		So(func() { sb.remove(1) }, ShouldNotPanic)
		So(len(sb), ShouldEqual, 0)
	})

	Convey("Random inserts and removes match a sorted reference", t, func() {
		rng := rand.New(rand.NewSource(4))
		var sb sortedBlock
		var ref []int
		for i := 0; i < 2000; i++ {
			if len(ref) > 0 && rng.Intn(3) == 0 {
				x := ref[rng.Intn(len(ref))]
				sb.remove(x)
				pos := slices.Index(ref, x)
				ref = slices.Delete(ref, pos, pos+1)
				continue
			}
			x := rng.Intn(50) + 1
			sb.insert(x)
			ref = append(ref, x)
			slices.Sort(ref)
		}
		So([]int(sb), ShouldResemble, ref)
	})
}

func TestBlockStore(t *testing.T) {
	Convey("Given ranks for nine indices in blocks of four", t, func() {
		ranks := []int{0, 4, 2, 9, 2, 7, 1, 1, 3, 5}
		bs := newBlockStore(newBlockPartition(9, 4), ranks)
		So(bs.blocks, ShouldResemble, []sortedBlock{{2, 2, 4, 9}, {1, 1, 3, 7}, {5}})
		So(bs.countLessOrEqual(0, 2), ShouldEqual, 2)
		So(bs.countLessOrEqual(1, 6), ShouldEqual, 3)
		So(bs.countLessOrEqual(2, 4), ShouldEqual, 0)

		Convey("an edit touches only its block", func() {
			bs.remove(1, 7)
			bs.insert(1, 2)
			So(bs.blocks[1], ShouldResemble, sortedBlock{1, 1, 2, 3})
			So(bs.blocks[0], ShouldResemble, sortedBlock{2, 2, 4, 9})
		})

		Convey("rebuildAll re-sorts from the new ranks", func() {
			ranks = []int{0, 1, 1, 1, 1, 2, 2, 2, 2, 3}
			bs.rebuildAll(ranks)
			So(bs.blocks, ShouldResemble, []sortedBlock{{1, 1, 1, 1}, {2, 2, 2, 2}, {3}})
		})
	})
}
