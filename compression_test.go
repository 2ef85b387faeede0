package sqrtrank

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompressionTable(t *testing.T) {
	Convey("Given values with duplicates", t, func() {
		ct := newCompressionTable([]int64{9, -3, 9, 4, 4, 0})
		So(ct.values, ShouldResemble, []int64{-3, 0, 4, 9})
		So(ct.Size(), ShouldEqual, 4)

		Convey("known values map to dense ranks", func() {
			for i, v := range []int64{-3, 0, 4, 9} {
				rank, ok := ct.rankOf(v)
				So(ok, ShouldBeTrue)
				So(rank, ShouldEqual, i+1)
				So(ct.valueOf(rank), ShouldEqual, v)
			}
			_, ok := ct.rankOf(5)
			So(ok, ShouldBeFalse)
		})

		Convey("ensure returns existing ranks without growing", func() {
			rank, grew := ct.ensure(4)
			So(grew, ShouldBeFalse)
			So(rank, ShouldEqual, 3)
			So(ct.Size(), ShouldEqual, 4)
		})

		Convey("ensure inserts unseen values in order", func() {
			rank, grew := ct.ensure(2)
			So(grew, ShouldBeTrue)
			So(rank, ShouldEqual, 3)
			So(ct.values, ShouldResemble, []int64{-3, 0, 2, 4, 9})

			rank, grew = ct.ensure(100)
			So(grew, ShouldBeTrue)
			So(rank, ShouldEqual, 6)

			rank, grew = ct.ensure(-50)
			So(grew, ShouldBeTrue)
			So(rank, ShouldEqual, 1)
			So(ct.values, ShouldResemble, []int64{-50, -3, 0, 2, 4, 9, 100})
		})

		Convey("upperRank counts known values <= x", func() {
			So(ct.upperRank(-10), ShouldEqual, 0)
			So(ct.upperRank(-3), ShouldEqual, 1)
			So(ct.upperRank(3), ShouldEqual, 2)
			So(ct.upperRank(9), ShouldEqual, 4)
			So(ct.upperRank(1000), ShouldEqual, 4)
		})
	})

	Convey("Given no values", t, func() {
		ct := newCompressionTable([]int8{})
		So(ct.Size(), ShouldEqual, 0)
		rank, grew := ct.ensure(-128)
		So(grew, ShouldBeTrue)
		So(rank, ShouldEqual, 1)
	})
}
