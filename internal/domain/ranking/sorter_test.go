package ranking_test

import (
	"sort"
	"testing"

	ranking "github.com/eventure/rankd/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSort(t *testing.T) {
	Convey("Given scored entries", t, func() {
		Convey("When sorting a shuffled list", func() {
			pairs := []ranking.ScoredEvent{
				{ContentID: 1, Score: 55.5},
				{ContentID: 2, Score: 12.0},
				{ContentID: 3, Score: 99.9},
				{ContentID: 4, Score: 47.25},
				{ContentID: 5, Score: 3.1},
			}
			sorted, excluded, comparisons := ranking.Sort(pairs)

			Convey("Then the result is ascending by score", func() {
				So(len(sorted), ShouldEqual, 5)
				So(sort.SliceIsSorted(sorted, func(i, j int) bool {
					return sorted[i].Score < sorted[j].Score
				}), ShouldBeTrue)
				So(sorted[0].ContentID, ShouldEqual, 5)
				So(sorted[4].ContentID, ShouldEqual, 3)
			})

			Convey("And no entries were excluded", func() {
				So(excluded, ShouldBeEmpty)
			})

			Convey("And comparison work was counted", func() {
				So(comparisons, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the list contains a known partition shape", func() {
			pairs := []ranking.ScoredEvent{
				{ContentID: 1, Score: 3},
				{ContentID: 2, Score: 1},
				{ContentID: 3, Score: 2},
			}
			sorted, _, comparisons := ranking.Sort(pairs)

			Convey("Then the count matches one element examined per partition pass", func() {
				So(sorted[0].Score, ShouldEqual, 1)
				So(sorted[2].Score, ShouldEqual, 3)
				// First partition examines 2 elements; both halves are trivial.
				So(comparisons, ShouldEqual, 2)
			})
		})

		Convey("When entries carry the sentinel score", func() {
			pairs := []ranking.ScoredEvent{
				{ContentID: 1, Score: 10},
				{ContentID: 2, Score: ranking.SentinelScore},
				{ContentID: 3, Score: 5},
				{ContentID: 4, Score: ranking.SentinelScore},
			}
			sorted, excluded, _ := ranking.Sort(pairs)

			Convey("Then they are set aside before sorting, in input order", func() {
				So(len(excluded), ShouldEqual, 2)
				So(excluded[0].ContentID, ShouldEqual, 2)
				So(excluded[1].ContentID, ShouldEqual, 4)
			})

			Convey("And never appear in the sorted output", func() {
				So(len(sorted), ShouldEqual, 2)
				for _, p := range sorted {
					So(p.Score, ShouldNotEqual, ranking.SentinelScore)
				}
			})
		})

		Convey("When every entry is a sentinel", func() {
			pairs := []ranking.ScoredEvent{
				{ContentID: 1, Score: ranking.SentinelScore},
				{ContentID: 2, Score: ranking.SentinelScore},
			}
			sorted, excluded, comparisons := ranking.Sort(pairs)
			So(sorted, ShouldBeEmpty)
			So(len(excluded), ShouldEqual, 2)
			So(comparisons, ShouldEqual, 0)
		})

		Convey("When legitimate scores are negative", func() {
			pairs := []ranking.ScoredEvent{
				{ContentID: 1, Score: -5},
				{ContentID: 2, Score: -100},
			}
			sorted, excluded, _ := ranking.Sort(pairs)

			Convey("Then they sort normally and are not mistaken for sentinels", func() {
				So(excluded, ShouldBeEmpty)
				So(sorted[0].Score, ShouldEqual, -100)
				So(sorted[1].Score, ShouldEqual, -5)
			})
		})

		Convey("When the input is empty", func() {
			sorted, excluded, comparisons := ranking.Sort(nil)
			So(sorted, ShouldBeEmpty)
			So(excluded, ShouldBeEmpty)
			So(comparisons, ShouldEqual, 0)
		})

		Convey("When the input has one entry", func() {
			sorted, _, comparisons := ranking.Sort([]ranking.ScoredEvent{{ContentID: 1, Score: 7}})
			So(len(sorted), ShouldEqual, 1)
			So(comparisons, ShouldEqual, 0)
		})
	})
}
