package reconcile_test

import (
	"testing"

	"github.com/neurapath/skillfit/internal/domain/match"
	"github.com/neurapath/skillfit/internal/domain/reconcile"
	"github.com/neurapath/skillfit/internal/domain/spanindex"
	"github.com/neurapath/skillfit/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMerge(t *testing.T) {
	Convey("Given candidates from all three sources", t, func() {
		alias := []match.Candidate{{
			Skill:    "python",
			Score:    0.6,
			Evidence: []spanindex.Span{{0, 6}},
			Aliases:  []string{"python"},
		}}

		Convey("When a label has both alias evidence and a high semantic score", func() {
			semantic := []types.LabelScore{{Label: "python", Score: 0.999}}
			got := reconcile.Merge(alias, nil, semantic)

			Convey("Then the alias path wins and is never overwritten", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0].Score, ShouldEqual, 0.6)
				So(got[0].EvidenceOffsets, ShouldResemble, []spanindex.Span{{0, 6}})
				So(got[0].AliasesMatched, ShouldResemble, []string{"python"})
			})
		})

		Convey("When term and semantic propose new labels", func() {
			term := []types.LabelScore{{Label: "kubernetes", Score: 0.65}}
			semantic := []types.LabelScore{{Label: "terraform", Score: 0.62}}
			got := reconcile.Merge(alias, term, semantic)

			Convey("Then model labels are added with rescaled scores", func() {
				So(len(got), ShouldEqual, 3)
				scores := map[string]float64{}
				for _, s := range got {
					scores[s.Skill] = s.Score
				}
				// threshold anchors map near the base of each band
				So(scores["kubernetes"], ShouldAlmostEqual, 0.62, 0.001)
				So(scores["terraform"], ShouldAlmostEqual, 0.59, 0.001)
			})

			Convey("Then model-derived skills carry empty evidence", func() {
				seen := 0
				for _, s := range got {
					if s.Skill == "kubernetes" || s.Skill == "terraform" {
						seen++
						So(s.EvidenceOffsets, ShouldBeEmpty)
						So(s.AliasesMatched, ShouldBeEmpty)
					}
				}
				So(seen, ShouldEqual, 2)
			})

			Convey("Then output is sorted descending by score", func() {
				for i := 1; i < len(got); i++ {
					So(got[i].Score, ShouldBeLessThanOrEqualTo, got[i-1].Score)
				}
			})
		})

		Convey("When a term label is already present from alias", func() {
			term := []types.LabelScore{{Label: "python", Score: 0.99}}
			got := reconcile.Merge(alias, term, nil)

			Convey("Then the term entry is dropped", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0].Score, ShouldEqual, 0.6)
			})
		})

		Convey("When adapter similarities are extreme", func() {
			term := []types.LabelScore{{Label: "a", Score: 0.999}}
			semantic := []types.LabelScore{{Label: "b", Score: 5.0}}
			got := reconcile.Merge(nil, term, semantic)

			Convey("Then every score stays in [0,1]", func() {
				for _, s := range got {
					So(s.Score, ShouldBeLessThanOrEqualTo, 1.0)
					So(s.Score, ShouldBeGreaterThanOrEqualTo, 0.0)
				}
			})

			Convey("Then term similarity near 1.0 lands near the band ceiling", func() {
				for _, s := range got {
					if s.Skill == "a" {
						So(s.Score, ShouldAlmostEqual, 0.83, 0.005)
					}
				}
			})
		})

		Convey("When all sources are empty", func() {
			So(reconcile.Merge(nil, nil, nil), ShouldBeEmpty)
		})
	})
}
