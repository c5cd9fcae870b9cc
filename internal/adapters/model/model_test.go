package model_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/neurapath/skillfit/internal/adapters/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryTermExtractor(t *testing.T) {
	Convey("Given the in-memory term extractor", t, func() {
		e := model.NewInMemoryTermExtractor()
		ctx := context.Background()

		Convey("When extracting from resume-like text", func() {
			terms, err := e.ExtractTerms(ctx, "Senior engineer with Python 3.11 and machine learning experience since 2019")
			So(err, ShouldBeNil)

			Convey("Then real tokens survive and junk is filtered", func() {
				So(terms, ShouldContain, "python")
				So(terms, ShouldContain, "machine")
				So(terms, ShouldContain, "machine learning")
				So(terms, ShouldNotContain, "senior")
				So(terms, ShouldNotContain, "with")
				So(terms, ShouldNotContain, "3.11")
				So(terms, ShouldNotContain, "2019")
			})

			Convey("Then terms are unique and sorted", func() {
				for i := 1; i < len(terms); i++ {
					So(terms[i], ShouldBeGreaterThan, terms[i-1])
				}
			})
		})

		Convey("When the text is empty", func() {
			terms, err := e.ExtractTerms(ctx, "")
			So(err, ShouldBeNil)
			So(terms, ShouldBeEmpty)
		})
	})
}

func TestInMemoryLabelMapper(t *testing.T) {
	Convey("Given a mapper over two labels", t, func() {
		m := model.NewInMemoryLabelMapper([]string{"python", "sql"})
		ctx := context.Background()

		Convey("When a term equals a label", func() {
			got, err := m.MapTerms(ctx, []string{"python"}, 0.99)
			So(err, ShouldBeNil)

			Convey("Then that label scores at similarity one", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0].Label, ShouldEqual, "python")
				So(got[0].Score, ShouldAlmostEqual, 1.0, 1e-9)
			})
		})

		Convey("When several terms reach the same label", func() {
			got, err := m.MapTerms(ctx, []string{"python", "pythonic"}, 0.5)
			So(err, ShouldBeNil)

			Convey("Then only the best score per label is kept", func() {
				count := 0
				for _, ls := range got {
					if ls.Label == "python" {
						count++
						So(ls.Score, ShouldAlmostEqual, 1.0, 1e-9)
					}
				}
				So(count, ShouldEqual, 1)
			})
		})

		Convey("When the threshold is unreachable", func() {
			got, err := m.MapTerms(ctx, []string{"python"}, 2.0)
			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)
		})

		Convey("When there are no terms", func() {
			got, err := m.MapTerms(ctx, nil, 0.5)
			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)
		})
	})
}

func TestInMemorySemanticMatcher(t *testing.T) {
	Convey("Given a semantic matcher over two labels", t, func() {
		m := model.NewInMemorySemanticMatcher([]string{"python", "sql"})
		ctx := context.Background()

		Convey("When the document is exactly a label", func() {
			got, err := m.LabelScores(ctx, "python", 0.9)
			So(err, ShouldBeNil)

			Convey("Then it matches at similarity one", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0].Label, ShouldEqual, "python")
				So(got[0].Score, ShouldAlmostEqual, 1.0, 1e-9)
			})
		})

		Convey("When a label only occurs deep in a long document", func() {
			// Each filler sentence exceeds the chunk cap, so the
			// trailing label ends up in a chunk of its own.
			sentence := strings.TrimSpace(strings.Repeat("the quick brown fox jumps over the lazy dog ", 6)) + "."
			filler := sentence + " " + sentence + " "
			got, err := m.LabelScores(ctx, filler+"python.", 0.6)
			So(err, ShouldBeNil)

			Convey("Then the max over chunks still surfaces it", func() {
				labels := make([]string, 0, len(got))
				for _, ls := range got {
					labels = append(labels, ls.Label)
				}
				So(labels, ShouldContain, "python")
			})
		})

		Convey("When the document is unrelated", func() {
			got, err := m.LabelScores(ctx, "sheep herding in the highlands", 0.5)
			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)
		})

		Convey("When the document is empty", func() {
			got, err := m.LabelScores(ctx, "   ", 0.5)
			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)
		})
	})
}

func TestSimulatedLatency(t *testing.T) {
	Convey("Given adapters with simulated latency", t, func() {
		e := model.NewInMemoryTermExtractor(model.WithSimulatedLatency(5*time.Millisecond, 10*time.Millisecond))

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := e.ExtractTerms(ctx, "python")

			Convey("Then the call fails with the context error", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the context allows it", func() {
			terms, err := e.ExtractTerms(context.Background(), "python")
			So(err, ShouldBeNil)
			So(terms, ShouldContain, "python")
		})
	})
}
