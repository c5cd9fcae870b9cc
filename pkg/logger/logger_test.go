package logger_test

import (
	"context"
	"testing"

	"github.com/neurapath/skillfit/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When fetching the global logger", func() {
			l := logger.Get()

			Convey("Then it should accept records at every level", func() {
				ctx := context.Background()
				So(func() {
					l.Debug(ctx, "debug", logger.String("k", "v"))
					l.Info(ctx, "info", logger.Int("n", 1))
					l.Warn(ctx, "warn", logger.Float64("f", 1.5))
					l.Error(ctx, "error", logger.Bool("b", true))
				}, ShouldNotPanic)
			})

			Convey("Then Named should return a usable child logger", func() {
				child := l.Named("pipeline")
				So(child, ShouldNotBeNil)
				So(func() { child.Info(context.Background(), "hello") }, ShouldNotPanic)
			})
		})

		Convey("When setting log levels by string", func() {
			Convey("Then known levels should be accepted", func() {
				for _, lvl := range []string{"debug", "info", "warn", "warning", "error", ""} {
					So(logger.SetLevelString(lvl), ShouldBeNil)
				}
			})

			Convey("Then unknown levels should be rejected", func() {
				So(logger.SetLevelString("loud"), ShouldNotBeNil)
			})
		})
	})
}
