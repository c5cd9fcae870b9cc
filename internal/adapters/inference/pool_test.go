package inference_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/neurapath/skillfit/internal/adapters/inference"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPoolExecution(t *testing.T) {
	Convey("Given a running pool", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		p := inference.NewPool(inference.WithWorkers(4), inference.WithQueueSize(16))
		p.Start(ctx)
		defer func() { _ = p.Stop(context.Background()) }()

		Convey("When jobs are submitted with Do", func() {
			var ran, failed atomic.Int64
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if err := p.Do(ctx, "job", func(context.Context) {
						ran.Add(1)
					}); err != nil {
						failed.Add(1)
					}
				}()
			}
			wg.Wait()

			Convey("Then every job runs exactly once", func() {
				So(failed.Load(), ShouldEqual, 0)
				So(ran.Load(), ShouldEqual, 10)
			})
		})

		Convey("When the caller context is already cancelled", func() {
			jobCtx, jobCancel := context.WithCancel(context.Background())
			jobCancel()
			ran := false
			_ = p.Do(jobCtx, "cancelled", func(context.Context) { ran = true })

			Convey("Then the queued job is skipped", func() {
				time.Sleep(50 * time.Millisecond)
				So(ran, ShouldBeFalse)
			})
		})
	})
}

func TestPoolBackpressure(t *testing.T) {
	Convey("Given a pool with a tiny queue and a stuck worker", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		p := inference.NewPool(inference.WithWorkers(1), inference.WithQueueSize(1))
		p.Start(ctx)
		defer func() { _ = p.Stop(context.Background()) }()

		block := make(chan struct{})
		_, err := p.Submit(ctx, "blocker", func(context.Context) { <-block })
		So(err, ShouldBeNil)
		time.Sleep(20 * time.Millisecond) // let the worker pick it up

		// Fill the single queue slot.
		_, err = p.Submit(ctx, "queued", func(context.Context) {})
		So(err, ShouldBeNil)

		Convey("When one more job is submitted", func() {
			_, err := p.Submit(ctx, "overflow", func(context.Context) {})

			Convey("Then it is rejected with ErrQueueFull", func() {
				So(errors.Is(err, inference.ErrQueueFull), ShouldBeTrue)
			})
		})

		close(block)
	})
}

func TestPoolStop(t *testing.T) {
	Convey("Given a stopped pool", t, func() {
		ctx := context.Background()
		p := inference.NewPool(inference.WithWorkers(1))
		p.Start(ctx)
		So(p.Stop(ctx), ShouldBeNil)

		Convey("When submitting after Stop", func() {
			_, err := p.Submit(ctx, "late", func(context.Context) {})

			Convey("Then it fails with ErrPoolClosed", func() {
				So(errors.Is(err, inference.ErrPoolClosed), ShouldBeTrue)
			})
		})

		Convey("When stopping again", func() {
			So(p.Stop(ctx), ShouldBeNil)
		})
	})
}
