// Package inference runs model adapter calls on a bounded worker pool
// so a burst of uploads cannot fan out into unbounded concurrent
// inference. Jobs are closures; backpressure is explicit.
package inference

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/neurapath/skillfit/pkg/logger"
	"github.com/neurapath/skillfit/pkg/metrics"
)

// Default pool configuration constants.
const (
	defaultQueueSize      = 256
	poolShutdownTimeout   = 10 * time.Second
	queueDepthSampleEvery = time.Second
)

// Job is a unit of inference work. It must honor ctx cancellation.
type Job func(ctx context.Context)

type job struct {
	name string
	ctx  context.Context
	fn   Job
	done chan struct{}
}

// Pool executes jobs on a fixed set of workers fed by a bounded queue.
type Pool struct {
	jobs        chan job
	workerCount int
	queueSize   int

	mu     sync.RWMutex
	closed bool

	shutdown chan struct{}
	wg       sync.WaitGroup

	logger logger.Logger
}

// NewPool creates a pool. Worker count defaults to runtime.NumCPU.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		workerCount: runtime.NumCPU(),
		queueSize:   defaultQueueSize,
		shutdown:    make(chan struct{}),
		logger:      logger.Get().Named("inference-pool"),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.jobs = make(chan job, p.queueSize)

	metrics.UpdatePoolQueueCapacity(p.queueSize)
	metrics.UpdatePoolQueueDepth(0)
	metrics.UpdatePoolWorkers(p.workerCount)

	return p
}

// Start launches the workers. It returns immediately.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.run(ctx)
	}
	go p.sampleQueueDepth(ctx)

	p.logger.Info(ctx, "inference pool started",
		logger.Int("workers", p.workerCount),
		logger.Int("queue_size", p.queueSize),
	)
}

func (p *Pool) run(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			// Drain what is already queued before exiting.
			for {
				select {
				case j := <-p.jobs:
					p.execute(j)
				default:
					return
				}
			}
		case j := <-p.jobs:
			p.execute(j)
		}
	}
}

func (p *Pool) execute(j job) {
	defer close(j.done)
	if j.ctx.Err() != nil {
		return // caller gave up while the job was queued
	}
	j.fn(j.ctx)
}

// sampleQueueDepth periodically exports the queue depth gauge.
func (p *Pool) sampleQueueDepth(ctx context.Context) {
	ticker := time.NewTicker(queueDepthSampleEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.C:
			metrics.UpdatePoolQueueDepth(len(p.jobs))
		}
	}
}

// Submit enqueues fn without waiting for it to run. It fails fast with
// ErrQueueFull when the queue is at capacity.
func (p *Pool) Submit(ctx context.Context, name string, fn Job) (<-chan struct{}, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, ErrPoolClosed
	}

	j := job{name: name, ctx: ctx, fn: fn, done: make(chan struct{})}
	select {
	case p.jobs <- j:
		metrics.UpdatePoolQueueDepth(len(p.jobs))
		return j.done, nil
	default:
		metrics.RecordPoolRejection()
		return nil, fmt.Errorf("submit %q: %w", name, ErrQueueFull)
	}
}

// Do enqueues fn and blocks until it has run or ctx is cancelled.
func (p *Pool) Do(ctx context.Context, name string, fn Job) error {
	done, err := p.Submit(ctx, name, fn)
	if err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for %q: %w", name, ctx.Err())
	}
}

// Len returns the current queue depth.
func (p *Pool) Len() int {
	return len(p.jobs)
}

// Stop rejects new submissions and waits for workers to drain the
// queue, up to an internal timeout.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	close(p.shutdown)

	finished := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		p.logger.Info(ctx, "inference pool stopped")
		return nil
	case <-time.After(poolShutdownTimeout):
		p.logger.Warn(ctx, "inference pool shutdown timed out")
		return fmt.Errorf("inference pool shutdown: %w", context.DeadlineExceeded)
	}
}
