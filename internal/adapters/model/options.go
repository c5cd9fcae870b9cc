package model

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// latencySeed keeps simulated latency deterministic across runs.
const latencySeed = 42

// simulator optionally injects latency so load tests can model a
// remote inference service. Zero value is a no-op.
type simulator struct {
	minLatency time.Duration
	maxLatency time.Duration
	rng        *rand.Rand
}

func (s *simulator) wait(ctx context.Context) error {
	if s.maxLatency <= 0 {
		return ctx.Err()
	}
	latency := s.minLatency
	if s.maxLatency > s.minLatency {
		latency += time.Duration(s.rng.Int63n(int64(s.maxLatency - s.minLatency)))
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("inference cancelled: %w", ctx.Err())
	case <-time.After(latency):
		return nil
	}
}

// Option configures the in-memory adapters.
type Option interface {
	applyTerm(*InMemoryTermExtractor)
	applyMapper(*InMemoryLabelMapper)
	applySemantic(*InMemorySemanticMatcher)
}

type latencyOption struct {
	min, max time.Duration
}

func (o latencyOption) simulator() simulator {
	return simulator{
		minLatency: o.min,
		maxLatency: o.max,
		rng:        rand.New(rand.NewSource(latencySeed)), //nolint:gosec // deterministic simulation
	}
}

func (o latencyOption) applyTerm(e *InMemoryTermExtractor)       { e.sim = o.simulator() }
func (o latencyOption) applyMapper(m *InMemoryLabelMapper)       { m.sim = o.simulator() }
func (o latencyOption) applySemantic(m *InMemorySemanticMatcher) { m.sim = o.simulator() }

// WithSimulatedLatency makes adapter calls sleep for a deterministic
// duration in [min,max), modeling remote model inference.
func WithSimulatedLatency(minLatency, maxLatency time.Duration) Option {
	if minLatency < 0 || maxLatency < minLatency {
		return latencyOption{}
	}
	return latencyOption{min: minLatency, max: maxLatency}
}
