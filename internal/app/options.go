package service

import (
	"time"

	"github.com/neurapath/skillfit/internal/adapters/extract"
	"github.com/neurapath/skillfit/internal/adapters/model"
	"github.com/neurapath/skillfit/internal/adapters/storage"
	"github.com/neurapath/skillfit/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithExtractor replaces the document text extractor.
func WithExtractor(e extract.Extractor) Option {
	return func(s *Service) {
		if e != nil {
			s.extractor = e
		}
	}
}

// WithTermExtractor replaces the term extraction adapter.
func WithTermExtractor(e model.TermExtractor) Option {
	return func(s *Service) {
		if e != nil {
			s.terms = e
		}
	}
}

// WithLabelMapper replaces the term-to-label mapping adapter.
func WithLabelMapper(m model.LabelMapper) Option {
	return func(s *Service) {
		if m != nil {
			s.mapper = m
		}
	}
}

// WithSemanticMatcher replaces the whole-document semantic adapter.
func WithSemanticMatcher(m model.SemanticMatcher) Option {
	return func(s *Service) {
		if m != nil {
			s.semantic = m
		}
	}
}

// WithAuditStore replaces the audit store.
func WithAuditStore(st *storage.AuditStore) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithStorageDir sets the audit directory used when no store is
// injected. Empty disables audit writes.
func WithStorageDir(dir string) Option {
	return func(s *Service) {
		s.storageDir = dir
	}
}

// WithThresholds sets the adapter acceptance thresholds.
func WithThresholds(term, semantic float64) Option {
	return func(s *Service) {
		if term > 0 && term <= 1 {
			s.termThreshold = term
		}
		if semantic > 0 && semantic <= 1 {
			s.semanticThreshold = semantic
		}
	}
}

// WithInferenceTimeout caps a single model adapter call.
func WithInferenceTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.inferenceTimeout = d
		}
	}
}

// WithWorkerCount sets the number of inference workers.
func WithWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithQueueSize sets the inference queue capacity.
func WithQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
