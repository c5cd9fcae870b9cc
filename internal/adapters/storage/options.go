package storage

import "github.com/neurapath/skillfit/pkg/logger"

// Option configures the audit store.
type Option func(*AuditStore)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *AuditStore) {
		if l != nil {
			s.logger = l
		}
	}
}
