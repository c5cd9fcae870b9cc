package api

import "github.com/neurapath/skillfit/pkg/logger"

// Option configures the API server.
type Option func(*Server)

// WithMaxUploadBytes caps the multipart resume upload size.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
