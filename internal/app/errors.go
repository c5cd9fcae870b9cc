package service

import "errors"

// Service errors.
var (
	// ErrNotConfigured signals an invalid service construction.
	ErrNotConfigured = errors.New("service not configured")

	// ErrNotStarted is returned when Analyze runs before Start.
	ErrNotStarted = errors.New("service not started")
)
