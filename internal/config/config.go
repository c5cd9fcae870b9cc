// Package config defines service configuration and loading.
//
// Conventions:
// - New(ctx) returns defaults; Load(ctx) layers file and env on top.
// - External errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CatalogPath and RolesPath locate the offline-built JSON datasets.
	CatalogPath string `koanf:"catalog_path"`
	RolesPath   string `koanf:"roles_path"`

	// StorageDir receives write-only audit artifacts (resume bytes,
	// report snapshots).
	StorageDir string `koanf:"storage_dir"`

	// TermThreshold is the minimum embedding similarity for a
	// term-mapped label to be accepted.
	TermThreshold float64 `koanf:"term_threshold"`

	// SemanticThreshold is the minimum chunk similarity for a
	// semantic label to be accepted.
	SemanticThreshold float64 `koanf:"semantic_threshold"`

	// InferenceWorkers bounds concurrent model adapter calls.
	InferenceWorkers int `koanf:"inference_workers"`

	// InferenceQueueSize bounds jobs waiting for an inference worker.
	InferenceQueueSize int `koanf:"inference_queue_size"`

	// InferenceTimeoutMS caps a single adapter call.
	InferenceTimeoutMS int `koanf:"inference_timeout_ms"`

	// MaxUploadBytes caps the multipart resume upload size.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
}

// Default acceptance thresholds, tuned in the reference system to
// suppress false positives.
const (
	defaultTermThreshold     = 0.65
	defaultSemanticThreshold = 0.62
)

// New returns a Config populated with defaults. Context is accepted
// first per project convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8086",
		CatalogPath:        "data/skills_catalog.json",
		RolesPath:          "data/role_templates.json",
		StorageDir:         "storage",
		TermThreshold:      defaultTermThreshold,
		SemanticThreshold:  defaultSemanticThreshold,
		InferenceWorkers:   runtime.NumCPU() * 2,
		InferenceQueueSize: 256,
		InferenceTimeoutMS: 5000,
		MaxUploadBytes:     10 << 20,
	}
}
