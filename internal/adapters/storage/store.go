// Package storage persists an audit trail of processed resumes and the
// reports generated for them. Writes are best-effort from the caller's
// point of view: a failed audit write must never fail the request.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/neurapath/skillfit/internal/domain/types"
	"github.com/neurapath/skillfit/pkg/logger"
	"github.com/neurapath/skillfit/pkg/metrics"
)

const (
	resumesDir = "resumes"
	reportsDir = "reports"
	dirPerm    = 0o755
	filePerm   = 0o644
)

// AuditStore writes uploaded resumes and finished reports to disk.
type AuditStore struct {
	root   string
	logger logger.Logger
}

// NewAuditStore creates the store and its directory layout. An empty
// root disables the store; Save calls become no-ops.
func NewAuditStore(root string, opts ...Option) (*AuditStore, error) {
	s := &AuditStore{
		root:   root,
		logger: logger.Get().Named("audit-store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.root == "" {
		return s, nil
	}
	for _, d := range []string{resumesDir, reportsDir} {
		if err := os.MkdirAll(filepath.Join(s.root, d), dirPerm); err != nil {
			return nil, fmt.Errorf("create %s dir: %w", d, err)
		}
	}
	return s, nil
}

// Enabled reports whether the store writes anything.
func (s *AuditStore) Enabled() bool {
	return s.root != ""
}

// SaveResume writes the raw upload under resumes/<id>_<filename>.
func (s *AuditStore) SaveResume(ctx context.Context, id, filename string, data []byte) error {
	if s.root == "" {
		return nil
	}
	path := filepath.Join(s.root, resumesDir, id+"_"+sanitizeFilename(filename))
	if err := os.WriteFile(path, data, filePerm); err != nil {
		metrics.RecordAuditWriteError()
		s.logger.Warn(ctx, "resume audit write failed",
			logger.String("id", id),
			logger.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// SaveReport writes the report JSON under reports/<id>.json.
func (s *AuditStore) SaveReport(ctx context.Context, id string, report *types.Report) error {
	if s.root == "" {
		return nil
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		metrics.RecordAuditWriteError()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	path := filepath.Join(s.root, reportsDir, id+".json")
	if err := os.WriteFile(path, data, filePerm); err != nil {
		metrics.RecordAuditWriteError()
		s.logger.Warn(ctx, "report audit write failed",
			logger.String("id", id),
			logger.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// sanitizeFilename strips path separators and anything else that could
// escape the audit directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." || name == ".." {
		return "upload.txt"
	}
	return name
}
