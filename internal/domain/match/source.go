// Package match defines skill-candidate sources and the direct
// alias-evidence matcher.
package match

import (
	"context"

	"github.com/neurapath/skillfit/internal/domain/spanindex"
)

// Candidate is one proposed skill with its source-specific confidence.
type Candidate struct {
	Skill    string
	Score    float64
	Evidence []spanindex.Span
	Aliases  []string
}

// Source proposes skill candidates for a normalized text. Sources are
// composed by the reconciler in a fixed trust order; each one must be
// independent of the others.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string

	// Propose returns candidates with at most one entry per canonical
	// skill, honoring ctx for cancellation.
	Propose(ctx context.Context, text string) ([]Candidate, error)
}
