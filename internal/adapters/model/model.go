// Package model defines the external model boundary: term extraction,
// term-to-label mapping, and whole-document semantic matching.
//
// The pipeline only depends on these narrow contracts. Every
// implementation must return at most one (label, score) pair per
// canonical label, keeping the best score, and must drop pairs below
// the caller-supplied threshold. The in-memory implementations in
// this package are deterministic stand-ins for external
// token-classification and embedding services, so the service runs
// and tests fully offline.
package model

import (
	"context"

	"github.com/neurapath/skillfit/internal/domain/types"
)

// TermExtractor extracts candidate skill phrases from text.
type TermExtractor interface {
	ExtractTerms(ctx context.Context, text string) ([]string, error)
}

// LabelMapper maps candidate terms to catalog labels by similarity.
type LabelMapper interface {
	MapTerms(ctx context.Context, terms []string, threshold float64) ([]types.LabelScore, error)
}

// SemanticMatcher scores catalog labels against the whole document.
type SemanticMatcher interface {
	LabelScores(ctx context.Context, text string, threshold float64) ([]types.LabelScore, error)
}
