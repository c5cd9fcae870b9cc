package match

import (
	"context"
	"math"

	"github.com/neurapath/skillfit/internal/domain/catalog"
	"github.com/neurapath/skillfit/internal/domain/spanindex"
)

// Alias confidence formula: a base for any textual evidence plus a
// bonus per distinct evidence range, saturating at 1. The clamp is
// deliberate; this is a confidence, not a probability.
const (
	aliasBaseScore    = 0.4
	aliasPerSpanBonus = 0.2
)

// AliasSource proposes skills from literal alias occurrences in the
// text. It has no external dependency and is the always-available
// fallback when model adapters fail.
type AliasSource struct {
	cat *catalog.Catalog
}

// NewAliasSource creates an alias source over the given catalog.
func NewAliasSource(cat *catalog.Catalog) *AliasSource {
	return &AliasSource{cat: cat}
}

// Name implements Source.
func (s *AliasSource) Name() string { return "alias" }

// Propose scans the text against every catalog alias. A skill is
// proposed iff at least one merged span exists. Candidates come back
// in catalog order with at most one entry per canonical skill.
func (s *AliasSource) Propose(ctx context.Context, text string) ([]Candidate, error) {
	var out []Candidate
	for _, skill := range s.cat.Skills() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var spans []spanindex.Span
		var matched []string
		for _, alias := range skill.Aliases {
			hits := spanindex.FindSpans(text, alias)
			if len(hits) == 0 {
				continue
			}
			spans = append(spans, hits...)
			matched = append(matched, alias)
		}
		merged := spanindex.MergeSpans(spans)
		if len(merged) == 0 {
			continue
		}

		out = append(out, Candidate{
			Skill:    skill.Name,
			Score:    aliasScore(len(merged)),
			Evidence: merged,
			Aliases:  matched,
		})
	}
	return out, nil
}

// aliasScore is clamp(0.4 + 0.2*spanCount, 0, 1) rounded to 2
// decimals before clamping, matching the reference formula exactly.
func aliasScore(spanCount int) float64 {
	score := math.Round((aliasBaseScore+aliasPerSpanBonus*float64(spanCount))*100) / 100
	return math.Max(0, math.Min(1, score))
}
