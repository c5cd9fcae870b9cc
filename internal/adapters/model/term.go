package model

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/neurapath/skillfit/internal/domain/types"
)

// Candidate term limits, mirroring the offline builder's filters.
const (
	minTermLen = 2
	maxTermLen = 60
)

// stopTerms are common resume junk words that are never skill
// candidates on their own.
var stopTerms = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "with": {}, "using": {},
	"of": {}, "to": {}, "for": {}, "in": {}, "on": {}, "at": {}, "by": {},
	"experience": {}, "developer": {}, "engineer": {}, "junior": {}, "senior": {},
	"degree": {}, "team": {}, "work": {}, "environment": {}, "etc": {},
	"skills": {}, "proficient": {}, "knowledge": {}, "strong": {}, "familiar": {},
	"good": {}, "excellent": {}, "expert": {}, "years": {},
}

var (
	termTokenRe = regexp.MustCompile(`[a-z0-9+#._-]+`)
	versionRe   = regexp.MustCompile(`^v?\d+(\.\d+)*$`)
	yearRe      = regexp.MustCompile(`^\d{4}$`)
)

// InMemoryTermExtractor produces candidate phrases from token unigrams
// and adjacent bigrams, filtered the way the offline builder filters
// skill tokens. It stands in for an external token-classification
// model.
type InMemoryTermExtractor struct {
	sim simulator
}

// NewInMemoryTermExtractor creates a term extractor.
func NewInMemoryTermExtractor(opts ...Option) *InMemoryTermExtractor {
	e := &InMemoryTermExtractor{}
	for _, opt := range opts {
		opt.applyTerm(e)
	}
	return e
}

// ExtractTerms returns unique candidate terms in sorted order.
func (e *InMemoryTermExtractor) ExtractTerms(ctx context.Context, text string) ([]string, error) {
	if err := e.sim.wait(ctx); err != nil {
		return nil, err
	}

	tokens := termTokenRe.FindAllString(strings.ToLower(text), -1)
	seen := make(map[string]struct{})
	for i, tok := range tokens {
		if validTerm(tok) {
			seen[tok] = struct{}{}
		}
		if i+1 < len(tokens) && validTerm(tok) && validTerm(tokens[i+1]) {
			bigram := tok + " " + tokens[i+1]
			if len(bigram) <= maxTermLen {
				seen[bigram] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

func validTerm(tok string) bool {
	if len(tok) < minTermLen || len(tok) > maxTermLen {
		return false
	}
	if _, stop := stopTerms[tok]; stop {
		return false
	}
	if versionRe.MatchString(tok) || yearRe.MatchString(tok) {
		return false
	}
	digits := 0
	for _, c := range tok {
		if c >= '0' && c <= '9' {
			digits++
		}
	}
	return digits < max(2, len(tok)/2)
}

// InMemoryLabelMapper maps terms to catalog labels by embedding
// similarity, keeping the best score per label. It stands in for an
// external sentence-embedding model.
type InMemoryLabelMapper struct {
	labels    []string
	labelEmbs [][]float64
	sim       simulator
}

// NewInMemoryLabelMapper creates a mapper with label embeddings
// precomputed once, the way the reference system encodes catalog
// labels at startup.
func NewInMemoryLabelMapper(labels []string, opts ...Option) *InMemoryLabelMapper {
	m := &InMemoryLabelMapper{
		labels:    labels,
		labelEmbs: make([][]float64, len(labels)),
	}
	for i, l := range labels {
		m.labelEmbs[i] = embed(l)
	}
	for _, opt := range opts {
		opt.applyMapper(m)
	}
	return m
}

// MapTerms maps each term to its closest label, accepts pairs at or
// above threshold, and keeps the maximum score per label. Results are
// sorted descending by score with label-order ties.
func (m *InMemoryLabelMapper) MapTerms(ctx context.Context, terms []string, threshold float64) ([]types.LabelScore, error) {
	if err := m.sim.wait(ctx); err != nil {
		return nil, err
	}
	if len(terms) == 0 || len(m.labels) == 0 {
		return nil, nil
	}

	best := make(map[string]float64)
	for _, term := range terms {
		te := embed(term)
		bestIdx, bestScore := -1, -1.0
		for i, le := range m.labelEmbs {
			if s := cosine(te, le); s > bestScore {
				bestIdx, bestScore = i, s
			}
		}
		if bestIdx < 0 || bestScore < threshold {
			continue
		}
		label := m.labels[bestIdx]
		if bestScore > best[label] {
			best[label] = bestScore
		}
	}

	return sortedLabelScores(best, m.labels), nil
}

// sortedLabelScores flattens a best-score map into a slice sorted
// descending by score; equal scores keep catalog label order so the
// output is deterministic.
func sortedLabelScores(best map[string]float64, labelOrder []string) []types.LabelScore {
	if len(best) == 0 {
		return nil
	}
	out := make([]types.LabelScore, 0, len(best))
	for _, label := range labelOrder {
		if score, ok := best[label]; ok {
			out = append(out, types.LabelScore{Label: label, Score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
