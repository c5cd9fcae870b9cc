package model

import (
	"context"
	"strings"
	"unicode"

	"github.com/neurapath/skillfit/internal/domain/types"
)

// maxChunkLen bounds the sentence-accumulating chunker, matching the
// reference system's chunk size.
const maxChunkLen = 220

// InMemorySemanticMatcher scores catalog labels against document
// chunks, taking each label's maximum chunk similarity. It stands in
// for an external embedding model over the whole document.
type InMemorySemanticMatcher struct {
	labels    []string
	labelEmbs [][]float64
	sim       simulator
}

// NewInMemorySemanticMatcher creates a matcher with precomputed label
// embeddings.
func NewInMemorySemanticMatcher(labels []string, opts ...Option) *InMemorySemanticMatcher {
	m := &InMemorySemanticMatcher{
		labels:    labels,
		labelEmbs: make([][]float64, len(labels)),
	}
	for i, l := range labels {
		m.labelEmbs[i] = embed(l)
	}
	for _, opt := range opts {
		opt.applySemantic(m)
	}
	return m
}

// LabelScores chunks the text, embeds each chunk, and returns labels
// whose maximum chunk similarity is at or above threshold, sorted
// descending.
func (m *InMemorySemanticMatcher) LabelScores(ctx context.Context, text string, threshold float64) ([]types.LabelScore, error) {
	if err := m.sim.wait(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" || len(m.labels) == 0 {
		return nil, nil
	}

	chunks := chunk(text)
	chunkEmbs := make([][]float64, len(chunks))
	for i, c := range chunks {
		chunkEmbs[i] = embed(c)
	}

	best := make(map[string]float64)
	for i, le := range m.labelEmbs {
		maxSim := 0.0
		for _, ce := range chunkEmbs {
			if s := cosine(ce, le); s > maxSim {
				maxSim = s
			}
		}
		if maxSim >= threshold {
			best[m.labels[i]] = maxSim
		}
	}

	return sortedLabelScores(best, m.labels), nil
}

// chunk splits text into sentence-aligned pieces of at most
// maxChunkLen characters; a single over-long sentence becomes its own
// chunk. Empty input yields one empty chunk upstream callers filter.
func chunk(text string) []string {
	sentences := splitSentences(text)
	var chunks []string
	var buf strings.Builder
	for _, s := range sentences {
		if buf.Len() > 0 && buf.Len()+len(s) >= maxChunkLen {
			chunks = append(chunks, strings.TrimSpace(buf.String()))
			buf.Reset()
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(s)
	}
	if buf.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(buf.String()))
	}
	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}

// splitSentences cuts after '.', '!' or '?' followed by whitespace.
func splitSentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if (c == '.' || c == '!' || c == '?') && (i+1 == len(runes) || unicode.IsSpace(runes[i+1])) {
			s := strings.TrimSpace(string(runes[start : i+1]))
			if s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			out = append(out, s)
		}
	}
	return out
}
