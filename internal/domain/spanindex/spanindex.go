// Package spanindex locates term occurrences in normalized text and
// merges them into non-overlapping evidence ranges.
package spanindex

import (
	"regexp"
	"sort"
)

// Span is a [start,end) byte range into the normalized text. It
// marshals to JSON as a two-element array.
type Span [2]int

// Start returns the inclusive start offset.
func (s Span) Start() int { return s[0] }

// End returns the exclusive end offset.
func (s Span) End() int { return s[1] }

// FindSpans returns every case-insensitive, word-boundary-delimited
// occurrence of term in text, left to right. A term inside a larger
// alphanumeric token does not match. Empty or unmatchable terms yield
// nil.
func FindSpans(text, term string) []Span {
	if term == "" {
		return nil
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	if err != nil {
		return nil
	}
	var out []Span
	for _, m := range re.FindAllStringIndex(text, -1) {
		out = append(out, Span{m[0], m[1]})
	}
	return out
}

// MergeSpans sorts spans by start and merges any pair where the next
// start is <= the current merged end, producing a minimal ascending
// non-overlapping set. Merging an already-merged set returns it
// unchanged; the input slice is not modified.
func MergeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i][0] != sorted[j][0] {
			return sorted[i][0] < sorted[j][0]
		}
		return sorted[i][1] < sorted[j][1]
	})

	merged := []Span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s[0] <= last[1] {
			if s[1] > last[1] {
				last[1] = s[1]
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
