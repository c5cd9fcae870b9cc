// Package reconcile merges skill candidates from multiple sources
// into one deduplicated, score-sorted set.
//
// The merge order is a deliberate trust ordering: direct textual
// evidence beats term-mapped model evidence, which beats
// whole-document semantic evidence. A later source can only add
// labels that are still absent; it never overwrites.
package reconcile

import (
	"math"
	"sort"

	"github.com/neurapath/skillfit/internal/domain/match"
	"github.com/neurapath/skillfit/internal/domain/spanindex"
	"github.com/neurapath/skillfit/internal/domain/types"
)

// Rescaling anchors for model-derived scores. The acceptance
// threshold maps to the base and similarity 1.0 to base+spread, so
// model scores stay visibly below direct alias evidence.
const (
	termBase   = 0.58
	termSpread = 0.25

	semanticBase   = 0.56
	semanticSpread = 0.22
)

// Merge combines alias candidates with term-mapped and semantic label
// scores. The result holds at most one ExtractedSkill per canonical
// label, sorted descending by score with ties kept in insertion
// order.
func Merge(alias []match.Candidate, term, semantic []types.LabelScore) []types.ExtractedSkill {
	skills := make([]types.ExtractedSkill, 0, len(alias)+len(term)+len(semantic))
	present := make(map[string]struct{}, cap(skills))

	for _, c := range alias {
		if _, ok := present[c.Skill]; ok {
			continue
		}
		present[c.Skill] = struct{}{}
		evidence := c.Evidence
		if evidence == nil {
			evidence = []spanindex.Span{}
		}
		matched := c.Aliases
		if matched == nil {
			matched = []string{}
		}
		skills = append(skills, types.ExtractedSkill{
			Skill:           c.Skill,
			Score:           clamp01(c.Score),
			EvidenceOffsets: evidence,
			AliasesMatched:  matched,
		})
	}

	for _, ls := range term {
		if _, ok := present[ls.Label]; ok {
			continue
		}
		present[ls.Label] = struct{}{}
		skills = append(skills, modelSkill(ls.Label, rescale(ls.Score, termBase, termSpread)))
	}

	for _, ls := range semantic {
		if _, ok := present[ls.Label]; ok {
			continue
		}
		present[ls.Label] = struct{}{}
		skills = append(skills, modelSkill(ls.Label, rescale(ls.Score, semanticBase, semanticSpread)))
	}

	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Score > skills[j].Score
	})
	return skills
}

func modelSkill(label string, score float64) types.ExtractedSkill {
	return types.ExtractedSkill{
		Skill:           label,
		Score:           score,
		EvidenceOffsets: []spanindex.Span{},
		AliasesMatched:  []string{},
	}
}

// rescale maps an adapter similarity s onto [base, base+spread],
// anchoring the acceptance threshold at base and similarity 1.0 at
// base+spread, then rounds to 2 decimals and clamps to [0,1].
func rescale(s, base, spread float64) float64 {
	score := base + spread*(s-base)/(1-base)
	return clamp01(math.Round(score*100) / 100)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
