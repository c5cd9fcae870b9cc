// Package narrative computes skill gaps for the primary role and
// assembles the fixed-shape critique.
//
// The critique is deliberately template-based with no language model
// involved, so the output stays auditable and deterministic.
package narrative

import (
	"fmt"
	"strings"

	"github.com/neurapath/skillfit/internal/domain/types"
)

const (
	maxStrengthSkills = 6
	maxGapSkills      = 5

	toneSupportive = "supportive"
)

// Fixed advisory bullets appended to every critique.
var advisoryBullets = []string{
	"Action: Keep a focused 'Skills' section (8-12 items) with versions (e.g., Python 3.11).",
	"Action: Use Goal -> Tools -> Impact bullets and add metrics.",
}

// Gaps returns required skills absent from the extracted set,
// case-insensitively, in the required list's original order, numbered
// from 1 as priority.
func Gaps(required []string, skills []types.ExtractedSkill) []types.GapItem {
	present := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		present[strings.ToLower(s.Skill)] = struct{}{}
	}
	gaps := make([]types.GapItem, 0, len(required))
	for _, r := range required {
		if _, ok := present[strings.ToLower(r)]; ok {
			continue
		}
		gaps = append(gaps, types.GapItem{Skill: r, Priority: len(gaps) + 1})
	}
	return gaps
}

// Critique builds the narrative for a request. skills must already be
// sorted descending by score and gaps by priority.
func Critique(primary *types.ScoredRole, skills []types.ExtractedSkill, gaps []types.GapItem) types.Critique {
	summary := "No role found."
	if primary != nil {
		summary = fmt.Sprintf("Match to '%s' is %.1f%% (%s).", primary.Title, primary.Score, primary.Suitability)
	}

	bullets := make([]string, 0, 2+len(advisoryBullets))
	if len(skills) > 0 {
		names := make([]string, 0, maxStrengthSkills)
		for _, s := range skills[:min(maxStrengthSkills, len(skills))] {
			names = append(names, s.Skill)
		}
		bullets = append(bullets, "Strengths detected: "+strings.Join(names, ", ")+".")
	}
	if len(gaps) > 0 {
		names := make([]string, 0, maxGapSkills)
		for _, g := range gaps[:min(maxGapSkills, len(gaps))] {
			names = append(names, g.Skill)
		}
		bullets = append(bullets, "Improve match by adding: "+strings.Join(names, ", ")+".")
	}
	bullets = append(bullets, advisoryBullets...)

	return types.Critique{
		Summary: summary,
		Bullets: bullets,
		Tone:    toneSupportive,
	}
}
