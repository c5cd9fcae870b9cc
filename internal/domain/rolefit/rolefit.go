// Package rolefit scores every role template against an extracted
// skill set and selects the primary role for a request.
package rolefit

import (
	"math"
	"sort"

	"github.com/neurapath/skillfit/internal/domain/catalog"
	"github.com/neurapath/skillfit/internal/domain/types"
)

// Scoring constants. These are empirically tuned values carried over
// verbatim from the reference system; behavioral compatibility
// depends on them, so they are named here rather than re-derived.
const (
	requiredWeight   = 0.70
	niceWeight       = 0.30
	evidenceBonusCap = 10.0

	// noGoodMatchFloor is independent of the suitability label
	// thresholds below and must stay a separate constant.
	noGoodMatchFloor = 35.0

	suitabilityExcellentMin = 80
	suitabilityGoodMin      = 60
	suitabilityFairMin      = 40
)

// Ranking is the outcome of scoring all roles for one request.
type Ranking struct {
	// Roles holds every catalog role, sorted descending by score with
	// catalog-order ties.
	Roles []types.ScoredRole

	// Primary is the caller-requested role when known, else the
	// top-ranked role; nil when the catalog has no roles.
	Primary *types.ScoredRole

	// NoGoodMatch is true iff Primary is nil or scored below the
	// match floor.
	NoGoodMatch bool
}

// Scorer ranks roles against extracted skill sets.
type Scorer struct {
	cat *catalog.Catalog
}

// NewScorer creates a Scorer over the given catalog.
func NewScorer(cat *catalog.Catalog) *Scorer {
	return &Scorer{cat: cat}
}

// Rank scores every role against skills and selects the primary role.
// An unknown requestedRoleID silently falls back to the top-ranked
// role; it is never an error.
func (s *Scorer) Rank(skills []types.ExtractedSkill, requestedRoleID string) Ranking {
	extracted := make(map[string]float64, len(skills))
	var scoreSum float64
	for _, sk := range skills {
		extracted[sk.Skill] = clamp01(sk.Score)
		scoreSum += clamp01(sk.Score)
	}
	evidenceBonus := 0.0
	if len(skills) > 0 {
		evidenceBonus = scoreSum / float64(len(skills))
	}

	roles := s.cat.Roles()
	scored := make([]types.ScoredRole, 0, len(roles))
	for _, role := range roles {
		score, reqCov, niceCov := scoreRole(extracted, evidenceBonus, role)
		scored = append(scored, types.ScoredRole{
			RoleID:           role.ID,
			Title:            role.Title,
			Score:            score,
			Suitability:      suitability(score),
			RequiredCoverage: reqCov,
			NiceCoverage:     niceCov,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	r := Ranking{Roles: scored}
	if _, known := s.cat.Role(requestedRoleID); known && requestedRoleID != "" {
		for i := range scored {
			if scored[i].RoleID == requestedRoleID {
				r.Primary = &scored[i]
				break
			}
		}
	}
	if r.Primary == nil && len(scored) > 0 {
		r.Primary = &scored[0]
	}
	r.NoGoodMatch = r.Primary == nil || r.Primary.Score < noGoodMatchFloor
	return r
}

// scoreRole computes the coverage-weighted fit of one role. A role
// with neither required nor nice-to-have skills scores exactly 0.
func scoreRole(extracted map[string]float64, evidenceBonus float64, role catalog.Role) (score, reqCov, niceCov float64) {
	if len(role.Required) == 0 && len(role.NiceToHave) == 0 {
		return 0, 0, 0
	}
	if len(role.Required) > 0 {
		reqCov = float64(intersection(extracted, role.Required)) / math.Max(1, float64(len(role.Required)))
	}
	if len(role.NiceToHave) > 0 {
		niceCov = float64(intersection(extracted, role.NiceToHave)) / math.Max(1, float64(len(role.NiceToHave)))
	}

	base := requiredWeight*reqCov + niceWeight*niceCov
	score = base * 100.0
	score += math.Min(evidenceBonusCap, math.Max(0, evidenceBonus)*10.0)
	score = math.Max(0, math.Min(100, score))
	return round1(score), round3(reqCov), round3(niceCov)
}

func intersection(extracted map[string]float64, names []string) int {
	n := 0
	for _, name := range names {
		if _, ok := extracted[name]; ok {
			n++
		}
	}
	return n
}

func suitability(score float64) string {
	switch {
	case score >= suitabilityExcellentMin:
		return types.SuitabilityExcellent
	case score >= suitabilityGoodMin:
		return types.SuitabilityGood
	case score >= suitabilityFairMin:
		return types.SuitabilityFair
	default:
		return types.SuitabilityLow
	}
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
