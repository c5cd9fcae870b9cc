// Package types contains the wire-level shapes shared across the
// extraction pipeline and the HTTP API.
package types

import (
	"github.com/neurapath/skillfit/internal/domain/spanindex"
)

// Suitability labels, a step function of the role score.
const (
	SuitabilityExcellent = "Excellent" // score >= 80
	SuitabilityGood      = "Good"      // score >= 60
	SuitabilityFair      = "Fair"      // score >= 40
	SuitabilityLow       = "Low"
)

// LabelScore is a (canonical label, similarity) pair returned by the
// model adapters. Adapters keep at most one pair per label.
type LabelScore struct {
	Label string
	Score float64
}

// ExtractedSkill is one reconciled skill for a request. Score is
// always clamped to [0,1]; evidence offsets point into the normalized
// text and are empty for model-derived skills.
type ExtractedSkill struct {
	Skill           string           `json:"skill"`
	Score           float64          `json:"score"`
	EvidenceOffsets []spanindex.Span `json:"evidence_offsets"`
	AliasesMatched  []string         `json:"aliases_matched"`
}

// ScoredRole is one role's fit against the extracted skill set.
type ScoredRole struct {
	RoleID           string  `json:"role_id"`
	Title            string  `json:"title"`
	Score            float64 `json:"score"`
	Suitability      string  `json:"suitability"`
	RequiredCoverage float64 `json:"required_coverage"`
	NiceCoverage     float64 `json:"nice_coverage"`
}

// GapItem is a required skill of the primary role missing from the
// extracted set. Priority is the 1-based rank in the role's required
// list.
type GapItem struct {
	Skill    string `json:"skill"`
	Priority int    `json:"priority"`
}

// Critique is the fixed-shape narrative feedback.
type Critique struct {
	Summary string   `json:"summary"`
	Bullets []string `json:"bullets"`
	Tone    string   `json:"tone"`
}

// Report is the full extraction response for one resume.
type Report struct {
	ResumeID             string           `json:"resume_id"`
	ExtractID            string           `json:"extract_id"`
	SelectedRole         *ScoredRole      `json:"selected_role"`
	OtherRecommendations []ScoredRole     `json:"other_recommendations"`
	NoGoodMatch          bool             `json:"no_good_match"`
	Skills               []ExtractedSkill `json:"skills"`
	Gaps                 []GapItem        `json:"gaps"`
	Critique             Critique         `json:"critique"`
	TextPreview          string           `json:"text_preview"`
	ModelVer             string           `json:"model_ver"`
}

// RoleSummary is the GET /roles listing shape.
type RoleSummary struct {
	RoleID string `json:"role_id"`
	Title  string `json:"title"`
}

// ModelStatus is the GET /model/status shape.
type ModelStatus struct {
	State string `json:"state"`
	Note  string `json:"note"`
}

// Stats is the operational snapshot served by GET /stats.
type Stats struct {
	UptimeSeconds    int64 `json:"uptime_seconds"`
	ResumesProcessed int64 `json:"resumes_processed"`
	NoGoodMatchCount int64 `json:"no_good_match_count"`
	QueueDepth       int   `json:"queue_depth"`
	RoleCount        int   `json:"role_count"`
	SkillCount       int   `json:"skill_count"`
}
