// Package service wires the extraction pipeline together and
// implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/neurapath/skillfit/internal/adapters/extract"
	"github.com/neurapath/skillfit/internal/adapters/inference"
	"github.com/neurapath/skillfit/internal/adapters/model"
	"github.com/neurapath/skillfit/internal/adapters/storage"
	"github.com/neurapath/skillfit/internal/domain/catalog"
	"github.com/neurapath/skillfit/internal/domain/match"
	"github.com/neurapath/skillfit/internal/domain/narrative"
	"github.com/neurapath/skillfit/internal/domain/reconcile"
	"github.com/neurapath/skillfit/internal/domain/rolefit"
	"github.com/neurapath/skillfit/internal/domain/textnorm"
	"github.com/neurapath/skillfit/internal/domain/types"
	"github.com/neurapath/skillfit/pkg/logger"
	"github.com/neurapath/skillfit/pkg/metrics"
)

// Report assembly constants.
const (
	// idLength truncates UUIDs for resume and extract ids, keeping the
	// public ids short enough to read aloud.
	idLength = 8

	// previewLength is how many characters of normalized text the
	// response echoes back.
	previewLength = 1200

	// maxOtherRecommendations caps the non-primary role suggestions.
	maxOtherRecommendations = 5

	// modelVersion tags every report with the pipeline generation.
	modelVersion = "term-map+semantic+alias-v2.1"

	modelStatusNote = "Term mapping and semantic matching active. No supervised model required."
)

// Service runs the resume extraction pipeline.
type Service struct {
	cat       *catalog.Catalog
	extractor extract.Extractor
	alias     *match.AliasSource
	terms     model.TermExtractor
	mapper    model.LabelMapper
	semantic  model.SemanticMatcher
	scorer    *rolefit.Scorer
	pool      *inference.Pool
	store     *storage.AuditStore

	termThreshold     float64
	semanticThreshold float64
	inferenceTimeout  time.Duration
	workerCount       int
	queueSize         int
	storageDir        string

	started   atomic.Bool
	startedAt time.Time

	processed   atomic.Int64
	noGoodMatch atomic.Int64

	logger logger.Logger
}

// New constructs a Service over a loaded catalog. Model adapters
// default to the in-memory implementations built from the catalog's
// labels.
func New(cat *catalog.Catalog, opts ...Option) (*Service, error) {
	if cat == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrNotConfigured)
	}

	s := &Service{
		cat:               cat,
		extractor:         extract.NewPlainText(),
		alias:             match.NewAliasSource(cat),
		scorer:            rolefit.NewScorer(cat),
		termThreshold:     0.65,
		semanticThreshold: 0.62,
		inferenceTimeout:  5 * time.Second,
		logger:            logger.Get().Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}

	labels := cat.Labels()
	if s.terms == nil {
		s.terms = model.NewInMemoryTermExtractor()
	}
	if s.mapper == nil {
		s.mapper = model.NewInMemoryLabelMapper(labels)
	}
	if s.semantic == nil {
		s.semantic = model.NewInMemorySemanticMatcher(labels)
	}
	if s.store == nil {
		store, err := storage.NewAuditStore(s.storageDir)
		if err != nil {
			return nil, fmt.Errorf("audit store: %w", err)
		}
		s.store = store
	}

	poolOpts := []inference.Option{}
	if s.workerCount > 0 {
		poolOpts = append(poolOpts, inference.WithWorkers(s.workerCount))
	}
	if s.queueSize > 0 {
		poolOpts = append(poolOpts, inference.WithQueueSize(s.queueSize))
	}
	s.pool = inference.NewPool(poolOpts...)

	return s, nil
}

// Start launches the inference pool. It must be called before Analyze.
func (s *Service) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}
	s.startedAt = time.Now()
	s.pool.Start(ctx)

	for _, collision := range s.cat.AliasCollisions() {
		s.logger.Warn(ctx, "alias collision in catalog", logger.String("detail", collision))
	}
	s.logger.Info(ctx, "service started",
		logger.Int("skills", len(s.cat.Skills())),
		logger.Int("roles", len(s.cat.Roles())),
	)
	return nil
}

// Stop shuts down the inference pool.
func (s *Service) Stop(ctx context.Context) error {
	if !s.started.Load() {
		return nil
	}
	return s.pool.Stop(ctx)
}

// Analyze runs the full pipeline for one uploaded document and returns
// the report. Model adapter failures degrade the result to alias-only
// evidence; they never fail the request.
func (s *Service) Analyze(ctx context.Context, filename string, data []byte, roleID string) (*types.Report, error) {
	if !s.started.Load() {
		return nil, ErrNotStarted
	}
	start := time.Now()

	resumeID := newID()
	if err := s.store.SaveResume(ctx, resumeID, filename, data); err != nil {
		s.logger.Warn(ctx, "resume audit skipped", logger.String("resume_id", resumeID), logger.Error(err))
	}

	raw, err := s.extractor.Extract(filename, data)
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", filename, err)
	}
	text := textnorm.Normalize(raw)

	aliasCands, err := s.alias.Propose(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("alias matching: %w", err)
	}
	termLabels, semLabels := s.modelLabels(ctx, text)

	skills := reconcile.Merge(aliasCands, termLabels, semLabels)
	ranking := s.scorer.Rank(skills, roleID)

	var gaps []types.GapItem
	if ranking.Primary != nil {
		if role, ok := s.cat.Role(ranking.Primary.RoleID); ok {
			gaps = narrative.Gaps(role.Required, skills)
		}
	}
	if gaps == nil {
		gaps = []types.GapItem{}
	}

	report := &types.Report{
		ResumeID:             resumeID,
		ExtractID:            newID(),
		SelectedRole:         ranking.Primary,
		OtherRecommendations: otherRecommendations(ranking),
		NoGoodMatch:          ranking.NoGoodMatch,
		Skills:               skills,
		Gaps:                 gaps,
		Critique:             narrative.Critique(ranking.Primary, skills, gaps),
		TextPreview:          preview(text),
		ModelVer:             modelVersion,
	}

	if err := s.store.SaveReport(ctx, resumeID, report); err != nil {
		s.logger.Warn(ctx, "report audit skipped", logger.String("resume_id", resumeID), logger.Error(err))
	}

	s.processed.Add(1)
	if ranking.NoGoodMatch {
		s.noGoodMatch.Add(1)
		metrics.RecordNoGoodMatch()
	}
	metrics.RecordResumeProcessed()
	metrics.ObservePipelineLatency(float64(time.Since(start).Milliseconds()))
	metrics.ObserveSkillsPerResume(len(skills))
	metrics.RecordSourceCandidates("alias", len(aliasCands))
	metrics.RecordSourceCandidates("term", len(termLabels))
	metrics.RecordSourceCandidates("semantic", len(semLabels))

	s.logger.Info(ctx, "resume analyzed",
		logger.String("resume_id", resumeID),
		logger.Int("skills", len(skills)),
		logger.Bool("no_good_match", ranking.NoGoodMatch),
		logger.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// modelLabels runs the term and semantic adapters concurrently on the
// inference pool. Each call gets its own timeout; a failure on either
// side yields an empty slice for that side.
func (s *Service) modelLabels(ctx context.Context, text string) (term, semantic []types.LabelScore) {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		term = s.runAdapter(ctx, "term", func(callCtx context.Context) ([]types.LabelScore, error) {
			terms, err := s.terms.ExtractTerms(callCtx, text)
			if err != nil {
				return nil, err
			}
			return s.mapper.MapTerms(callCtx, terms, s.termThreshold)
		})
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		semantic = s.runAdapter(ctx, "semantic", func(callCtx context.Context) ([]types.LabelScore, error) {
			return s.semantic.LabelScores(callCtx, text, s.semanticThreshold)
		})
	}()

	wg.Wait()
	return term, semantic
}

// runAdapter executes one adapter call on the pool with a timeout and
// converts any failure into an empty result.
func (s *Service) runAdapter(ctx context.Context, name string, call func(context.Context) ([]types.LabelScore, error)) []types.LabelScore {
	callCtx, cancel := context.WithTimeout(ctx, s.inferenceTimeout)
	defer cancel()

	var (
		labels  []types.LabelScore
		callErr error
	)
	start := time.Now()
	err := s.pool.Do(callCtx, name, func(jobCtx context.Context) {
		labels, callErr = call(jobCtx)
	})
	metrics.ObserveAdapterLatency(name, float64(time.Since(start).Milliseconds()))

	if err == nil {
		err = callErr
	}
	if err != nil {
		metrics.RecordAdapterError(name)
		s.logger.Warn(ctx, "model adapter degraded to alias-only evidence",
			logger.String("adapter", name),
			logger.Error(err),
		)
		return nil
	}
	return labels
}

// ListRoles returns the catalog's roles in file order.
func (s *Service) ListRoles(_ context.Context) []types.RoleSummary {
	roles := s.cat.Roles()
	out := make([]types.RoleSummary, len(roles))
	for i, r := range roles {
		out[i] = types.RoleSummary{RoleID: r.ID, Title: r.Title}
	}
	return out
}

// ModelStatus reports adapter readiness.
func (s *Service) ModelStatus(_ context.Context) types.ModelStatus {
	state := "ready"
	if !s.started.Load() {
		state = "starting"
	}
	return types.ModelStatus{State: state, Note: modelStatusNote}
}

// GetStats returns an operational snapshot.
func (s *Service) GetStats(_ context.Context) types.Stats {
	var uptime int64
	if s.started.Load() {
		uptime = int64(time.Since(s.startedAt).Seconds())
	}
	return types.Stats{
		UptimeSeconds:    uptime,
		ResumesProcessed: s.processed.Load(),
		NoGoodMatchCount: s.noGoodMatch.Load(),
		QueueDepth:       s.pool.Len(),
		RoleCount:        len(s.cat.Roles()),
		SkillCount:       len(s.cat.Skills()),
	}
}

// otherRecommendations returns up to maxOtherRecommendations scored
// roles excluding the primary, already sorted by the ranking.
func otherRecommendations(r rolefit.Ranking) []types.ScoredRole {
	out := make([]types.ScoredRole, 0, maxOtherRecommendations)
	if r.Primary == nil {
		return out
	}
	for _, role := range r.Roles {
		if role.RoleID == r.Primary.RoleID {
			continue
		}
		out = append(out, role)
		if len(out) == maxOtherRecommendations {
			break
		}
	}
	return out
}

// preview returns the first previewLength characters of text, cutting
// on rune boundaries.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength])
}

func newID() string {
	return uuid.NewString()[:idLength]
}
