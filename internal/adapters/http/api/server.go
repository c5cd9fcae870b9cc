// Package api exposes the extraction pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neurapath/skillfit/internal/domain/types"
	"github.com/neurapath/skillfit/pkg/logger"
	"github.com/neurapath/skillfit/pkg/metrics"
)

// defaultMaxUploadBytes caps multipart uploads when no option is set.
const defaultMaxUploadBytes = 10 << 20

// Dependencies required by the HTTP handlers. The interface bundle
// keeps the handler layer loosely coupled to the service package.
type Dependencies interface {
	// Analyze runs the extraction pipeline on one uploaded document.
	Analyze(ctx context.Context, filename string, data []byte, roleID string) (*types.Report, error)

	// Read operations expose catalog and operational data.
	ListRoles(ctx context.Context) []types.RoleSummary
	ModelStatus(ctx context.Context) types.ModelStatus
	GetStats(ctx context.Context) types.Stats
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps           Dependencies
	maxUploadBytes int64
	logger         logger.Logger
}

// NewServer creates an API server over the given dependencies.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:           deps,
		maxUploadBytes: defaultMaxUploadBytes,
		logger:         logger.Get().Named("api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with all routes attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Post("/resumes", MetricsMiddleware(s.handlePostResume, "resumes"))
	r.Get("/roles", MetricsMiddleware(s.handleGetRoles, "roles"))
	r.Get("/model/status", MetricsMiddleware(s.handleModelStatus, "model_status"))
	r.Get("/health", MetricsMiddleware(s.handleHealth, "health"))
	r.Get("/stats", MetricsMiddleware(s.handleStats, "stats"))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
