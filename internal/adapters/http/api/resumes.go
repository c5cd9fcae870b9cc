package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/neurapath/skillfit/internal/adapters/extract"
	service "github.com/neurapath/skillfit/internal/app"
	"github.com/neurapath/skillfit/pkg/logger"
)

// handlePostResume accepts a multipart form with a required "file"
// part and an optional "role_id" field, and responds with the full
// extraction report.
func (s *Server) handlePostResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", errors.New("upload exceeds size limit"))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("expected multipart form data"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing file field"))
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("unreadable file upload"))
		return
	}

	report, err := s.deps.Analyze(r.Context(), header.Filename, data, r.FormValue("role_id"))
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedFormat):
			writeError(w, http.StatusUnsupportedMediaType, "unsupported_format", err)
		case errors.Is(err, service.ErrNotStarted):
			writeError(w, http.StatusServiceUnavailable, "not_ready", err)
		default:
			s.logger.Error(r.Context(), "resume analysis failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal", nil)
		}
		return
	}

	writeJSON(w, http.StatusOK, report)
}
