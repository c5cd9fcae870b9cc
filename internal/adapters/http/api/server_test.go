package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurapath/skillfit/internal/adapters/http/api"
	service "github.com/neurapath/skillfit/internal/app"
	"github.com/neurapath/skillfit/internal/domain/catalog"
	"github.com/neurapath/skillfit/internal/domain/types"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cat, err := catalog.New(
		[]catalog.Skill{
			{Name: "python", Aliases: []string{"py"}},
			{Name: "sql", Aliases: []string{"postgres"}},
		},
		[]catalog.Role{
			{ID: "backend", Title: "Backend Engineer", Required: []string{"python", "sql"}},
			{ID: "data", Title: "Data Analyst", Required: []string{"sql"}, NiceToHave: []string{"python"}},
		},
	)
	require.NoError(t, err)

	svc, err := service.New(cat, service.WithWorkerCount(2))
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(func() { _ = svc.Stop(context.Background()) })

	ts := httptest.NewServer(api.NewServer(svc).Router())
	t.Cleanup(ts.Close)
	return ts
}

func uploadResume(t *testing.T, ts *httptest.Server, filename, content, roleID string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	if roleID != "" {
		require.NoError(t, mw.WriteField("role_id", roleID))
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/resumes", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func TestPostResume(t *testing.T) {
	ts := newTestServer(t)

	resp := uploadResume(t, ts, "cv.txt", "Worked with Python and postgres.", "backend")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var report types.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))

	assert.Len(t, report.ResumeID, 8)
	require.NotNil(t, report.SelectedRole)
	assert.Equal(t, "backend", report.SelectedRole.RoleID)
	assert.InDelta(t, 1.0, report.SelectedRole.RequiredCoverage, 1e-9)
	assert.Empty(t, report.Gaps)
	assert.False(t, report.NoGoodMatch)
	assert.Equal(t, "supportive", report.Critique.Tone)

	names := make([]string, 0, len(report.Skills))
	for _, s := range report.Skills {
		names = append(names, s.Skill)
	}
	assert.Contains(t, names, "python")
	assert.Contains(t, names, "sql")
}

func TestPostResumeValidation(t *testing.T) {
	ts := newTestServer(t)

	t.Run("missing file field", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("role_id", "backend"))
		require.NoError(t, mw.Close())

		req, err := http.NewRequest(http.MethodPost, ts.URL+"/resumes", &buf)
		require.NoError(t, err)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "bad_request", body["code"])
	})

	t.Run("not multipart", func(t *testing.T) {
		resp, err := ts.Client().Post(ts.URL+"/resumes", "application/json", bytes.NewBufferString("{}"))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unsupported format", func(t *testing.T) {
		resp := uploadResume(t, ts, "cv.pdf", "%PDF-1.4", "")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	})
}

func TestGetRoles(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/roles")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var roles []types.RoleSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&roles))
	assert.Equal(t, []types.RoleSummary{
		{RoleID: "backend", Title: "Backend Engineer"},
		{RoleID: "data", Title: "Data Analyst"},
	}, roles)
}

func TestOperationalEndpoints(t *testing.T) {
	ts := newTestServer(t)

	t.Run("model status", func(t *testing.T) {
		resp, err := ts.Client().Get(ts.URL + "/model/status")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var status types.ModelStatus
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
		assert.Equal(t, "ready", status.State)
	})

	t.Run("health", func(t *testing.T) {
		resp, err := ts.Client().Get(ts.URL + "/health")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var health struct {
			OK bool   `json:"ok"`
			TS string `json:"ts"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
		assert.True(t, health.OK)
		assert.NotEmpty(t, health.TS)
	})

	t.Run("stats", func(t *testing.T) {
		resp, err := ts.Client().Get(ts.URL + "/stats")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var stats types.Stats
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
		assert.Equal(t, 2, stats.RoleCount)
		assert.Equal(t, 2, stats.SkillCount)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := ts.Client().Get(ts.URL + "/metrics")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestUploadSizeLimit(t *testing.T) {
	cat, err := catalog.New(
		[]catalog.Skill{{Name: "python"}},
		[]catalog.Role{{ID: "backend", Title: "Backend Engineer", Required: []string{"python"}}},
	)
	require.NoError(t, err)
	svc, err := service.New(cat)
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(func() { _ = svc.Stop(context.Background()) })

	ts := httptest.NewServer(api.NewServer(svc, api.WithMaxUploadBytes(512)).Router())
	t.Cleanup(ts.Close)

	resp := uploadResume(t, ts, "cv.txt", string(bytes.Repeat([]byte("a"), 4096)), "")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}
