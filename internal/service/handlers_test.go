package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/palgatox64/sonusitory/internal/drive"
	"github.com/palgatox64/sonusitory/internal/jobs"
)

func testService(t *testing.T) (*Service, *jobs.StatusStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("SONUSITORY_API_KEY", "test-key")

	status := jobs.NewStatusStore()
	runner := jobs.NewRunner(nil, status, zap.NewNop())
	cfg := &drive.Config{ClientID: "id", ClientSecret: "secret", RedirectURI: "http://localhost/cb"}
	return New(nil, runner, status, cfg), status
}

func serve(s *Service, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Router(zap.NewNop()).ServeHTTP(w, req)
	return w
}

func TestHealthIsOpen(t *testing.T) {
	s, _ := testService(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := serve(s, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyRequired(t *testing.T) {
	s, _ := testService(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/artists?user_id=u1", nil)
	w := serve(s, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIKeyRejected(t *testing.T) {
	s, _ := testService(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scan/status/abc", nil)
	req.Header.Set("X-API-Key", "wrong")
	w := serve(s, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTaskStatusShape(t *testing.T) {
	s, status := testService(t)
	status.Set(jobs.Status{
		JobID: "job1",
		State: jobs.StateProgress,
		Info:  jobs.ProgressInfo{Step: "songs", Current: 2, Total: 7},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scan/status/job1", nil)
	req.Header.Set("X-API-Key", "test-key")
	w := serve(s, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "job1", body["task_id"])
	assert.Equal(t, "PROGRESS", body["status"])
	info, ok := body["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "songs", info["step"])
}

func TestTaskStatusUnknownJobIsPending(t *testing.T) {
	s, _ := testService(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scan/status/never-seen", nil)
	req.Header.Set("X-API-Key", "test-key")
	w := serve(s, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "PENDING", body["status"])
}

func TestStartScanQueuesJob(t *testing.T) {
	s, status := testService(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan?user_id=u1", nil)
	req.Header.Set("X-API-Key", "test-key")
	w := serve(s, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	jobID, ok := body["task_id"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, jobID)
	assert.Equal(t, jobs.StatePending, status.Get(jobID).State)
}

func TestStartScanRequiresUser(t *testing.T) {
	s, _ := testService(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil)
	req.Header.Set("X-API-Key", "test-key")
	w := serve(s, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConnectReturnsAuthURL(t *testing.T) {
	s, _ := testService(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/connect?user_id=u1", nil)
	req.Header.Set("X-API-Key", "test-key")
	w := serve(s, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	authURL, ok := body["auth_url"].(string)
	require.True(t, ok)
	assert.Contains(t, authURL, "state=u1")
	assert.Contains(t, authURL, "access_type=offline")
}

func TestCORSPreflight(t *testing.T) {
	s, _ := testService(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/artists", nil)
	w := serve(s, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSendBodyKeepsKnownLength(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	sendBody(c, 3, "image/png", strings.NewReader("png"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", w.Header().Get("Content-Length"))
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png", w.Body.String())
}

func TestSendBodyOmitsUnknownLength(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	// Chunked upstream responses report -1.
	sendBody(c, -1, "audio/mpeg", strings.NewReader("mp3data"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Length"))
	assert.Equal(t, "audio/mpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "mp3data", w.Body.String())
}
