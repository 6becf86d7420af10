package plan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/studyplan/core/logger"
	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/planner"
)

type fakeGenerator struct {
	got model.PlanRequest
	res model.PlanResult
}

func (f *fakeGenerator) Generate(_ context.Context, req model.PlanRequest) model.PlanResult {
	f.got = req
	return f.res
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCreatePlan_LocalScenario(t *testing.T) {
	m, err := planner.NewManager(nil, nil, nil, logger.NopLogger{})
	require.NoError(t, err)
	h := NewRouter(m, Options{})

	rr := post(t, h, `{
		"total_hours": 1.0,
		"start_time": "08:00",
		"subjects": [
			{"name": "Math", "priority": 3, "min_minutes": 30},
			{"name": "History", "priority": 1, "min_minutes": 20}
		],
		"use_remote": false
	}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.NotEmpty(t, rr.Header().Get(PlanIDHeader))
	assert.JSONEq(t, `{"mode":"local","blocks":[
		{"start":"08:00","end":"08:38","subject":"Math","minutes":38},
		{"start":"08:38","end":"09:01","subject":"History","minutes":23}
	]}`, rr.Body.String())
}

func TestCreatePlan_EmptyBlocksEncodeAsArray(t *testing.T) {
	gen := &fakeGenerator{res: model.PlanResult{Mode: model.ModeLocal}}
	rr := post(t, NewRouter(gen, Options{}), `{"total_hours": 0, "subjects": []}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"mode":"local","blocks":[]}`, rr.Body.String())
	assert.Empty(t, rr.Header().Get(PlanIDHeader))
}

func TestCreatePlan_UseAIAlias(t *testing.T) {
	cases := []struct {
		body string
		want bool
	}{
		{`{"use_ai": true}`, true},
		{`{"use_remote": true}`, true},
		{`{"use_remote": false, "use_ai": true}`, false},
		{`{}`, false},
	}
	for _, c := range cases {
		gen := &fakeGenerator{}
		rr := post(t, NewRouter(gen, Options{}), c.body)
		require.Equal(t, http.StatusOK, rr.Code, c.body)
		assert.Equal(t, c.want, gen.got.UseRemote, c.body)
	}
}

func TestCreatePlan_PassesFields(t *testing.T) {
	gen := &fakeGenerator{res: model.PlanResult{ID: "abc", Mode: model.ModeRemote}}
	rr := post(t, NewRouter(gen, Options{}), `{"total_hours": 2.5, "start_time": "14:30", "focus": "Math",
		"subjects": [{"name": "Math", "priority": 2, "min_minutes": 15}]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "abc", rr.Header().Get(PlanIDHeader))
	assert.Equal(t, model.PlanRequest{
		TotalHours: 2.5,
		StartTime:  "14:30",
		Focus:      "Math",
		Subjects:   []model.Subject{{Name: "Math", Priority: 2, MinMinutes: 15}},
	}, gen.got)
}

func TestCreatePlan_MalformedPayload(t *testing.T) {
	for _, body := range []string{`{"total_hours": "two"}`, `not json`, ``} {
		gen := &fakeGenerator{}
		rr := post(t, NewRouter(gen, Options{}), body)
		assert.Equal(t, http.StatusInternalServerError, rr.Code, body)
		assert.Contains(t, rr.Body.String(), `"error"`, body)
	}
}

func TestCreatePlan_InvalidRequest(t *testing.T) {
	gen := &fakeGenerator{}
	rr := post(t, NewRouter(gen, Options{}), `{"total_hours": -1}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "total_hours")

	rr = post(t, NewRouter(gen, Options{}), `{"total_hours": 1e18}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "must not exceed")
	assert.Empty(t, gen.got.Subjects)
	assert.Zero(t, gen.got.TotalHours)
}

func TestHealthz(t *testing.T) {
	rr := httptest.NewRecorder()
	NewRouter(&fakeGenerator{}, Options{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>plans</h1>"), 0o644))
	h := NewRouter(&fakeGenerator{}, Options{StaticDir: dir})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<h1>plans</h1>")

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStaticDisabledWhenMissing(t *testing.T) {
	h := NewRouter(&fakeGenerator{}, Options{StaticDir: filepath.Join(t.TempDir(), "nope")})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	NewRouter(&fakeGenerator{}, Options{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/plan", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
