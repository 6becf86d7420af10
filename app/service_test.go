package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/studyplan/config"
	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/infra/logger"
	"github.com/kilianp07/studyplan/infra/openai"
)

func testConfig(t *testing.T, remoteURL string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Remote.BaseURL = remoteURL
	cfg.Remote.APIKey = "sk-test"
	cfg.Server.StaticDir = t.TempDir()
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	return cfg
}

func startService(t *testing.T, cfg *config.Config) string {
	t.Helper()
	logger.SetOutput(io.Discard)
	t.Cleanup(func() { logger.SetOutput(nil) })

	ctx, cancel := context.WithCancel(context.Background())
	svc, err := New(ctx, cfg)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx, ln) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("service did not stop")
		}
		assert.NoError(t, svc.Close())
	})
	return "http://" + ln.Addr().String()
}

func postPlan(t *testing.T, base string, req model.PlanRequest) model.PlanResult {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	resp, err := http.Post(base+"/api/plan", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res model.PlanResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return res
}

func sampleRequest() model.PlanRequest {
	return model.PlanRequest{
		TotalHours: 1,
		StartTime:  "08:00",
		Subjects: []model.Subject{
			{Name: "Math", Priority: 3, MinMinutes: 30},
			{Name: "History", Priority: 1, MinMinutes: 20},
		},
	}
}

func TestService_RemoteFailureFallsBack(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer remote.Close()
	base := startService(t, testConfig(t, remote.URL))

	req := sampleRequest()
	req.UseRemote = true
	res := postPlan(t, base, req)

	assert.Equal(t, model.ModeLocal, res.Mode)
	require.Len(t, res.Blocks, 2)
	assert.Equal(t, 38, res.Blocks[0].Minutes)
	assert.Equal(t, 23, res.Blocks[1].Minutes)
}

func TestService_RemoteSuccess(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output":[{"type":"message","content":[{"type":"output_text",
			"text":"{\"blocks\":[{\"start\":\"08:00\",\"end\":\"09:00\",\"subject\":\"Math\"}]}"}]}]}`))
	}))
	defer remote.Close()
	base := startService(t, testConfig(t, remote.URL))

	req := sampleRequest()
	req.UseRemote = true
	res := postPlan(t, base, req)

	assert.Equal(t, model.ModeRemote, res.Mode)
	require.Len(t, res.Blocks, 1)
	assert.Equal(t, 60, res.Blocks[0].Minutes)
}

func TestService_Healthz(t *testing.T) {
	base := startService(t, testConfig(t, "http://127.0.0.1:1"))
	resp, err := http.Get(base + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewRemotePlanner(t *testing.T) {
	p, err := NewRemotePlanner(openai.Config{Disabled: true}, logger.NopLogger{})
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewRemotePlanner(openai.Config{}, logger.NopLogger{})
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = NewRemotePlanner(openai.Config{BaseURL: "::"}, logger.NopLogger{})
	assert.Error(t, err)
}

func TestNew_UnknownSink(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Metrics.Sinks[0].Type = "statsd"
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
