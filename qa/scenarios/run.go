package scenarios

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/studyplan/core/logger"
	"github.com/kilianp07/studyplan/core/planner"
	"github.com/kilianp07/studyplan/infra/metrics"
	"github.com/kilianp07/studyplan/infra/openai"
)

// RunScenario generates the scenario's plan through a manager backed by a
// fake remote endpoint and checks the expectations.
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	var remote planner.RemotePlanner
	if sc.Remote != nil {
		srv := httptest.NewServer(remoteHandler(t, sc.Remote))
		defer srv.Close()
		cfg := openai.Config{BaseURL: srv.URL, APIKey: "sk-scenario"}
		if sc.Remote.NoCredential {
			cfg.APIKey = ""
		}
		remote, err = openai.NewClient(cfg, logger.NopLogger{})
		require.NoError(t, err)
	}

	mgr, err := planner.NewManager(remote, sink, nil, logger.NopLogger{})
	require.NoError(t, err)

	res := mgr.Generate(context.Background(), sc.Request)

	assert.Equal(t, sc.Expected.Mode, res.Mode.String(), "mode")
	got := make([]BlockDef, len(res.Blocks))
	for i, b := range res.Blocks {
		got[i] = BlockDef{Start: b.Start.String(), End: b.End.String(), Subject: b.Subject, Minutes: b.Minutes}
	}
	want := sc.Expected.Blocks
	if want == nil {
		want = []BlockDef{}
	}
	assert.Equal(t, want, got, "blocks")

	if sc.Expected.SameAsLocal {
		local := planner.GenerateLocal(sc.Request.Subjects, sc.Request.Budget(), sc.Request.Focus)
		assert.Equal(t, local.Blocks, res.Blocks, "local equivalence")
	}
	if sc.Expected.FailureKind != "" {
		assert.Equal(t, 1.0, counterValue(t, reg, "studyplan_remote_failures_total", "kind", sc.Expected.FailureKind), "failure kind")
	}
	n, err := testutil.GatherAndCount(reg, "studyplan_plans_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func counterValue(t *testing.T, g prometheus.Gatherer, name, label, value string) float64 {
	t.Helper()
	mfs, err := g.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func remoteHandler(t *testing.T, def *RemoteDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := def.Status
		if status == 0 {
			status = http.StatusOK
		}
		body := def.Body
		if body == "" && def.Text != "" {
			env := map[string]any{"output": []any{map[string]any{
				"type":    "message",
				"content": []any{map[string]any{"type": "output_text", "text": def.Text}},
			}}}
			b, err := json.Marshal(env)
			if err != nil {
				t.Errorf("encode envelope: %v", err)
			}
			body = string(b)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}
