package metrics

import (
	"time"

	"github.com/kilianp07/studyplan/core/model"
)

// PlanRecord summarises one generated plan.
type PlanRecord struct {
	PlanID          string
	Mode            model.Mode
	RemoteRequested bool
	Fallback        bool
	Blocks          int
	TotalMinutes    int
	Duration        time.Duration
	Time            time.Time
}

// MetricsSink records plan outcomes for observability purposes.
type MetricsSink interface {
	RecordPlan(rec PlanRecord) error
}

// RemoteFailureEvent describes one failed remote attempt.
type RemoteFailureEvent struct {
	PlanID string
	Kind   string
	Status int
	Time   time.Time
}

// RemoteFailureRecorder records failed remote attempts.
type RemoteFailureRecorder interface {
	RecordRemoteFailure(ev RemoteFailureEvent) error
}

// RemoteLatency is the wall time of one remote attempt.
type RemoteLatency struct {
	PlanID  string
	Success bool
	Latency time.Duration
}

// RemoteLatencyRecorder is implemented by sinks able to record remote latency.
type RemoteLatencyRecorder interface {
	RecordRemoteLatency(lat RemoteLatency) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlan(PlanRecord) error                  { return nil }
func (NopSink) RecordRemoteFailure(RemoteFailureEvent) error { return nil }
func (NopSink) RecordRemoteLatency(RemoteLatency) error      { return nil }
