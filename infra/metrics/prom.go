package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/studyplan/core/metrics"
)

// PromSink records plan outcomes in Prometheus metrics.
type PromSink struct {
	plans    *prometheus.CounterVec
	failures *prometheus.CounterVec
	blocks   prometheus.Histogram
	duration *prometheus.HistogramVec
	latency  *prometheus.HistogramVec
}

// NewPromSink registers plan metrics on the default Prometheus registerer.
// The /metrics endpoint is served separately by StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on reg. A nil registerer
// defaults to the global one. Collectors that are already registered are
// reused, so several sinks may share a registry.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studyplan_plans_total",
		Help: "Plans returned, by producing mode and requested remote use",
	}, []string{"mode", "requested"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studyplan_remote_failures_total",
		Help: "Failed remote plan attempts by failure kind",
	}, []string{"kind"})
	blocks := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "studyplan_plan_blocks",
		Help:    "Number of blocks per returned plan",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "studyplan_plan_duration_seconds",
		Help:    "Time spent generating a plan, remote attempt included",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "studyplan_remote_latency_seconds",
		Help:    "Latency of remote plan requests",
		Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 15, 30},
	}, []string{"success"})

	if err := register(reg, &plans); err != nil {
		return nil, err
	}
	if err := register(reg, &failures); err != nil {
		return nil, err
	}
	if err := register(reg, &blocks); err != nil {
		return nil, err
	}
	if err := register(reg, &duration); err != nil {
		return nil, err
	}
	if err := register(reg, &latency); err != nil {
		return nil, err
	}
	return &PromSink{plans: plans, failures: failures, blocks: blocks, duration: duration, latency: latency}, nil
}

// register registers *c, replacing it with the existing collector when an
// identical one is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c *C) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			*c = existing
			return nil
		}
	}
	return err
}

// RecordPlan counts the plan and observes its size and duration.
func (s *PromSink) RecordPlan(rec coremetrics.PlanRecord) error {
	mode := rec.Mode.String()
	s.plans.WithLabelValues(mode, strconv.FormatBool(rec.RemoteRequested)).Inc()
	s.blocks.Observe(float64(rec.Blocks))
	s.duration.WithLabelValues(mode).Observe(rec.Duration.Seconds())
	return nil
}

// RecordRemoteFailure increments the failure counter for ev.Kind.
func (s *PromSink) RecordRemoteFailure(ev coremetrics.RemoteFailureEvent) error {
	s.failures.WithLabelValues(ev.Kind).Inc()
	return nil
}

// RecordRemoteLatency observes the remote latency histogram.
func (s *PromSink) RecordRemoteLatency(lat coremetrics.RemoteLatency) error {
	s.latency.WithLabelValues(strconv.FormatBool(lat.Success)).Observe(lat.Latency.Seconds())
	return nil
}
