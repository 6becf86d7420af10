package metrics

import "errors"

// MultiSink fans records out to several sinks. Every sink is called even if
// an earlier one fails; the errors are joined.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlan forwards the record to all sinks.
func (m *MultiSink) RecordPlan(rec PlanRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordPlan(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordRemoteFailure forwards to sinks implementing RemoteFailureRecorder.
func (m *MultiSink) RecordRemoteFailure(ev RemoteFailureEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(RemoteFailureRecorder); ok {
			if err := r.RecordRemoteFailure(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RecordRemoteLatency forwards to sinks implementing RemoteLatencyRecorder.
func (m *MultiSink) RecordRemoteLatency(lat RemoteLatency) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(RemoteLatencyRecorder); ok {
			if err := r.RecordRemoteLatency(lat); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that has a Close method.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
