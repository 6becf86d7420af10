package metrics

import (
	"errors"
	"fmt"

	"github.com/kilianp07/studyplan/core/factory"
)

var sinkRegistry = factory.NewRegistry[MetricsSink]()

// RegisterMetricsSink adds a metrics sink factory identified by name.
func RegisterMetricsSink(name string, f factory.Factory[MetricsSink]) error {
	return sinkRegistry.Register(name, f)
}

// NewMetricsSink builds the configured sinks. No configuration yields a
// NopSink and several yield a MultiSink. Each sink type may appear once.
func NewMetricsSink(cfgs []factory.ModuleConfig) (MetricsSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	seen := make(map[string]int, len(cfgs))
	sinks := make([]MetricsSink, 0, len(cfgs))
	for i, c := range cfgs {
		if j, dup := seen[c.Type]; dup {
			return nil, closeAll(sinks, fmt.Errorf("metrics: sink %d duplicates type %q of sink %d", i, c.Type, j))
		}
		seen[c.Type] = i
		s, err := sinkRegistry.Create(c)
		if err != nil {
			return nil, closeAll(sinks, fmt.Errorf("metrics: sink %d: %w", i, err))
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return NewMultiSink(sinks...), nil
}

// closeAll releases sinks built before a configuration error.
func closeAll(sinks []MetricsSink, cause error) error {
	if len(sinks) == 0 {
		return cause
	}
	return errors.Join(cause, NewMultiSink(sinks...).Close())
}
