// Package metrics defines the recorder interfaces used by the plan manager.
// Sinks are built from configuration through a registry; concrete sinks live
// in infra/metrics and register themselves on import.
package metrics
