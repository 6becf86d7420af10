// Package events defines the planning events emitted on the event bus.
//
// Available event types:
//   - StrategyEvent: path selection and fallback information
//   - PlanEvent: a finished plan with its timing
package events
