package events

import (
	"time"

	"github.com/kilianp07/studyplan/core/model"
)

// Event is implemented by every type published on the planning bus.
type Event interface {
	planID() string
}

// Strategy actions.
const (
	ActionLocal         = "local"
	ActionRemoteAttempt = "remote_attempt"
	ActionRemoteSuccess = "remote_success"
	ActionRemoteFailure = "remote_failure"
	ActionLocalFallback = "local_fallback"
)

// StrategyEvent is emitted each time the manager chooses or abandons a path.
type StrategyEvent struct {
	PlanID string
	Action string
	Err    error
}

func (e StrategyEvent) planID() string { return e.PlanID }

// PlanEvent is emitted once per request with the plan that was returned.
type PlanEvent struct {
	PlanID          string           `json:"plan_id"`
	RemoteRequested bool             `json:"remote_requested"`
	Result          model.PlanResult `json:"result"`
	Duration        time.Duration    `json:"duration_ns"`
	Time            time.Time        `json:"time"`
}

func (e PlanEvent) planID() string { return e.PlanID }

// PlanID returns the identifier of the plan an event belongs to.
func PlanID(e Event) string {
	if e == nil {
		return ""
	}
	return e.planID()
}
