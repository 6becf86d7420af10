package planner

import (
	"context"

	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/timeofday"
)

// RemoteRequest carries the inputs handed to a remote planner.
type RemoteRequest struct {
	Subjects   []model.Subject
	TotalHours float64
	Start      timeofday.Time
	Focus      string
}

// RemotePlanner asks an external service for a plan. Errors should be
// *RemoteError values so failures can be classified.
type RemotePlanner interface {
	RequestPlan(ctx context.Context, req RemoteRequest) ([]model.ScheduleBlock, error)
}

// RemotePlannerFunc adapts a function to RemotePlanner.
type RemotePlannerFunc func(ctx context.Context, req RemoteRequest) ([]model.ScheduleBlock, error)

func (f RemotePlannerFunc) RequestPlan(ctx context.Context, req RemoteRequest) ([]model.ScheduleBlock, error) {
	return f(ctx, req)
}
