package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/kilianp07/studyplan/core/timeofday"
)

// MaxTotalHours bounds total_hours so the minute budget fits in an int32.
const MaxTotalHours = math.MaxInt32 / 60

// DefaultStart is used when the requested start time cannot be parsed.
var DefaultStart = timeofday.Of(8, 0)

// PlanRequest is the inbound request decoded by the serving layer.
type PlanRequest struct {
	TotalHours float64   `json:"total_hours" yaml:"total_hours"`
	StartTime  string    `json:"start_time" yaml:"start_time"`
	Subjects   []Subject `json:"subjects" yaml:"subjects"`
	Focus      string    `json:"focus,omitempty" yaml:"focus,omitempty"`
	UseRemote  bool      `json:"use_remote" yaml:"use_remote"`
}

// TimeBudget is the normalised time available for one plan.
type TimeBudget struct {
	TotalMinutes int
	Start        timeofday.Time
}

// Budget converts the requested hours and start time. Unparsable start times
// fall back to DefaultStart.
func (r PlanRequest) Budget() TimeBudget {
	total := 0
	if r.TotalHours > 0 && !math.IsInf(r.TotalHours, 1) {
		total = int(math.Round(r.TotalHours * 60))
	}
	return TimeBudget{
		TotalMinutes: total,
		Start:        timeofday.ParseOr(r.StartTime, DefaultStart),
	}
}

// Validate checks the request against the data model invariants.
func (r PlanRequest) Validate() error {
	if math.IsNaN(r.TotalHours) || math.IsInf(r.TotalHours, 0) {
		return errors.New("total_hours must be a finite number")
	}
	if r.TotalHours < 0 {
		return fmt.Errorf("total_hours must not be negative: %v", r.TotalHours)
	}
	if r.TotalHours > MaxTotalHours {
		return fmt.Errorf("total_hours must not exceed %d: %v", MaxTotalHours, r.TotalHours)
	}
	for i, s := range r.Subjects {
		if s.Name == "" {
			return fmt.Errorf("subjects[%d]: name is required", i)
		}
		if s.Priority < 0 {
			return fmt.Errorf("subjects[%d] %q: priority must not be negative", i, s.Name)
		}
		if s.MinMinutes < 0 {
			return fmt.Errorf("subjects[%d] %q: min_minutes must not be negative", i, s.Name)
		}
	}
	return nil
}
