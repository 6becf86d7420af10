package model

import (
	"fmt"

	"github.com/kilianp07/studyplan/core/timeofday"
)

// Mode records which generation path produced a plan.
type Mode int

const (
	ModeLocal Mode = iota
	ModeRemote
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLocal:
		return "local"
	case ModeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case ModeLocal, ModeRemote:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("unknown mode %d", int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "local":
		*m = ModeLocal
	case "remote":
		*m = ModeRemote
	default:
		return fmt.Errorf("unknown mode %q", string(b))
	}
	return nil
}

// ScheduleBlock is a block placed on the clock.
type ScheduleBlock struct {
	Start   timeofday.Time `json:"start" yaml:"start"`
	End     timeofday.Time `json:"end" yaml:"end"`
	Subject string         `json:"subject" yaml:"subject"`
	Minutes int            `json:"minutes" yaml:"minutes"`
}

// PlanResult is the outcome of one generation request.
type PlanResult struct {
	ID     string          `json:"-" yaml:"-"`
	Mode   Mode            `json:"mode" yaml:"mode"`
	Blocks []ScheduleBlock `json:"blocks" yaml:"blocks"`
}

// TotalMinutes sums the minutes of every block.
func (r PlanResult) TotalMinutes() int {
	total := 0
	for _, b := range r.Blocks {
		total += b.Minutes
	}
	return total
}
