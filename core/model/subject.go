package model

import "strings"

// Subject is a study subject supplied by the caller.
type Subject struct {
	Name       string `json:"name" yaml:"name"`
	Priority   int    `json:"priority" yaml:"priority"`       // relative weight, doubled by the focus bonus
	MinMinutes int    `json:"min_minutes" yaml:"min_minutes"` // minimum study time before proportional shares
}

// Matches reports whether the subject name equals name ignoring case. The
// stored name keeps its original casing.
func (s Subject) Matches(name string) bool {
	return strings.ToLower(s.Name) == strings.ToLower(name)
}

// RawBlock is a subject with a duration, before it is placed on the clock.
type RawBlock struct {
	Subject string
	Minutes int
}
