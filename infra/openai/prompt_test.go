package openai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/planner"
	"github.com/kilianp07/studyplan/core/timeofday"
)

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(planner.RemoteRequest{
		Subjects: []model.Subject{
			{Name: "Math", Priority: 3, MinMinutes: 30},
			{Name: "History", Priority: 1, MinMinutes: 20},
		},
		TotalHours: 1.5,
		Start:      timeofday.Of(7, 5),
		Focus:      "Math",
	})
	assert.Contains(t, p, "- Total study hours: 1.50\n")
	assert.Contains(t, p, "- Start time: 07:05\n")
	assert.Contains(t, p, "- Math (priority 3, minimum 30 min)\n- History (priority 1, minimum 20 min)\n")
	assert.Contains(t, p, "- Main focus subject: Math\n")
	assert.Contains(t, p, "shorter than 20 minutes")
	assert.Contains(t, p, "more than 90 consecutive minutes")
	assert.Contains(t, p, `(subject "Break")`)
	assert.True(t, strings.HasSuffix(p, "}"), "prompt must end with the JSON example")
}

func TestBuildPrompt_NoFocus(t *testing.T) {
	p := BuildPrompt(planner.RemoteRequest{TotalHours: 2, Start: timeofday.Of(8, 0)})
	assert.Contains(t, p, "- Main focus subject: none\n")
	assert.Contains(t, p, "- Total study hours: 2.00\n")
}
