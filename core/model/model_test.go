package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/studyplan/core/timeofday"
)

func TestPlanRequest_Budget(t *testing.T) {
	cases := []struct {
		name  string
		req   PlanRequest
		total int
		start string
	}{
		{"one hour", PlanRequest{TotalHours: 1, StartTime: "08:00"}, 60, "08:00"},
		{"rounded", PlanRequest{TotalHours: 1.2583, StartTime: "09:15"}, 75, "09:15"},
		{"zero", PlanRequest{TotalHours: 0, StartTime: "10:00"}, 0, "10:00"},
		{"bad start", PlanRequest{TotalHours: 0.5, StartTime: "later"}, 30, "08:00"},
		{"empty start", PlanRequest{TotalHours: 0.5}, 30, "08:00"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := c.req.Budget()
			assert.Equal(t, c.total, b.TotalMinutes)
			assert.Equal(t, c.start, b.Start.String())
		})
	}
}

func TestPlanRequest_Validate(t *testing.T) {
	ok := PlanRequest{TotalHours: 2, Subjects: []Subject{{Name: "Math", Priority: 0, MinMinutes: 0}}}
	assert.NoError(t, ok.Validate())
	assert.NoError(t, PlanRequest{TotalHours: MaxTotalHours}.Validate())

	bad := []PlanRequest{
		{TotalHours: -1},
		{TotalHours: math.NaN()},
		{TotalHours: math.Inf(1)},
		{TotalHours: MaxTotalHours + 1},
		{TotalHours: 1.6e17},
		{TotalHours: 1, Subjects: []Subject{{Name: "", Priority: 1}}},
		{TotalHours: 1, Subjects: []Subject{{Name: "Math", Priority: -1}}},
		{TotalHours: 1, Subjects: []Subject{{Name: "Math", Priority: 1, MinMinutes: -5}}},
	}
	for i, r := range bad {
		assert.Error(t, r.Validate(), "case %d", i)
	}
}

func TestSubject_Matches(t *testing.T) {
	s := Subject{Name: "História"}
	assert.True(t, s.Matches("história"))
	assert.True(t, s.Matches("HISTÓRIA"))
	assert.False(t, s.Matches("Historia"))
	assert.Equal(t, "História", s.Name)
}

func TestPlanResult_JSON(t *testing.T) {
	res := PlanResult{
		ID:   "ignored",
		Mode: ModeLocal,
		Blocks: []ScheduleBlock{
			{Start: timeofday.Of(8, 0), End: timeofday.Of(8, 38), Subject: "Math", Minutes: 38},
		},
	}
	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"local","blocks":[{"start":"08:00","end":"08:38","subject":"Math","minutes":38}]}`, string(b))
	assert.Equal(t, 38, res.TotalMinutes())

	var back PlanResult
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"remote","blocks":[]}`), &back))
	assert.Equal(t, ModeRemote, back.Mode)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "local", ModeLocal.String())
	assert.Equal(t, "remote", ModeRemote.String())
	assert.Equal(t, "unknown", Mode(7).String())
	_, err := Mode(7).MarshalText()
	assert.Error(t, err)
	var m Mode
	assert.Error(t, m.UnmarshalText([]byte("ai")))
}
