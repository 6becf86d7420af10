package timeofday

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"08:00", "08:00", true},
		{"8:05", "08:05", true},
		{"23:59", "23:59", true},
		{"00:00", "00:00", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"1200", "", false},
		{"ab:cd", "", false},
		{"", "", false},
		{" 8:00", "", false},
		{"08:0", "", false},
		{"+8:00", "", false},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if !c.ok {
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("%q: expected ErrInvalid, got %v", c.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", c.in, err)
			continue
		}
		if got.String() != c.want {
			t.Errorf("%q: got %s want %s", c.in, got, c.want)
		}
	}
}

func TestParseOr(t *testing.T) {
	def := Of(8, 0)
	assert.Equal(t, "09:30", ParseOr("09:30", def).String())
	assert.Equal(t, "08:00", ParseOr("nope", def).String())
}

func TestAddWrapsAroundMidnight(t *testing.T) {
	start := Of(23, 30)
	assert.Equal(t, "00:15", start.Add(45).String())
	assert.Equal(t, "23:30", start.Add(MinutesPerDay).String())
	assert.Equal(t, "23:00", start.Add(-30).String())
	assert.Equal(t, "23:59", Of(0, 0).Add(-1).String())
}

func TestSub(t *testing.T) {
	a := Of(9, 15)
	b := Of(8, 0)
	assert.Equal(t, 75, a.Sub(b))
	assert.Equal(t, -75, b.Sub(a))
	assert.Equal(t, 0, a.Sub(a))
}

func TestAccessors(t *testing.T) {
	v := Of(14, 7)
	assert.Equal(t, 14, v.Hour())
	assert.Equal(t, 7, v.Minute())
	assert.Equal(t, 14*60+7, v.Minutes())
	assert.Equal(t, "00:30", Of(24, 30).String())
}

func TestTextRoundTripInJSON(t *testing.T) {
	type wrapper struct {
		At Time `json:"at"`
	}
	b, err := json.Marshal(wrapper{At: Of(7, 5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"07:05"}`, string(b))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"at":"18:45"}`), &w))
	assert.Equal(t, Of(18, 45), w.At)

	assert.Error(t, json.Unmarshal([]byte(`{"at":"25:00"}`), &w))
}
