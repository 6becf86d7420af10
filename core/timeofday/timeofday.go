// Package timeofday implements wall-clock time-of-day arithmetic with minute
// resolution. Values wrap around midnight: 23:30 plus 45 minutes is 00:15.
package timeofday

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of the wrap-around cycle.
const MinutesPerDay = 24 * 60

// ErrInvalid is returned when a string is not a valid HH:MM time of day.
var ErrInvalid = errors.New("invalid time of day")

// Time is a time of day stored as minutes since midnight. The zero value is
// 00:00.
type Time struct {
	min int
}

// Of returns the time hour:minute, normalised into a single day.
func Of(hour, minute int) Time {
	return Time{min: wrap(hour*60 + minute)}
}

// Parse reads "HH:MM" (the hour may have one or two digits).
func Parse(s string) (Time, error) {
	hs, ms, ok := strings.Cut(s, ":")
	if !ok || len(hs) < 1 || len(hs) > 2 || len(ms) != 2 {
		return Time{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	h, err := parseDigits(hs)
	if err != nil || h > 23 {
		return Time{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	m, err := parseDigits(ms)
	if err != nil || m > 59 {
		return Time{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return Time{min: h*60 + m}, nil
}

// ParseOr parses s and returns def when s is not a valid time of day.
func ParseOr(s string, def Time) Time {
	t, err := Parse(s)
	if err != nil {
		return def
	}
	return t
}

func parseDigits(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalid
		}
	}
	return strconv.Atoi(s)
}

// Add returns t moved forward by minutes (backward when negative).
func (t Time) Add(minutes int) Time {
	return Time{min: wrap(t.min + minutes)}
}

// Sub returns t-u in minutes within the same day. The result is negative
// when u is later than t; no wrap-around is assumed.
func (t Time) Sub(u Time) int {
	return t.min - u.min
}

// Hour returns the hour in [0, 23].
func (t Time) Hour() int { return t.min / 60 }

// Minute returns the minute in [0, 59].
func (t Time) Minute() int { return t.min % 60 }

// Minutes returns the number of minutes since midnight.
func (t Time) Minutes() int { return t.min }

// String formats t as HH:MM.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalText implements encoding.TextMarshaler.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Time) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func wrap(m int) int {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return m
}
