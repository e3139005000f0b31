package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrAmbiguousTime is returned when a wall-clock time occurs twice on a
	// day, e.g. during a daylight saving fall-back transition.
	ErrAmbiguousTime = errors.New("ambiguous local time")
	// ErrNonexistentTime is returned when a wall-clock time is skipped on a
	// day, e.g. during a daylight saving spring-forward transition.
	ErrNonexistentTime = errors.New("nonexistent local time")
)

// Clock is a wall-clock time of day, stored as the offset from midnight.
// Effective (delay-adjusted) times may exceed 24h.
type Clock time.Duration

// Midnight is the zero Clock, also used for unparseable time fields.
const Midnight Clock = 0

// NewClock builds a Clock from hours, minutes and seconds.
func NewClock(h, m, s int) Clock {
	return Clock(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second)
}

// ClockOf returns the wall-clock time of day of t in t's location.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute(), t.Second()) + Clock(t.Nanosecond())
}

// ParseClock parses "H:MM:SS" or "HH:MM:SS". A leading space before a
// single-digit hour (" 6:05:00") is accepted. Hours past 23 are rejected.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04:05", strings.TrimLeft(s, " "))
	if err != nil {
		return Midnight, fmt.Errorf("parse time %q: %w", s, err)
	}
	return ClockOf(t), nil
}

// parseClockOrMidnight is the loader's policy for time fields: never fail.
func parseClockOrMidnight(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		return Midnight
	}
	return c
}

// Add returns c shifted by d.
func (c Clock) Add(d time.Duration) Clock {
	return c + Clock(d)
}

// Duration returns c as an offset from midnight.
func (c Clock) Duration() time.Duration {
	return time.Duration(c)
}

// Format formats c using a time.Time layout. Clocks past 24h wrap.
func (c Clock) Format(layout string) string {
	return time.Time{}.Add(time.Duration(c)).Format(layout)
}

func (c Clock) String() string {
	d := time.Duration(c).Truncate(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// LocalTime combines a calendar day and a Clock into an instant in loc. It
// fails instead of guessing when the wall-clock time is skipped or repeated
// in loc on that day.
func LocalTime(day Date, c Clock, loc *time.Location) (time.Time, error) {
	d := time.Duration(c)
	h, m, s := int(d/time.Hour), int(d%time.Hour/time.Minute), int(d%time.Minute/time.Second)
	ns := int(d % time.Second)

	t := time.Date(day.Year, day.Month, day.Day, h, m, s, ns, loc)
	if t.Year() != day.Year || t.Month() != day.Month || t.Day() != day.Day ||
		t.Hour() != h || t.Minute() != m || t.Second() != s {
		return time.Time{}, fmt.Errorf("%s %s in %s: %w", day, c, loc, ErrNonexistentTime)
	}

	// A repeated wall-clock reading shows up one offset-change away.
	_, off := t.Zone()
	for _, probe := range []time.Time{t.Add(-time.Hour), t.Add(time.Hour)} {
		if _, o := probe.Zone(); o == off {
			continue
		}
		alt := t.Add(time.Duration(off-offsetOf(probe)) * time.Second)
		if alt.Hour() == h && alt.Minute() == m && alt.Second() == s && DateOf(alt) == day && !alt.Equal(t) {
			return time.Time{}, fmt.Errorf("%s %s in %s: %w", day, c, loc, ErrAmbiguousTime)
		}
	}
	return t, nil
}

func offsetOf(t time.Time) int {
	_, off := t.Zone()
	return off
}
