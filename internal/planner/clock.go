package planner

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the wrap-around modulus for clock arithmetic.
const MinutesPerDay = 24 * 60

// Clock is a wall-clock time expressed in minutes since midnight.
type Clock int

// DefaultDayStart is the hour every day's layout begins at.
var DefaultDayStart = NewClock(8, 0)

// NewClock builds a clock value, wrapping out-of-range input.
func NewClock(hour, minute int) Clock {
	return AddMinutes(0, hour*60+minute)
}

// ParseClock parses a 24-hour "HH:MM" string.
func ParseClock(raw string) (Clock, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("planner: invalid clock %q", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("planner: invalid hour in %q", raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("planner: invalid minute in %q", raw)
	}
	return NewClock(hour, minute), nil
}

// Hour returns the hour of day, 0-23.
func (c Clock) Hour() int {
	return int(c) / 60
}

// Minute returns the minute of the hour, 0-59.
func (c Clock) Minute() int {
	return int(c) % 60
}

// String formats the clock in 12-hour form.
func (c Clock) String() string {
	return Format12h(c.Hour(), c.Minute())
}

// AddMinutes advances c by d minutes, wrapping modulo one day.
func AddMinutes(c Clock, d int) Clock {
	v := (int(c) + d) % MinutesPerDay
	if v < 0 {
		v += MinutesPerDay
	}
	return Clock(v)
}

// Format12h renders an hour/minute pair as "h:mm AM|PM". Minute overflow carries into the hour, which wraps modulo 24.
func Format12h(hour, minute int) string {
	c := NewClock(hour, minute)
	hour, minute = c.Hour(), c.Minute()
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, suffix)
}
