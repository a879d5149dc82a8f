package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var meridiemRe = regexp.MustCompile(`(?i)am|pm`)

// To12Hour normalizes a clock string to the canonical "HH:MM AM/PM" form
// used as the join key between slots and bookings. Input that already
// carries AM/PM is returned uppercased unchanged; "H:MM"/"HH:MM" 24-hour
// input is converted. Hour 0 and 12 map to 12, 13-23 map to 1-11 PM.
// Empty input yields an empty string.
func To12Hour(t string) string {
	t = strings.TrimSpace(t)
	if t == "" {
		return ""
	}
	if meridiemRe.MatchString(t) {
		return strings.ToUpper(t)
	}

	parts := strings.SplitN(t, ":", 2)
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return strings.ToUpper(t)
	}
	m := "00"
	if len(parts) == 2 && parts[1] != "" {
		m = strings.TrimSpace(parts[1])
		if len(m) < 2 {
			m = "0" + m
		}
	}

	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	hour12 := h % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%02d:%s %s", hour12, m, period)
}

// ParseClock applies an "H:MM AM/PM" clock string to the calendar day of
// base, ignoring base's own time of day.
func ParseClock(base time.Time, clock string) (time.Time, error) {
	fields := strings.Fields(strings.ToUpper(strings.TrimSpace(clock)))
	if len(fields) != 2 {
		return time.Time{}, fmt.Errorf("invalid clock string %q", clock)
	}
	hm := strings.SplitN(fields[0], ":", 2)
	if len(hm) != 2 {
		return time.Time{}, fmt.Errorf("invalid clock string %q", clock)
	}
	h, err := strconv.Atoi(hm[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hour in %q", clock)
	}
	m, err := strconv.Atoi(hm[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid minute in %q", clock)
	}

	switch fields[1] {
	case "PM":
		if h != 12 {
			h += 12
		}
	case "AM":
		if h == 12 {
			h = 0
		}
	default:
		return time.Time{}, fmt.Errorf("invalid meridiem in %q", clock)
	}

	y, mo, d := base.Date()
	return time.Date(y, mo, d, h, m, 0, 0, base.Location()), nil
}

// FormatClock renders a timestamp as the canonical "HH:MM AM/PM" string.
func FormatClock(t time.Time) string {
	return t.Format("03:04 PM")
}
