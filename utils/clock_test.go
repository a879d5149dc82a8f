package utils

import (
	"testing"
	"time"
)

func TestTo12Hour(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"18:30", "06:30 PM"},
		{"00:00", "12:00 AM"},
		{"12:00", "12:00 PM"},
		{"9:5", "09:05 AM"},
		{"13:45", "01:45 PM"},
		{"23:59", "11:59 PM"},
		{"06:30 PM", "06:30 PM"},
		{"06:30 pm", "06:30 PM"},
		{"", ""},
		{"  10:15  ", "10:15 AM"},
	}

	for _, c := range cases {
		if got := To12Hour(c.in); got != c.want {
			t.Errorf("To12Hour(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTo12HourIdempotent(t *testing.T) {
	inputs := []string{"18:30", "00:00", "9:5", "11:00 AM"}
	for _, in := range inputs {
		once := To12Hour(in)
		twice := To12Hour(once)
		if once != twice {
			t.Errorf("To12Hour not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestParseClock(t *testing.T) {
	// base carries a time-of-day and a non-UTC zone on purpose; only the
	// calendar day may influence the result
	loc := time.FixedZone("TEST", 5*3600)
	base := time.Date(2025, 3, 10, 22, 47, 13, 0, loc)

	got, err := ParseClock(base, "06:30 PM")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	want := time.Date(2025, 3, 10, 18, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("ParseClock = %v, want %v", got, want)
	}

	got, err = ParseClock(base, "12:00 AM")
	if err != nil {
		t.Fatalf("ParseClock midnight: %v", err)
	}
	if got.Hour() != 0 {
		t.Errorf("12:00 AM hour = %d, want 0", got.Hour())
	}

	got, err = ParseClock(base, "12:15 PM")
	if err != nil {
		t.Fatalf("ParseClock noon: %v", err)
	}
	if got.Hour() != 12 {
		t.Errorf("12:15 PM hour = %d, want 12", got.Hour())
	}

	if _, err := ParseClock(base, "06:30"); err == nil {
		t.Error("expected error for clock without meridiem")
	}
	if _, err := ParseClock(base, "six thirty PM"); err == nil {
		t.Error("expected error for non-numeric clock")
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for _, clock := range []string{"09:00 AM", "12:00 PM", "06:30 PM", "12:00 AM"} {
		parsed, err := ParseClock(base, clock)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", clock, err)
		}
		if got := FormatClock(parsed); got != clock {
			t.Errorf("FormatClock(ParseClock(%q)) = %q", clock, got)
		}
	}
}
