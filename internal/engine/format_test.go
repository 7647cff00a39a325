package engine

import "testing"

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{42, "42s"},
		{59, "59s"},
		{60, "1m 00s"},
		{303, "5m 03s"},
		{3661, "61m 01s"},
	}
	for _, c := range cases {
		if got := FormatClock(c.seconds); got != c.want {
			t.Fatalf("FormatClock(%d)=%q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{120, "2h"},
		{150, "2h 30m"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.minutes); got != c.want {
			t.Fatalf("FormatDuration(%d)=%q, want %q", c.minutes, got, c.want)
		}
	}
}

func TestThoughtLabel(t *testing.T) {
	if got := ThoughtLabel(83); got != "01:23" {
		t.Fatalf("ThoughtLabel(83)=%q, want 01:23", got)
	}
	if got := ThoughtLabel(3599); got != "59:59" {
		t.Fatalf("ThoughtLabel(3599)=%q, want 59:59", got)
	}
	if got := ThoughtLabel(3600); got != "01:00" {
		t.Fatalf("ThoughtLabel(3600)=%q, want 01:00", got)
	}
	if got := ThoughtLabel(7500); got != "02:05" {
		t.Fatalf("ThoughtLabel(7500)=%q, want 02:05", got)
	}
}

func TestMinutesForElapsed(t *testing.T) {
	// Everything under 90 seconds floors to a single minute.
	for _, s := range []int{1, 10, 59, 60, 89} {
		if got := MinutesForElapsed(s); got != 1 {
			t.Fatalf("MinutesForElapsed(%d)=%d, want 1", s, got)
		}
	}
	if got := MinutesForElapsed(90); got != 2 {
		t.Fatalf("MinutesForElapsed(90)=%d, want 2", got)
	}
	if got := MinutesForElapsed(125); got != 2 {
		t.Fatalf("MinutesForElapsed(125)=%d, want 2", got)
	}
	if got := MinutesForElapsed(149); got != 2 {
		t.Fatalf("MinutesForElapsed(149)=%d, want 2", got)
	}
	if got := MinutesForElapsed(150); got != 3 {
		t.Fatalf("MinutesForElapsed(150)=%d, want 3", got)
	}
}
