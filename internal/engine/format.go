package engine

import (
	"fmt"
	"math"
)

// FormatClock renders elapsed seconds the way the desk timer shows them:
// "42s" under a minute, then "5m 03s".
func FormatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	m := totalSeconds / 60
	s := totalSeconds % 60
	if m == 0 {
		return fmt.Sprintf("%ds", s)
	}
	return fmt.Sprintf("%dm %02ds", m, s)
}

// FormatDuration renders a minute total for receipts: "45m", "2h", "2h 30m".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// ThoughtLabel renders the elapsed time a thought note was written at:
// "MM:SS" under an hour, "HH:MM" from there on.
func ThoughtLabel(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	if totalSeconds < 3600 {
		return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/3600, (totalSeconds%3600)/60)
}

// MinutesForElapsed converts elapsed seconds to a session duration:
// round to the nearest minute with a floor of one. Even a 1-second
// session records as 1m; no zero-duration sessions exist.
func MinutesForElapsed(totalSeconds int) int {
	m := int(math.Round(float64(totalSeconds) / 60))
	if m < 1 {
		return 1
	}
	return m
}
