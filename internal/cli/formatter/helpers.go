package formatter

import (
	"fmt"
	"strings"
	"time"
)

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// HumanDateFrom returns "Today", "Yesterday" or an absolute date relative
// to now.
func HumanDateFrom(t, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestampFrom returns a relative timestamp for recent times and a
// date otherwise.
func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return HumanDateFrom(t, now)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDateFrom(t, now)
	}
}

// FormatDuration converts a duration into "1h 30m" form, rounding to the
// minute.
func FormatDuration(d time.Duration) string {
	min := int(d.Round(time.Minute).Minutes())
	if min <= 0 {
		return "0m"
	}
	h, m := min/60, min%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// OrDash renders empty strings as a dimmed dash.
func OrDash(s string) string {
	if s == "" {
		return Dim("--")
	}
	return s
}
