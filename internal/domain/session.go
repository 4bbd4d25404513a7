package domain

import (
	"strings"
	"time"
)

// WorkSession is a closed, timed block of work. Sessions are append-only.
type WorkSession struct {
	ID         string
	LinkedID   string
	LinkedKind LinkKind
	Activity   string
	Category   string
	StartedAt  time.Time
	Duration   time.Duration

	// Checkout, recorded when the session closes.
	FlowBefore    int
	FlowAfter     int
	EmotionBefore string
	EmotionAfter  string
	Note          string
}

// Flow ratings are on a 1-5 scale; zero means not recorded.
const (
	MinFlow = 1
	MaxFlow = 5
)

// Validate checks a session before it is appended.
func (w *WorkSession) Validate() error {
	if w.Duration <= 0 {
		return invalid("work session", "duration", "must be positive")
	}
	if w.StartedAt.IsZero() {
		return invalid("work session", "started_at", "must be set")
	}
	switch w.LinkedKind {
	case LinkNone:
		if w.LinkedID != "" {
			return invalid("work session", "linked_kind", "required when a link id is set")
		}
	case LinkGoal, LinkHabit:
		if strings.TrimSpace(w.LinkedID) == "" {
			return invalid("work session", "linked_id", "required for kind "+string(w.LinkedKind))
		}
	default:
		return invalid("work session", "linked_kind", "unknown value "+string(w.LinkedKind))
	}
	for _, f := range []int{w.FlowBefore, w.FlowAfter} {
		if f != 0 && (f < MinFlow || f > MaxFlow) {
			return invalid("work session", "flow", "must be between 1 and 5")
		}
	}
	return nil
}
