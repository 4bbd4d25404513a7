package service

import (
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

// errUnchanged aborts a transaction whose callback decided nothing needs
// saving. Callers translate it back to success.
var errUnchanged = errors.New("state unchanged")

func nowUTC() time.Time {
	return time.Now().UTC()
}

// The copy helpers detach results from the committed state.

func copySuggestion(s *domain.Suggestion) *domain.Suggestion {
	c := *s
	if s.ResolvedAt != nil {
		t := *s.ResolvedAt
		c.ResolvedAt = &t
	}
	return &c
}

func copySuggestions(in []*domain.Suggestion) []*domain.Suggestion {
	out := make([]*domain.Suggestion, 0, len(in))
	for _, s := range in {
		out = append(out, copySuggestion(s))
	}
	return out
}

func copyEntry(e *domain.JournalEntry) *domain.JournalEntry {
	c := *e
	c.Tags = append([]string(nil), e.Tags...)
	c.SuggestionIDs = append([]string(nil), e.SuggestionIDs...)
	return &c
}

func copyGoal(g *domain.Goal) *domain.Goal {
	c := *g
	return &c
}

func copyHabit(h *domain.Habit) *domain.Habit {
	c := *h
	return &c
}

func copyQuickAction(q *domain.QuickAction) *domain.QuickAction {
	c := *q
	return &c
}

// horizonForDueHint maps an extracted due hint onto a goal horizon.
func horizonForDueHint(hint string) domain.Horizon {
	switch hint {
	case "today", "tonight":
		return domain.HorizonToday
	case "tomorrow", "this week", "this weekend":
		return domain.HorizonThisWeek
	case "next week", "next weekend", "this month":
		return domain.HorizonThisMonth
	default:
		return domain.HorizonLongTerm
	}
}

// stageForDueHint puts same-day actions straight into today.
func stageForDueHint(hint string) domain.Stage {
	switch hint {
	case "today", "tonight":
		return domain.StageToday
	default:
		return domain.StageInbox
	}
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
