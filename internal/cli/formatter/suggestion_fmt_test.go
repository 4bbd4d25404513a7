package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatSuggestions(t *testing.T) {
	out := FormatSuggestions("Pending", []*domain.Suggestion{
		{
			ID:             "0123456789abcdef",
			Classification: domain.ClassHabit,
			Confidence:     0.82,
			Proposed:       domain.ProposedFields{Title: "stretch", Category: "health", Frequency: domain.CadenceDaily},
			Status:         domain.SuggestionPending,
		},
	})
	assert.Contains(t, out, "PENDING")
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789")
	assert.Contains(t, out, "habit")
	assert.Contains(t, out, "82%")
	assert.Contains(t, out, "daily")

	assert.Contains(t, FormatSuggestions("Pending", nil), "No suggestions.")
}

func TestFormatPromoteResult(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	accepted := &app.PromoteResult{
		Suggestion: &domain.Suggestion{ID: "s1", Classification: domain.ClassGoal, Status: domain.SuggestionAccepted, ResolvedAt: &now},
		Created:    true,
		Goal:       &domain.Goal{ID: "goal-1", Title: "run a marathon"},
	}
	out := FormatPromoteResult(accepted)
	assert.Contains(t, out, "Created goal")
	assert.Contains(t, out, "run a marathon")
	assert.Contains(t, out, "goal-1")

	rejected := &app.PromoteResult{
		Suggestion: &domain.Suggestion{ID: "s2", Status: domain.SuggestionRejected},
	}
	assert.Contains(t, FormatPromoteResult(rejected), "Rejected")
}

func TestFormatStateReport(t *testing.T) {
	out := FormatStateReport("check", &app.StateReport{
		Problems: []string{"habit h1: linked goal g9 does not exist"},
	})
	assert.Contains(t, out, "1 integrity problem(s)")
	assert.Contains(t, out, "linked goal g9")
	assert.NotContains(t, out, "entities:")
	assert.NotContains(t, out, "consistent")

	ok := FormatStateReport("check", &app.StateReport{
		FromVersion: 2,
		Counts:      app.StateCounts{Goals: 1, Habits: 1, Suggestions: 3, Pending: 2},
	})
	assert.Contains(t, ok, "schema v2")
	assert.Contains(t, ok, "3 suggestions (2 pending)")
	assert.Contains(t, ok, "consistent")

	clean := FormatStateReport("repair", &app.StateReport{FromVersion: 1, Migrated: true, Rewritten: true})
	assert.Contains(t, clean, "migrated")
	assert.Contains(t, clean, "state rewritten")
}
