package app

import (
	"sort"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

type LoadRequest struct {
	// Repair fixes integrity problems instead of failing.
	Repair bool
}

type RecordJournalRequest struct {
	Body string
	Mood string
	// SkipExtraction records the entry without running the engine.
	SkipExtraction bool
}

type RecordJournalResult struct {
	Entry       *domain.JournalEntry
	Suggestions []*domain.Suggestion
}

// JournalEntryView is an entry with its suggestions in extraction order.
type JournalEntryView struct {
	Entry       *domain.JournalEntry
	Suggestions []*domain.Suggestion
}

type JournalFilter struct {
	Tag   string
	Limit int
}

// SuggestionFilter narrows a suggestion listing. Empty fields match all.
type SuggestionFilter struct {
	EntryID        string
	Status         domain.SuggestionStatus
	Classification domain.Classification
}

func (f SuggestionFilter) Match(s *domain.Suggestion) bool {
	if f.EntryID != "" && s.EntryID != f.EntryID {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.Classification != "" && s.Classification != f.Classification {
		return false
	}
	return true
}

// StateReport summarises a check, repair or migration of the store.
type StateReport struct {
	FromVersion int
	Migrated    bool
	Rewritten   bool
	Repairs     []string
	Problems    []string
	Counts      StateCounts
}

type StateCounts struct {
	Goals          int
	Habits         int
	QuickActions   int
	JournalEntries int
	Suggestions    int
	Pending        int
	WorkSessions   int
}

func CountState(s *domain.State) StateCounts {
	c := StateCounts{
		Goals:          len(s.Goals),
		Habits:         len(s.Habits),
		QuickActions:   len(s.QuickActions),
		JournalEntries: len(s.JournalEntries),
		Suggestions:    len(s.Suggestions),
		WorkSessions:   len(s.WorkSessions),
	}
	for _, sg := range s.Suggestions {
		if sg.Status == domain.SuggestionPending {
			c.Pending++
		}
	}
	return c
}

func setFields(fields map[string]bool) []string {
	var out []string
	for name, set := range fields {
		if set {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
