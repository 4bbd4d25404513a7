package domain

import (
	"strings"
	"time"
)

// JournalEntry is immutable once recorded; corrections are new entries. Only
// the ordered suggestion list grows as extraction results are attached.
type JournalEntry struct {
	ID            string
	Body          string
	Mood          string
	Tags          []string
	SuggestionIDs []string
	CreatedAt     time.Time
}

// NewJournalEntry rejects blank bodies.
func NewJournalEntry(body, mood string, now time.Time) (*JournalEntry, error) {
	if strings.TrimSpace(body) == "" {
		return nil, invalid("journal entry", "body", "must not be empty")
	}
	return &JournalEntry{
		Body:      body,
		Mood:      strings.TrimSpace(mood),
		CreatedAt: now,
	}, nil
}

func (e *JournalEntry) clone() *JournalEntry {
	c := *e
	c.Tags = cloneStrings(e.Tags)
	c.SuggestionIDs = cloneStrings(e.SuggestionIDs)
	return &c
}

// Reflections holds the user's north-star notes. It is replaced wholesale.
type Reflections struct {
	Values     string
	Milestones string
	Energy     string
	UpdatedAt  *time.Time
}

func (r Reflections) IsZero() bool {
	return r.Values == "" && r.Milestones == "" && r.Energy == "" && r.UpdatedAt == nil
}
