package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

// FixedNow is the clock used by fixtures.
var FixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// SequentialIDs returns a generator yielding prefix-1, prefix-2, ... for
// stable ids in assertions.
func SequentialIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// NewTestState returns an empty state with sequential seed-N ids.
func NewTestState() *domain.State {
	s := domain.NewState()
	s.SetIDGenerator(SequentialIDs("seed"))
	return s
}

// Suggestion options
type SuggestionOption func(*domain.Suggestion)

func WithConfidence(c float64) SuggestionOption {
	return func(s *domain.Suggestion) {
		s.Confidence = c
	}
}

func WithCategory(c string) SuggestionOption {
	return func(s *domain.Suggestion) {
		s.Proposed.Category = c
	}
}

func WithDueHint(h string) SuggestionOption {
	return func(s *domain.Suggestion) {
		s.Proposed.DueHint = h
	}
}

func WithFrequency(c domain.Cadence) SuggestionOption {
	return func(s *domain.Suggestion) {
		s.Proposed.Frequency = c
	}
}

func WithSpan(span string, offset int) SuggestionOption {
	return func(s *domain.Suggestion) {
		s.Span = span
		s.Offset = offset
	}
}

// NewTestSuggestion returns an unrecorded pending candidate, as the
// extraction engine would produce it.
func NewTestSuggestion(class domain.Classification, title string, opts ...SuggestionOption) domain.Suggestion {
	s := domain.Suggestion{
		Span:           title,
		Classification: class,
		Confidence:     0.75,
		Proposed: domain.ProposedFields{
			Title:    title,
			Category: domain.DefaultCategory,
		},
		Status: domain.SuggestionPending,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Journal entry options
type EntryOption func(*domain.JournalEntry)

func WithMood(m string) EntryOption {
	return func(e *domain.JournalEntry) {
		e.Mood = m
	}
}

func WithTags(tags ...string) EntryOption {
	return func(e *domain.JournalEntry) {
		e.Tags = tags
	}
}

func WithCreatedAt(t time.Time) EntryOption {
	return func(e *domain.JournalEntry) {
		e.CreatedAt = t
	}
}

// SeedEntry records a journal entry and its pending suggestions in s and
// returns the stored copies.
func SeedEntry(t testing.TB, s *domain.State, body string, suggestions []domain.Suggestion, opts ...EntryOption) (*domain.JournalEntry, []*domain.Suggestion) {
	t.Helper()
	e, err := domain.NewJournalEntry(body, "", FixedNow)
	if err != nil {
		t.Fatalf("creating journal entry: %v", err)
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := s.AddJournalEntry(e); err != nil {
		t.Fatalf("adding journal entry: %v", err)
	}
	stored, err := s.AddSuggestions(e.ID, suggestions, e.CreatedAt)
	if err != nil {
		t.Fatalf("adding suggestions: %v", err)
	}
	return e, stored
}

// SeedGoal adds an active goal with the given title.
func SeedGoal(t testing.TB, s *domain.State, title string) *domain.Goal {
	t.Helper()
	g, err := domain.NewGoal(domain.GoalFields{Title: title}, FixedNow)
	if err != nil {
		t.Fatalf("creating goal: %v", err)
	}
	if err := s.AddGoal(g); err != nil {
		t.Fatalf("adding goal: %v", err)
	}
	return g
}

// SeedHabit adds an active daily habit with the given title.
func SeedHabit(t testing.TB, s *domain.State, title string) *domain.Habit {
	t.Helper()
	h, err := domain.NewHabit(domain.HabitFields{Title: title}, FixedNow)
	if err != nil {
		t.Fatalf("creating habit: %v", err)
	}
	if err := s.AddHabit(h); err != nil {
		t.Fatalf("adding habit: %v", err)
	}
	return h
}
