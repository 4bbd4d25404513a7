package domain

import "time"

// ProposedFields are the structured fields extracted from a span.
type ProposedFields struct {
	Title     string
	Category  string
	DueHint   string
	Frequency Cadence // habit suggestions only
}

// Suggestion is a classified candidate extracted from a journal entry. It
// leaves pending exactly once; accepted and rejected are terminal.
type Suggestion struct {
	ID             string
	EntryID        string
	Span           string
	Offset         int
	Classification Classification
	Confidence     float64
	Proposed       ProposedFields
	Status         SuggestionStatus
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}

func (s *Suggestion) IsTerminal() bool {
	return s.Status == SuggestionAccepted || s.Status == SuggestionRejected
}

// Accept moves a pending suggestion to accepted.
func (s *Suggestion) Accept(now time.Time) error {
	if s.Status != SuggestionPending {
		return &TransitionError{Entity: "suggestion", ID: s.ID, From: string(s.Status), To: string(SuggestionAccepted)}
	}
	s.Status = SuggestionAccepted
	s.ResolvedAt = &now
	return nil
}

// Reject moves a pending suggestion to rejected. Rejecting an already
// rejected suggestion is a no-op; rejecting an accepted one is an error.
func (s *Suggestion) Reject(now time.Time) error {
	switch s.Status {
	case SuggestionRejected:
		return nil
	case SuggestionPending:
		s.Status = SuggestionRejected
		s.ResolvedAt = &now
		return nil
	default:
		return &TransitionError{Entity: "suggestion", ID: s.ID, From: string(s.Status), To: string(SuggestionRejected)}
	}
}

func (s *Suggestion) clone() *Suggestion {
	c := *s
	if s.ResolvedAt != nil {
		t := *s.ResolvedAt
		c.ResolvedAt = &t
	}
	return &c
}
