package domain

import (
	"strings"
	"time"
)

type Habit struct {
	ID            string
	Title         string
	Cadence       Cadence
	MenuSlot      string
	Anchor        string
	SuccessMetric string
	LinkedGoalID  string

	Status             HabitStatus
	OriginSuggestionID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type HabitFields struct {
	Title         string
	Cadence       Cadence
	MenuSlot      string
	Anchor        string
	SuccessMetric string
	LinkedGoalID  string
}

// NewHabit validates fields and returns an active habit. Cadence defaults to
// daily.
func NewHabit(f HabitFields, now time.Time) (*Habit, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return nil, invalid("habit", "title", "must not be empty")
	}
	cadence := f.Cadence
	if cadence == "" {
		cadence = CadenceDaily
	}
	if !cadence.Valid() {
		return nil, invalid("habit", "cadence", "unknown value "+string(cadence))
	}
	return &Habit{
		Title:         title,
		Cadence:       cadence,
		MenuSlot:      strings.TrimSpace(f.MenuSlot),
		Anchor:        strings.TrimSpace(f.Anchor),
		SuccessMetric: strings.TrimSpace(f.SuccessMetric),
		LinkedGoalID:  strings.TrimSpace(f.LinkedGoalID),
		Status:        HabitActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// SetStatus changes the habit status. Retired habits stay retired.
func (h *Habit) SetStatus(s HabitStatus, now time.Time) error {
	if !s.Valid() {
		return invalid("habit", "status", "unknown value "+string(s))
	}
	if h.Status == s {
		return nil
	}
	if h.Status == HabitRetired {
		return &TransitionError{Entity: "habit", ID: h.ID, From: string(h.Status), To: string(s)}
	}
	h.Status = s
	h.UpdatedAt = now
	return nil
}
