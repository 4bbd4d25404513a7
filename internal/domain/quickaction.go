package domain

import (
	"strings"
	"time"
)

type QuickAction struct {
	ID                 string
	Title              string
	Stage              Stage
	OriginSuggestionID string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewQuickAction returns a quick action in the given stage (inbox when empty).
func NewQuickAction(title string, stage Stage, now time.Time) (*QuickAction, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalid("quick action", "title", "must not be empty")
	}
	if stage == "" {
		stage = StageInbox
	}
	if !stage.Valid() {
		return nil, invalid("quick action", "stage", "unknown value "+string(stage))
	}
	return &QuickAction{
		Title:     title,
		Stage:     stage,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanMoveTo reports whether a stage change is allowed: forward only, with
// archived -> inbox as the single way back.
func CanMoveTo(from, to Stage) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}
	if from == StageArchived && to == StageInbox {
		return true
	}
	return stageRank[to] > stageRank[from]
}

// MoveTo changes the stage or returns a TransitionError, leaving the action
// untouched.
func (q *QuickAction) MoveTo(to Stage, now time.Time) error {
	if !to.Valid() {
		return invalid("quick action", "stage", "unknown value "+string(to))
	}
	if !CanMoveTo(q.Stage, to) {
		return &TransitionError{Entity: "quick action", ID: q.ID, From: string(q.Stage), To: string(to)}
	}
	q.Stage = to
	q.UpdatedAt = now
	return nil
}
