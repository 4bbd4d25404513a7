package domain

import (
	"strings"
	"time"
)

// Goal is a SMART goal. OriginSuggestionID is a back-reference only; the goal
// outlives the suggestion that produced it.
type Goal struct {
	ID       string
	Title    string
	Category string

	// SMART attributes
	Specific   string
	Measurable string
	Achievable string
	Relevant   string
	TimeBound  string

	Horizon            Horizon
	Status             GoalStatus
	OriginSuggestionID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GoalFields carries the caller-supplied attributes for NewGoal.
type GoalFields struct {
	Title      string
	Category   string
	Specific   string
	Measurable string
	Achievable string
	Relevant   string
	TimeBound  string
	Horizon    Horizon
}

// NewGoal validates fields and returns an active goal without an ID. The
// State assigns the ID when the goal is added.
func NewGoal(f GoalFields, now time.Time) (*Goal, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return nil, invalid("goal", "title", "must not be empty")
	}
	horizon := f.Horizon
	if horizon == "" {
		horizon = HorizonLongTerm
	}
	if !horizon.Valid() {
		return nil, invalid("goal", "horizon", "unknown value "+string(horizon))
	}
	return &Goal{
		Title:      title,
		Category:   CoalesceStr(strings.TrimSpace(f.Category), DefaultCategory),
		Specific:   strings.TrimSpace(f.Specific),
		Measurable: strings.TrimSpace(f.Measurable),
		Achievable: strings.TrimSpace(f.Achievable),
		Relevant:   strings.TrimSpace(f.Relevant),
		TimeBound:  strings.TrimSpace(f.TimeBound),
		Horizon:    horizon,
		Status:     GoalActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// SetStatus moves the goal between active, completed and abandoned. A
// finished goal may be re-activated; setting the current status is a no-op.
func (g *Goal) SetStatus(s GoalStatus, now time.Time) error {
	if !s.Valid() {
		return invalid("goal", "status", "unknown value "+string(s))
	}
	if g.Status == s {
		return nil
	}
	if g.Status != GoalActive && s != GoalActive {
		return &TransitionError{Entity: "goal", ID: g.ID, From: string(g.Status), To: string(s)}
	}
	g.Status = s
	g.UpdatedAt = now
	return nil
}
