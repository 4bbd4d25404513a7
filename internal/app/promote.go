package app

import "github.com/alexanderramin/actionmenu/internal/domain"

// Decision is the reviewer's verdict on a pending suggestion.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

func (d Decision) Valid() bool {
	return d == DecisionAccept || d == DecisionReject
}

// Overrides carries reviewer edits applied on accept. Nil fields keep the
// suggestion's proposed value. Fields that do not exist on the target
// entity type are rejected, not ignored.
type Overrides struct {
	Title    *string
	Category *string

	// goal
	Horizon    *domain.Horizon
	Specific   *string
	Measurable *string
	Achievable *string
	Relevant   *string
	TimeBound  *string

	// habit
	Cadence       *domain.Cadence
	MenuSlot      *string
	Anchor        *string
	SuccessMetric *string
	LinkedGoalID  *string

	// quick action
	Stage *domain.Stage
}

// GoalOnly lists the goal-specific fields that are set.
func (o Overrides) GoalOnly() []string {
	return setFields(map[string]bool{
		"horizon":    o.Horizon != nil,
		"specific":   o.Specific != nil,
		"measurable": o.Measurable != nil,
		"achievable": o.Achievable != nil,
		"relevant":   o.Relevant != nil,
		"time_bound": o.TimeBound != nil,
	})
}

// HabitOnly lists the habit-specific fields that are set.
func (o Overrides) HabitOnly() []string {
	return setFields(map[string]bool{
		"cadence":        o.Cadence != nil,
		"menu_slot":      o.MenuSlot != nil,
		"anchor":         o.Anchor != nil,
		"success_metric": o.SuccessMetric != nil,
		"linked_goal":    o.LinkedGoalID != nil,
	})
}

// QuickActionOnly lists the quick-action-specific fields that are set.
func (o Overrides) QuickActionOnly() []string {
	return setFields(map[string]bool{
		"stage": o.Stage != nil,
	})
}

// IsZero reports whether no override is set.
func (o Overrides) IsZero() bool {
	return o.Title == nil && o.Category == nil &&
		len(o.GoalOnly()) == 0 && len(o.HabitOnly()) == 0 && len(o.QuickActionOnly()) == 0
}

type PromoteRequest struct {
	SuggestionID string
	Decision     Decision
	Overrides    Overrides
}

// PromoteResult is the resolved suggestion plus, on accept, the one entity
// created from it. Exactly one of Goal, Habit, QuickAction is set when
// Created is true.
type PromoteResult struct {
	Suggestion  *domain.Suggestion
	Created     bool
	Goal        *domain.Goal
	Habit       *domain.Habit
	QuickAction *domain.QuickAction
}

// EntityID returns the id of the created entity, or "".
func (r *PromoteResult) EntityID() string {
	switch {
	case r.Goal != nil:
		return r.Goal.ID
	case r.Habit != nil:
		return r.Habit.ID
	case r.QuickAction != nil:
		return r.QuickAction.ID
	}
	return ""
}
