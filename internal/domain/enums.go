package domain

// Classification selects which entity a suggestion may be promoted into.
type Classification string

const (
	ClassGoal        Classification = "goal"
	ClassHabit       Classification = "habit"
	ClassQuickAction Classification = "quick_action"
)

// Classifications is the fixed priority order used to break scoring ties.
var Classifications = []Classification{ClassGoal, ClassHabit, ClassQuickAction}

func (c Classification) Valid() bool {
	switch c {
	case ClassGoal, ClassHabit, ClassQuickAction:
		return true
	}
	return false
}

type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionRejected SuggestionStatus = "rejected"
)

func (s SuggestionStatus) Valid() bool {
	switch s {
	case SuggestionPending, SuggestionAccepted, SuggestionRejected:
		return true
	}
	return false
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalAbandoned GoalStatus = "abandoned"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalAbandoned:
		return true
	}
	return false
}

type HabitStatus string

const (
	HabitActive  HabitStatus = "active"
	HabitPaused  HabitStatus = "paused"
	HabitRetired HabitStatus = "retired"
)

func (s HabitStatus) Valid() bool {
	switch s {
	case HabitActive, HabitPaused, HabitRetired:
		return true
	}
	return false
}

// Stage is a quick action's position in the capture workflow.
type Stage string

const (
	StageInbox    Stage = "inbox"
	StageToday    Stage = "today"
	StageLater    Stage = "later"
	StageArchived Stage = "archived"
)

// stageRank orders stages for the forward-only rule.
var stageRank = map[Stage]int{
	StageInbox:    0,
	StageToday:    1,
	StageLater:    2,
	StageArchived: 3,
}

func (s Stage) Valid() bool {
	_, ok := stageRank[s]
	return ok
}

type Cadence string

const (
	CadenceDaily    Cadence = "daily"
	CadenceWeekly   Cadence = "weekly"
	CadenceWeekdays Cadence = "weekdays"
)

func (c Cadence) Valid() bool {
	switch c {
	case CadenceDaily, CadenceWeekly, CadenceWeekdays:
		return true
	}
	return false
}

// Horizon is the time frame a goal is meant to land in.
type Horizon string

const (
	HorizonToday     Horizon = "today"
	HorizonThisWeek  Horizon = "this_week"
	HorizonThisMonth Horizon = "this_month"
	HorizonLongTerm  Horizon = "long_term"
)

func (h Horizon) Valid() bool {
	switch h {
	case HorizonToday, HorizonThisWeek, HorizonThisMonth, HorizonLongTerm:
		return true
	}
	return false
}

// LinkKind names the entity type a work session is attached to.
type LinkKind string

const (
	LinkNone  LinkKind = ""
	LinkGoal  LinkKind = "goal"
	LinkHabit LinkKind = "habit"
)

// DefaultCategory is used when no vocabulary keyword matches.
const DefaultCategory = "uncategorized"
