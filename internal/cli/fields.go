package cli

import (
	"strings"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// fieldFlags binds the user-editable entity attributes. The same flag sets
// back entity creation and promotion overrides, so a flag means the same
// thing on "goal add" and "suggestion accept".
type fieldFlags struct {
	common *pflag.FlagSet
	goal   *pflag.FlagSet
	habit  *pflag.FlagSet
	action *pflag.FlagSet

	title, category string

	horizon, specific, measurable, achievable, relevant, timeBound string

	cadence, menuSlot, anchor, successMetric, linkedGoal string

	stage string
}

func newFieldFlags() *fieldFlags {
	f := &fieldFlags{
		common: pflag.NewFlagSet("common", pflag.ContinueOnError),
		goal:   pflag.NewFlagSet("goal", pflag.ContinueOnError),
		habit:  pflag.NewFlagSet("habit", pflag.ContinueOnError),
		action: pflag.NewFlagSet("action", pflag.ContinueOnError),
	}
	f.common.StringVar(&f.title, "title", "", "Title")
	f.common.StringVar(&f.category, "category", "", "Life area category")

	f.goal.StringVar(&f.horizon, "horizon", "", "Goal horizon: today|this_week|this_month|long_term")
	f.goal.StringVar(&f.specific, "specific", "", "What exactly will be achieved")
	f.goal.StringVar(&f.measurable, "measurable", "", "How progress is measured")
	f.goal.StringVar(&f.achievable, "achievable", "", "Why it is within reach")
	f.goal.StringVar(&f.relevant, "relevant", "", "Why it matters")
	f.goal.StringVar(&f.timeBound, "time-bound", "", "Deadline or time frame")

	f.habit.StringVar(&f.cadence, "cadence", "", "Habit cadence: daily|weekly|weekdays")
	f.habit.StringVar(&f.menuSlot, "menu-slot", "", "Action menu slot")
	f.habit.StringVar(&f.anchor, "anchor", "", "Existing routine the habit attaches to")
	f.habit.StringVar(&f.successMetric, "success-metric", "", "What counts as done")
	f.habit.StringVar(&f.linkedGoal, "goal", "", "Goal id (or prefix) the habit supports")

	f.action.StringVar(&f.stage, "stage", "", "Quick action stage: inbox|today|later")
	return f
}

// addTo registers the given sets on cmd.
func (f *fieldFlags) addTo(cmd *cobra.Command, sets ...*pflag.FlagSet) {
	for _, fs := range sets {
		cmd.Flags().AddFlagSet(fs)
	}
}

func (f *fieldFlags) goalFields() domain.GoalFields {
	return domain.GoalFields{
		Title:      f.title,
		Category:   normalizeCategory(f.category),
		Specific:   f.specific,
		Measurable: f.measurable,
		Achievable: f.achievable,
		Relevant:   f.relevant,
		TimeBound:  f.timeBound,
		Horizon:    domain.Horizon(f.horizon),
	}
}

func (f *fieldFlags) habitFields(linkedGoalID string) domain.HabitFields {
	return domain.HabitFields{
		Title:         f.title,
		Cadence:       domain.Cadence(f.cadence),
		MenuSlot:      f.menuSlot,
		Anchor:        f.anchor,
		SuccessMetric: f.successMetric,
		LinkedGoalID:  linkedGoalID,
	}
}

// overrides returns only the flags the user actually set, so an empty
// --anchor "" still clears the proposed value.
func (f *fieldFlags) overrides(linkedGoalID string) app.Overrides {
	var o app.Overrides
	if f.common.Changed("title") {
		o.Title = &f.title
	}
	if f.common.Changed("category") {
		c := normalizeCategory(f.category)
		o.Category = &c
	}
	if f.goal.Changed("horizon") {
		h := domain.Horizon(f.horizon)
		o.Horizon = &h
	}
	setIfChanged(f.goal, "specific", &f.specific, &o.Specific)
	setIfChanged(f.goal, "measurable", &f.measurable, &o.Measurable)
	setIfChanged(f.goal, "achievable", &f.achievable, &o.Achievable)
	setIfChanged(f.goal, "relevant", &f.relevant, &o.Relevant)
	setIfChanged(f.goal, "time-bound", &f.timeBound, &o.TimeBound)

	if f.habit.Changed("cadence") {
		c := domain.Cadence(f.cadence)
		o.Cadence = &c
	}
	setIfChanged(f.habit, "menu-slot", &f.menuSlot, &o.MenuSlot)
	setIfChanged(f.habit, "anchor", &f.anchor, &o.Anchor)
	setIfChanged(f.habit, "success-metric", &f.successMetric, &o.SuccessMetric)
	if f.habit.Changed("goal") {
		o.LinkedGoalID = &linkedGoalID
	}

	if f.action.Changed("stage") {
		s := domain.Stage(f.stage)
		o.Stage = &s
	}
	return o
}

func setIfChanged(fs *pflag.FlagSet, name string, v *string, dst **string) {
	if fs.Changed(name) {
		*dst = v
	}
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
