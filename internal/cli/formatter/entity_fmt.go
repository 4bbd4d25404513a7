package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

func GoalStatusPill(s domain.GoalStatus) string {
	switch s {
	case domain.GoalActive:
		return StyleGreen.Render("● active")
	case domain.GoalCompleted:
		return StyleDim.Render("✔ completed")
	case domain.GoalAbandoned:
		return StyleDim.Render("✖ abandoned")
	default:
		return StyleDim.Render(string(s))
	}
}

func HabitStatusPill(s domain.HabitStatus) string {
	switch s {
	case domain.HabitActive:
		return StyleGreen.Render("● active")
	case domain.HabitPaused:
		return StyleYellow.Render("○ paused")
	case domain.HabitRetired:
		return StyleDim.Render("✖ retired")
	default:
		return StyleDim.Render(string(s))
	}
}

func FormatGoals(goals []*domain.Goal) string {
	if len(goals) == 0 {
		return Dim("No goals.") + "\n"
	}
	headers := []string{"ID", "TITLE", "CATEGORY", "HORIZON", "MEASURABLE", "BY", "STATUS"}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			TruncID(g.ID),
			Truncate(g.Title, 40),
			g.Category,
			strings.ReplaceAll(string(g.Horizon), "_", " "),
			OrDash(Truncate(g.Measurable, 24)),
			OrDash(g.TimeBound),
			GoalStatusPill(g.Status),
		})
	}
	return RenderBox("Goals", RenderTable(headers, rows)) + "\n"
}

func FormatHabits(habits []*domain.Habit, goalTitles map[string]string) string {
	if len(habits) == 0 {
		return Dim("No habits.") + "\n"
	}
	headers := []string{"ID", "TITLE", "CADENCE", "ANCHOR", "GOAL", "STATUS"}
	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		goal := ""
		if h.LinkedGoalID != "" {
			goal = goalTitles[h.LinkedGoalID]
			if goal == "" {
				goal = shortID(h.LinkedGoalID)
			}
		}
		rows = append(rows, []string{
			TruncID(h.ID),
			Truncate(h.Title, 36),
			string(h.Cadence),
			OrDash(Truncate(h.Anchor, 24)),
			OrDash(Truncate(goal, 24)),
			HabitStatusPill(h.Status),
		})
	}
	return RenderBox("Habits", RenderTable(headers, rows)) + "\n"
}

func FormatQuickActions(actions []*domain.QuickAction, now time.Time) string {
	if len(actions) == 0 {
		return Dim("No quick actions.") + "\n"
	}
	headers := []string{"ID", "STAGE", "TITLE", "ADDED"}
	rows := make([][]string, 0, len(actions))
	for _, q := range actions {
		rows = append(rows, []string{
			TruncID(q.ID),
			stageLabel(q.Stage),
			Truncate(q.Title, 50),
			HumanDateFrom(q.CreatedAt, now),
		})
	}
	return RenderBox("Quick actions", RenderTable(headers, rows)) + "\n"
}

func stageLabel(s domain.Stage) string {
	switch s {
	case domain.StageToday:
		return StyleGreen.Render(string(s))
	case domain.StageInbox:
		return StyleYellow.Render(string(s))
	default:
		return Dim(string(s))
	}
}

// FormatSessions renders sessions with their total time underneath.
func FormatSessions(sessions []*domain.WorkSession, now time.Time) string {
	if len(sessions) == 0 {
		return Dim("No sessions found.") + "\n"
	}
	headers := []string{"ID", "STARTED", "ACTIVITY", "DURATION", "FLOW", "NOTE"}
	rows := make([][]string, 0, len(sessions))
	var total time.Duration
	for _, s := range sessions {
		total += s.Duration
		rows = append(rows, []string{
			TruncID(s.ID),
			HumanTimestampFrom(s.StartedAt, now),
			Truncate(s.Activity, 30),
			FormatDuration(s.Duration),
			flow(s),
			Dim(Truncate(s.Note, 40)),
		})
	}
	body := RenderTable(headers, rows) + "\n" + fmt.Sprintf("%s %s", Dim("total:"), Bold(FormatDuration(total)))
	return RenderBox("Sessions", body) + "\n"
}

func flow(s *domain.WorkSession) string {
	if s.FlowBefore == 0 && s.FlowAfter == 0 {
		return Dim("--")
	}
	return fmt.Sprintf("%d→%d", s.FlowBefore, s.FlowAfter)
}

func FormatReflections(r domain.Reflections) string {
	if r.IsZero() {
		return Dim("No reflections recorded.") + "\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", Bold("Values"), OrDash(r.Values))
	fmt.Fprintf(&b, "%s\n%s\n\n", Bold("Milestones"), OrDash(r.Milestones))
	fmt.Fprintf(&b, "%s\n%s", Bold("Energy"), OrDash(r.Energy))
	return RenderBox("Reflections", b.String()) + "\n"
}
