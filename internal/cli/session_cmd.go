package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/actionmenu/internal/cli/formatter"
	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Log and list work sessions",
	}

	cmd.AddCommand(
		newSessionLogCmd(a),
		newSessionListCmd(a),
	)

	return cmd
}

func newSessionLogCmd(a *App) *cobra.Command {
	var activity, category, goalRef, habitRef, started string
	var emotionBefore, emotionAfter, note string
	var minutes, flowBefore, flowAfter int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a finished work session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if goalRef != "" && habitRef != "" {
				return errors.New("a session links to a goal or a habit, not both")
			}

			duration := time.Duration(minutes) * time.Minute
			startedAt := a.now().UTC().Add(-duration)
			if started != "" {
				t, err := time.Parse(time.RFC3339, started)
				if err != nil {
					return &domain.ValidationError{Entity: "work session", Field: "started", Reason: "expected RFC 3339, e.g. 2025-06-15T09:00:00Z"}
				}
				startedAt = t.UTC()
			}

			s := &domain.WorkSession{
				Activity:      activity,
				Category:      normalizeCategory(category),
				StartedAt:     startedAt,
				Duration:      duration,
				FlowBefore:    flowBefore,
				FlowAfter:     flowAfter,
				EmotionBefore: emotionBefore,
				EmotionAfter:  emotionAfter,
				Note:          note,
			}
			switch {
			case goalRef != "":
				id, err := a.resolve(ctx, "goal", goalRef)
				if err != nil {
					return err
				}
				s.LinkedKind, s.LinkedID = domain.LinkGoal, id
			case habitRef != "":
				id, err := a.resolve(ctx, "habit", habitRef)
				if err != nil {
					return err
				}
				s.LinkedKind, s.LinkedID = domain.LinkHabit, id
			}

			if err := a.logSessionUseCase().LogSession(ctx, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s session %s (%s)\n",
				formatter.FormatDuration(duration), formatter.Bold(activity), s.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&activity, "activity", "", "What you worked on")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Session duration in minutes")
	cmd.Flags().StringVar(&started, "started", "", "Start time (RFC 3339, default now minus --minutes)")
	cmd.Flags().StringVar(&category, "category", "", "Life area category")
	cmd.Flags().StringVar(&goalRef, "goal", "", "Goal id (or prefix) the session served")
	cmd.Flags().StringVar(&habitRef, "habit", "", "Habit id (or prefix) the session served")
	cmd.Flags().IntVar(&flowBefore, "flow-before", 0, "Flow rating before, 1-5")
	cmd.Flags().IntVar(&flowAfter, "flow-after", 0, "Flow rating after, 1-5")
	cmd.Flags().StringVar(&emotionBefore, "emotion-before", "", "How you felt going in")
	cmd.Flags().StringVar(&emotionAfter, "emotion-after", "", "How you felt coming out")
	cmd.Flags().StringVar(&note, "note", "", "Session note")
	_ = cmd.MarkFlagRequired("activity")
	_ = cmd.MarkFlagRequired("minutes")

	return cmd
}

func newSessionListCmd(a *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent work sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := a.Sessions.ListRecent(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessions(sessions, a.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of recent days to show (0 for all)")

	return cmd
}
