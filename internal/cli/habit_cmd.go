package cli

import (
	"fmt"

	"github.com/alexanderramin/actionmenu/internal/cli/formatter"
	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/spf13/cobra"
)

func newHabitCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage habits",
	}

	cmd.AddCommand(
		newHabitAddCmd(a),
		newHabitListCmd(a),
		newHabitStatusCmd(a, "pause", domain.HabitPaused, "Pause a habit"),
		newHabitStatusCmd(a, "resume", domain.HabitActive, "Resume a paused habit"),
		newHabitStatusCmd(a, "retire", domain.HabitRetired, "Retire a habit for good"),
	)

	return cmd
}

func newHabitAddCmd(a *App) *cobra.Command {
	fields := newFieldFlags()

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a habit directly",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			linked := ""
			if fields.linkedGoal != "" {
				var err error
				if linked, err = a.resolve(ctx, "goal", fields.linkedGoal); err != nil {
					return err
				}
			}
			h, err := a.Entities.CreateHabit(ctx, fields.habitFields(linked))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created habit %s (%s, %s)\n", formatter.Bold(h.Title), h.Cadence, h.ID)
			return nil
		},
	}

	fields.addTo(cmd, fields.common, fields.habit)
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newHabitListCmd(a *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active and paused habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			habits, err := a.Entities.ListHabits(ctx, all)
			if err != nil {
				return err
			}
			goals, err := a.Entities.ListGoals(ctx, true)
			if err != nil {
				return err
			}
			titles := make(map[string]string, len(goals))
			for _, g := range goals {
				titles[g.ID] = g.Title
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHabits(habits, titles))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include retired habits")

	return cmd
}

func newHabitStatusCmd(a *App, use string, status domain.HabitStatus, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <habit-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := a.resolve(ctx, "habit", args[0])
			if err != nil {
				return err
			}
			h, err := a.Entities.SetHabitStatus(ctx, id, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Habit %s is now %s\n", formatter.Bold(h.Title), formatter.HabitStatusPill(h.Status))
			return nil
		},
	}
}
