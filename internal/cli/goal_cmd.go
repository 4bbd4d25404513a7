package cli

import (
	"fmt"

	"github.com/alexanderramin/actionmenu/internal/cli/formatter"
	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/spf13/cobra"
)

func newGoalCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage SMART goals",
	}

	cmd.AddCommand(
		newGoalAddCmd(a),
		newGoalListCmd(a),
		newGoalStatusCmd(a, "complete", domain.GoalCompleted, "Mark a goal completed"),
		newGoalStatusCmd(a, "abandon", domain.GoalAbandoned, "Abandon a goal"),
		newGoalStatusCmd(a, "reopen", domain.GoalActive, "Make a finished goal active again"),
	)

	return cmd
}

func newGoalAddCmd(a *App) *cobra.Command {
	fields := newFieldFlags()

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a goal directly",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.Entities.CreateGoal(cmd.Context(), fields.goalFields())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created goal %s (%s)\n", formatter.Bold(g.Title), g.ID)
			return nil
		},
	}

	fields.addTo(cmd, fields.common, fields.goal)
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newGoalListCmd(a *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			goals, err := a.Entities.ListGoals(cmd.Context(), all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGoals(goals))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed and abandoned goals")

	return cmd
}

func newGoalStatusCmd(a *App, use string, status domain.GoalStatus, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <goal-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := a.resolve(ctx, "goal", args[0])
			if err != nil {
				return err
			}
			g, err := a.Entities.SetGoalStatus(ctx, id, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal %s is now %s\n", formatter.Bold(g.Title), formatter.GoalStatusPill(g.Status))
			return nil
		},
	}
}
