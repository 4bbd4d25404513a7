package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/actionmenu/internal/cli/formatter"
	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/spf13/cobra"
)

func newActionCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "action",
		Aliases: []string{"qa"},
		Short:   "Capture and move quick actions",
	}

	cmd.AddCommand(
		newActionAddCmd(a),
		newActionListCmd(a),
		newActionMoveCmd(a),
	)

	return cmd
}

func newActionAddCmd(a *App) *cobra.Command {
	var stage string

	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Capture a quick action",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := a.Entities.CaptureQuickAction(cmd.Context(), strings.Join(args, " "), domain.Stage(stage))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Captured %s in %s (%s)\n", formatter.Bold(q.Title), q.Stage, q.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "stage", "", "inbox|today|later (default inbox)")

	return cmd
}

func newActionListCmd(a *App) *cobra.Command {
	var stage string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quick actions that are not archived",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := domain.Stage(stage)
			if s != "" && !s.Valid() {
				return &domain.ValidationError{Entity: "filter", Field: "stage", Reason: "unknown value " + stage}
			}
			actions, err := a.Entities.ListQuickActions(cmd.Context(), s)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuickActions(actions, a.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "stage", "", "Only this stage (archived is listed only when asked for)")

	return cmd
}

func newActionMoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <action-id> <stage>",
		Short: "Move a quick action to a later stage, or an archived one back to inbox",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := a.resolve(ctx, "quick action", args[0])
			if err != nil {
				return err
			}
			q, err := a.Entities.MoveQuickAction(ctx, id, domain.Stage(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", formatter.Bold(q.Title), q.Stage)
			return nil
		},
	}
}
