package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStateCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect and maintain the stored state",
	}

	cmd.AddCommand(
		newStateReportCmd(a, "check", "Verify integrity without changing anything", a.stateCheck),
		newStateReportCmd(a, "repair", "Drop dangling references and rewrite the state", a.stateRepair),
		newStateReportCmd(a, "migrate", "Rewrite an older document at the current schema version", a.stateMigrate),
		newStateHistoryCmd(a),
	)

	return cmd
}

func (a *App) stateCheck(cmd *cobra.Command) (*app.StateReport, error) {
	return a.State.Check(cmd.Context())
}

func (a *App) stateRepair(cmd *cobra.Command) (*app.StateReport, error) {
	return a.State.Repair(cmd.Context())
}

func (a *App) stateMigrate(cmd *cobra.Command) (*app.StateReport, error) {
	return a.State.Migrate(cmd.Context())
}

func newStateReportCmd(a *App, use, short string, run func(*cobra.Command) (*app.StateReport, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := run(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStateReport(use, report))
			if use == "check" && len(report.Problems) > 0 {
				return fmt.Errorf("%d integrity problem(s); run \"actionmenu state repair\"", len(report.Problems))
			}
			return nil
		},
	}
}

func newStateHistoryCmd(a *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List retained state snapshots (sqlite backend)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.History == nil {
				return errors.New("state history needs the sqlite store backend")
			}
			snaps, err := a.History.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No snapshots saved yet.")
				return nil
			}
			headers := []string{"#", "SAVED", "SCHEMA", "SIZE"}
			rows := make([][]string, 0, len(snaps))
			for _, s := range snaps {
				rows = append(rows, []string{
					strconv.FormatInt(s.ID, 10),
					formatter.HumanTimestampFrom(s.SavedAt, a.now()),
					fmt.Sprintf("v%d", s.SchemaVersion),
					fmt.Sprintf("%d B", s.SizeBytes),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Snapshots", formatter.RenderTable(headers, rows))+"\n")
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum snapshots to list (0 for all)")

	return cmd
}
