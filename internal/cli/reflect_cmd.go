package cli

import (
	"fmt"

	"github.com/alexanderramin/actionmenu/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReflectCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reflect",
		Short: "Show or update values, milestones and energy notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.Reflections.Reflections(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReflections(r))
			return nil
		},
	}

	cmd.AddCommand(newReflectSetCmd(a))
	return cmd
}

func newReflectSetCmd(a *App) *cobra.Command {
	var values, milestones, energy string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update reflections; fields not given keep their current text",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := a.Reflections.Reflections(ctx)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("values") {
				r.Values = values
			}
			if flags.Changed("milestones") {
				r.Milestones = milestones
			}
			if flags.Changed("energy") {
				r.Energy = energy
			}
			if err := a.Reflections.SetReflections(ctx, r); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reflections updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&values, "values", "", "What matters to you")
	cmd.Flags().StringVar(&milestones, "milestones", "", "Milestones you are working towards")
	cmd.Flags().StringVar(&energy, "energy", "", "When and how your energy peaks")

	return cmd
}
