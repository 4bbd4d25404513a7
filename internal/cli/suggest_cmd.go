package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/cli/formatter"
	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/spf13/cobra"
)

// newSuggestCmd previews extraction without storing anything.
func newSuggestCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <text...>",
		Short: "Preview the suggestions a piece of text would produce",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates := a.Suggestions.ExtractSuggestions(cmd.Context(), strings.Join(args, " "))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCandidates(candidates))
			return nil
		},
	}
}

func newSuggestionCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "suggestion",
		Aliases: []string{"sg"},
		Short:   "Review, accept and reject extracted suggestions",
	}

	cmd.AddCommand(
		newSuggestionListCmd(a),
		newSuggestionShowCmd(a),
		newSuggestionAcceptCmd(a),
		newSuggestionRejectCmd(a),
		newSuggestionReviewCmd(a),
	)

	return cmd
}

func newSuggestionListCmd(a *App) *cobra.Command {
	var entry, status, class string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List suggestions (pending only unless --all or --status)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			filter := app.SuggestionFilter{
				Status:         domain.SuggestionStatus(status),
				Classification: domain.Classification(class),
			}
			if filter.Status == "" && !all {
				filter.Status = domain.SuggestionPending
			}
			if filter.Status != "" && !filter.Status.Valid() {
				return &domain.ValidationError{Entity: "filter", Field: "status", Reason: "unknown value " + status}
			}
			if filter.Classification != "" && !filter.Classification.Valid() {
				return &domain.ValidationError{Entity: "filter", Field: "type", Reason: "unknown value " + class}
			}
			if entry != "" {
				id, err := a.resolve(ctx, "journal entry", entry)
				if err != nil {
					return err
				}
				filter.EntryID = id
			}

			list, err := a.Suggestions.List(ctx, filter)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSuggestions("Suggestions", list))
			return nil
		},
	}

	cmd.Flags().StringVar(&entry, "entry", "", "Only suggestions from this journal entry")
	cmd.Flags().StringVar(&status, "status", "", "pending|accepted|rejected")
	cmd.Flags().StringVar(&class, "type", "", "goal|habit|quick_action")
	cmd.Flags().BoolVar(&all, "all", false, "Include resolved suggestions")

	return cmd
}

func newSuggestionShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <suggestion-id>",
		Short: "Show one suggestion and the text it came from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := a.resolve(ctx, "suggestion", args[0])
			if err != nil {
				return err
			}
			sg, err := a.Suggestions.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSuggestionDetail(sg))
			return nil
		},
	}
}

func newSuggestionAcceptCmd(a *App) *cobra.Command {
	fields := newFieldFlags()

	cmd := &cobra.Command{
		Use:   "accept <suggestion-id>",
		Short: "Accept a suggestion, creating its goal, habit or quick action",
		Long: "Accept a suggestion, creating its goal, habit or quick action.\n\n" +
			"Flags override the proposed values. Flags that do not apply to the\n" +
			"suggestion's type are rejected.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := a.resolve(ctx, "suggestion", args[0])
			if err != nil {
				return err
			}
			linked := ""
			if fields.linkedGoal != "" {
				if linked, err = a.resolve(ctx, "goal", fields.linkedGoal); err != nil {
					return err
				}
			}
			res, err := a.promoteSuggestionUseCase().PromoteSuggestion(ctx, app.PromoteRequest{
				SuggestionID: id,
				Decision:     app.DecisionAccept,
				Overrides:    fields.overrides(linked),
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPromoteResult(res))
			return nil
		},
	}

	fields.addTo(cmd, fields.common, fields.goal, fields.habit, fields.action)

	return cmd
}

func newSuggestionRejectCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reject <suggestion-id>...",
		Short: "Reject one or more suggestions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			for _, ref := range args {
				id, err := a.resolve(ctx, "suggestion", ref)
				if err != nil {
					return err
				}
				res, err := a.promoteSuggestionUseCase().PromoteSuggestion(ctx, app.PromoteRequest{
					SuggestionID: id,
					Decision:     app.DecisionReject,
				})
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPromoteResult(res))
			}
			return nil
		},
	}
}
