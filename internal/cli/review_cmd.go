package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/cli/formatter"
	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

type reviewChoice string

const (
	choiceAccept reviewChoice = "accept"
	choiceReject reviewChoice = "reject"
	choiceSkip   reviewChoice = "skip"
	choiceQuit   reviewChoice = "quit"
)

type reviewAnswer struct {
	Choice reviewChoice
	Title  string
}

// reviewPrompt asks what to do with one pending suggestion.
type reviewPrompt func(ctx context.Context, sg *domain.Suggestion, pos, total int) (reviewAnswer, error)

type reviewTally struct {
	Accepted, Rejected, Skipped int
}

func newSuggestionReviewCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Walk through pending suggestions one at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.interactive() {
				return errors.New("review needs an interactive terminal; use \"suggestion accept\" or \"suggestion reject\"")
			}
			ctx := cmd.Context()
			queue, err := a.Suggestions.ReviewQueue(ctx)
			if err != nil {
				return err
			}
			if len(queue) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to review.")
				return nil
			}
			tally, err := a.runReview(ctx, cmd.OutOrStdout(), queue, huhReviewPrompt(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d accepted, %d rejected, %d skipped\n",
				tally.Accepted, tally.Rejected, tally.Skipped)
			return nil
		},
	}
}

// runReview applies one prompt answer per suggestion until the queue ends
// or the user quits. A suggestion that fails to promote is reported and
// skipped.
func (a *App) runReview(ctx context.Context, out io.Writer, queue []*domain.Suggestion, ask reviewPrompt) (reviewTally, error) {
	var tally reviewTally
	promote := a.promoteSuggestionUseCase()

	for i, sg := range queue {
		ans, err := ask(ctx, sg, i+1, len(queue))
		if errors.Is(err, huh.ErrUserAborted) {
			return tally, nil
		}
		if err != nil {
			return tally, err
		}

		req := app.PromoteRequest{SuggestionID: sg.ID}
		switch ans.Choice {
		case choiceQuit:
			tally.Skipped += len(queue) - i
			return tally, nil
		case choiceSkip:
			tally.Skipped++
			continue
		case choiceReject:
			req.Decision = app.DecisionReject
		case choiceAccept:
			req.Decision = app.DecisionAccept
			if title := strings.TrimSpace(ans.Title); title != "" && title != sg.Proposed.Title {
				req.Overrides.Title = &title
			}
		default:
			return tally, fmt.Errorf("unknown review choice %q", ans.Choice)
		}

		res, err := promote.PromoteSuggestion(ctx, req)
		if err != nil {
			fmt.Fprintf(out, "%s %s: %v\n", formatter.StyleRed.Render("✖"), formatter.TruncID(sg.ID), err)
			tally.Skipped++
			continue
		}
		fmt.Fprint(out, formatter.FormatPromoteResult(res))
		if req.Decision == app.DecisionAccept {
			tally.Accepted++
		} else {
			tally.Rejected++
		}
	}
	return tally, nil
}

func huhReviewPrompt(cmd *cobra.Command) reviewPrompt {
	return func(ctx context.Context, sg *domain.Suggestion, pos, total int) (reviewAnswer, error) {
		ans := reviewAnswer{Choice: choiceAccept, Title: sg.Proposed.Title}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewNote().
					Title(fmt.Sprintf("%d/%d  %s", pos, total, sg.Classification)).
					Description(formatter.FormatSuggestionDetail(sg)),
				huh.NewSelect[reviewChoice]().
					Title("Decision").
					Options(
						huh.NewOption("Accept", choiceAccept),
						huh.NewOption("Reject", choiceReject),
						huh.NewOption("Skip for now", choiceSkip),
						huh.NewOption("Stop reviewing", choiceQuit),
					).
					Value(&ans.Choice),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Title").
					Value(&ans.Title),
			).WithHideFunc(func() bool { return ans.Choice != choiceAccept }),
		).WithTheme(huhTheme()).
			WithInput(cmd.InOrStdin()).
			WithOutput(cmd.OutOrStdout())

		err := form.RunWithContext(ctx)
		return ans, err
	}
}
