package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/cli/formatter"
	"github.com/alexanderramin/actionmenu/internal/export"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newJournalCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and browse journal entries",
	}

	cmd.AddCommand(
		newJournalAddCmd(a),
		newJournalListCmd(a),
		newJournalShowCmd(a),
		newJournalExportCmd(a),
	)

	return cmd
}

func newJournalAddCmd(a *App) *cobra.Command {
	var mood string
	var noExtract bool

	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Record an entry and extract suggestions from it",
		Long: "Record an entry and extract suggestions from it.\n\n" +
			"Without arguments the entry is read from a form on a terminal, or from stdin otherwise.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			body := strings.Join(args, " ")
			if body == "" {
				var err error
				body, mood, err = a.readJournalBody(ctx, cmd, mood)
				if err != nil {
					return err
				}
			}

			res, err := a.recordJournalUseCase().RecordJournal(ctx, app.RecordJournalRequest{
				Body:           body,
				Mood:           mood,
				SkipExtraction: noExtract,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recorded entry %s", res.Entry.ID)
			if len(res.Entry.Tags) > 0 {
				fmt.Fprintf(out, " %s", formatter.Dim("["+strings.Join(res.Entry.Tags, ", ")+"]"))
			}
			fmt.Fprintln(out)
			if !noExtract {
				fmt.Fprint(out, formatter.FormatSuggestions("Suggestions", res.Suggestions))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mood, "mood", "", "How you feel right now")
	cmd.Flags().BoolVar(&noExtract, "no-extract", false, "Store the entry without extracting suggestions")

	return cmd
}

// readJournalBody collects an entry from a form on a terminal, or from
// stdin when input is piped.
func (a *App) readJournalBody(ctx context.Context, cmd *cobra.Command, mood string) (string, string, error) {
	if !a.interactive() {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading entry from stdin: %w", err)
		}
		return string(data), mood, nil
	}

	var body string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Journal").
				Description("Write freely. Goals, habits and to-dos are picked out afterwards.").
				CharLimit(20000).
				Value(&body),
			huh.NewInput().
				Title("Mood").
				Placeholder("optional").
				Value(&mood),
		),
	).WithTheme(huhTheme()).
		WithInput(cmd.InOrStdin()).
		WithOutput(cmd.OutOrStdout())
	if err := form.RunWithContext(ctx); err != nil {
		return "", "", err
	}
	return body, mood, nil
}

func newJournalListCmd(a *App) *cobra.Command {
	var tag string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.Journal.List(cmd.Context(), app.JournalFilter{Tag: tag, Limit: limit})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatJournalList(entries, a.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Only entries carrying this tag")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show (0 for all)")

	return cmd
}

func newJournalShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <entry-id>",
		Short: "Show an entry and its suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := a.resolve(ctx, "journal entry", args[0])
			if err != nil {
				return err
			}
			view, err := a.Journal.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatJournalEntry(view, a.now()))
			return nil
		},
	}
}

func newJournalExportCmd(a *App) *cobra.Command {
	var dir, tag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write entries as Markdown notes with YAML frontmatter",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entries, err := a.Journal.List(ctx, app.JournalFilter{Tag: tag})
			if err != nil {
				return err
			}
			views := make([]*app.JournalEntryView, 0, len(entries))
			for _, e := range entries {
				v, err := a.Journal.Get(ctx, e.ID)
				if err != nil {
					return err
				}
				views = append(views, v)
			}
			paths, err := export.WriteNotes(dir, views)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(paths), dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write notes into")
	cmd.Flags().StringVar(&tag, "tag", "", "Only entries carrying this tag")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}
