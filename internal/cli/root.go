package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/repository"
	"github.com/alexanderramin/actionmenu/internal/service"
	"github.com/spf13/cobra"
)

// SnapshotHistory lists retained state documents. Only the SQLite backend
// keeps history.
type SnapshotHistory interface {
	History(ctx context.Context, limit int) ([]*repository.Snapshot, error)
}

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Journal     service.JournalService
	Suggestions service.SuggestionService
	Entities    service.EntityService
	Sessions    service.SessionService
	Reflections service.ReflectionService
	State       service.StateService
	History     SnapshotHistory

	// Use-case overrides. When nil the matching service above is used.
	RecordJournal     app.RecordJournalUseCase
	PromoteSuggestion app.PromoteSuggestionUseCase
	LogSession        app.LogSessionUseCase

	// IsInteractive reports whether stdin is a terminal. Forms only run
	// when it returns true.
	IsInteractive func() bool
	Now           func() time.Time
}

// NewRootCmd creates the top-level "actionmenu" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "actionmenu",
		Short:         "Journal-driven goals, habits and quick actions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Read by main before the services are wired; declared here so cobra
	// accepts it on every subcommand.
	root.PersistentFlags().String("config", "", "config file (default $XDG_CONFIG_HOME/actionmenu/config.yaml)")

	root.AddCommand(
		newJournalCmd(a),
		newSuggestCmd(a),
		newSuggestionCmd(a),
		newGoalCmd(a),
		newHabitCmd(a),
		newActionCmd(a),
		newSessionCmd(a),
		newReflectCmd(a),
		newStateCmd(a),
	)

	return root
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
