package service

import (
	"context"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/domain"
)

// Extractor turns journal prose into pending suggestions and signal tags.
type Extractor interface {
	Extract(text string) []domain.Suggestion
	Signals(text string) []string
}

// StateTx runs mutations against the committed state. It is satisfied by
// *storage.StateUnitOfWork.
type StateTx interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, s *domain.State) error) error
	Snapshot(ctx context.Context) (*domain.State, error)
}

type JournalService interface {
	app.RecordJournalUseCase
	Get(ctx context.Context, id string) (*app.JournalEntryView, error)
	List(ctx context.Context, filter app.JournalFilter) ([]*domain.JournalEntry, error)
}

type SuggestionService interface {
	app.ExtractSuggestionsUseCase
	app.PromoteSuggestionUseCase
	Get(ctx context.Context, id string) (*domain.Suggestion, error)
	List(ctx context.Context, filter app.SuggestionFilter) ([]*domain.Suggestion, error)
	ReviewQueue(ctx context.Context) ([]*domain.Suggestion, error)
}

type EntityService interface {
	app.EntityUseCase
	ListGoals(ctx context.Context, includeFinished bool) ([]*domain.Goal, error)
	ListHabits(ctx context.Context, includeRetired bool) ([]*domain.Habit, error)
	ListQuickActions(ctx context.Context, stage domain.Stage) ([]*domain.QuickAction, error)
}

type SessionService interface {
	app.LogSessionUseCase
	ListRecent(ctx context.Context, days int) ([]*domain.WorkSession, error)
}

type ReflectionService interface {
	app.ReflectionsUseCase
}

type StateService interface {
	app.LoadStateUseCase
	app.SaveStateUseCase
	Check(ctx context.Context) (*app.StateReport, error)
	Repair(ctx context.Context) (*app.StateReport, error)
	Migrate(ctx context.Context) (*app.StateReport, error)
	Snapshot(ctx context.Context) (*domain.State, error)
}
