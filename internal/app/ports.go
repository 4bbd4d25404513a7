package app

import (
	"context"

	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/alexanderramin/actionmenu/internal/storage"
)

type ExtractSuggestionsUseCase interface {
	ExtractSuggestions(ctx context.Context, text string) []domain.Suggestion
}

type PromoteSuggestionUseCase interface {
	PromoteSuggestion(ctx context.Context, req PromoteRequest) (*PromoteResult, error)
}

type LoadStateUseCase interface {
	LoadState(ctx context.Context, req LoadRequest) (*storage.LoadResult, error)
}

type SaveStateUseCase interface {
	SaveState(ctx context.Context, s *domain.State) error
}

type RecordJournalUseCase interface {
	RecordJournal(ctx context.Context, req RecordJournalRequest) (*RecordJournalResult, error)
}

type EntityUseCase interface {
	CreateGoal(ctx context.Context, f domain.GoalFields) (*domain.Goal, error)
	CreateHabit(ctx context.Context, f domain.HabitFields) (*domain.Habit, error)
	CaptureQuickAction(ctx context.Context, title string, stage domain.Stage) (*domain.QuickAction, error)
	MoveQuickAction(ctx context.Context, id string, to domain.Stage) (*domain.QuickAction, error)
	SetGoalStatus(ctx context.Context, id string, status domain.GoalStatus) (*domain.Goal, error)
	SetHabitStatus(ctx context.Context, id string, status domain.HabitStatus) (*domain.Habit, error)
}

type LogSessionUseCase interface {
	LogSession(ctx context.Context, s *domain.WorkSession) error
}

type ReflectionsUseCase interface {
	Reflections(ctx context.Context) (domain.Reflections, error)
	SetReflections(ctx context.Context, r domain.Reflections) error
}
