package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/alexanderramin/actionmenu/internal/extraction"
	"github.com/alexanderramin/actionmenu/internal/storage"
	"github.com/alexanderramin/actionmenu/internal/testutil"
	"github.com/stretchr/testify/require"
)

type services struct {
	uow         *storage.StateUnitOfWork
	journal     JournalService
	suggestions SuggestionService
	entities    EntityService
	sessions    SessionService
	reflections ReflectionService
	state       StateService
}

func newServices(t *testing.T, store storage.Store, observers ...UseCaseObserver) *services {
	t.Helper()
	engine, err := extraction.NewEngine(extraction.Config{})
	require.NoError(t, err)

	uow := storage.NewStateUnitOfWork(store)
	uow.SetIDGenerator(testutil.SequentialIDs("id"))
	return &services{
		uow:         uow,
		journal:     NewJournalService(engine, uow, observers...),
		suggestions: NewSuggestionService(engine, uow, observers...),
		entities:    NewEntityService(uow, observers...),
		sessions:    NewSessionService(uow, observers...),
		reflections: NewReflectionService(uow, observers...),
		state:       NewStateService(uow, observers...),
	}
}

// record writes a journal entry and returns its suggestions.
func (s *services) record(t *testing.T, body string) []*domain.Suggestion {
	t.Helper()
	res, err := s.journal.RecordJournal(context.Background(), app.RecordJournalRequest{Body: body})
	require.NoError(t, err)
	return res.Suggestions
}

func ptr[T any](v T) *T {
	return &v
}
