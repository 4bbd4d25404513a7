package service

import (
	"context"
	"time"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/domain"
)

type journalService struct {
	engine   Extractor
	uow      StateTx
	observer UseCaseObserver
}

func NewJournalService(engine Extractor, uow StateTx, observers ...UseCaseObserver) JournalService {
	return &journalService{
		engine:   engine,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// RecordJournal stores a new entry together with the pending suggestions
// extracted from its body, in one transaction.
func (s *journalService) RecordJournal(ctx context.Context, req app.RecordJournalRequest) (result *app.RecordJournalResult, err error) {
	fields := map[string]any{"body_bytes": len(req.Body)}
	defer observe(ctx, s.observer, "record-journal", time.Now(), fields, &err)

	now := nowUTC()
	entry, err := domain.NewJournalEntry(req.Body, req.Mood, now)
	if err != nil {
		return nil, err
	}
	entry.Tags = s.engine.Signals(req.Body)

	var candidates []domain.Suggestion
	if !req.SkipExtraction {
		candidates = s.engine.Extract(req.Body)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, st *domain.State) error {
		if err := st.AddJournalEntry(entry); err != nil {
			return err
		}
		added, err := st.AddSuggestions(entry.ID, candidates, now)
		if err != nil {
			return err
		}
		result = &app.RecordJournalResult{
			Entry:       copyEntry(entry),
			Suggestions: copySuggestions(added),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["entry_id"] = result.Entry.ID
	fields["suggestions"] = len(result.Suggestions)
	return result, nil
}

func (s *journalService) Get(ctx context.Context, id string) (*app.JournalEntryView, error) {
	st, err := s.uow.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	e, err := st.JournalEntry(id)
	if err != nil {
		return nil, err
	}
	return &app.JournalEntryView{Entry: e, Suggestions: st.SuggestionsForEntry(id)}, nil
}

// List returns entries newest first, optionally filtered by tag.
func (s *journalService) List(ctx context.Context, filter app.JournalFilter) ([]*domain.JournalEntry, error) {
	st, err := s.uow.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := []*domain.JournalEntry{}
	for i := len(st.JournalEntries) - 1; i >= 0; i-- {
		e := st.JournalEntries[i]
		if filter.Tag != "" && !hasTag(e.Tags, filter.Tag) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
