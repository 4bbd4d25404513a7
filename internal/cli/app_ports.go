package cli

import "github.com/alexanderramin/actionmenu/internal/app"

func (a *App) recordJournalUseCase() app.RecordJournalUseCase {
	if a.RecordJournal != nil {
		return a.RecordJournal
	}
	return a.Journal
}

func (a *App) promoteSuggestionUseCase() app.PromoteSuggestionUseCase {
	if a.PromoteSuggestion != nil {
		return a.PromoteSuggestion
	}
	return a.Suggestions
}

func (a *App) logSessionUseCase() app.LogSessionUseCase {
	if a.LogSession != nil {
		return a.LogSession
	}
	return a.Sessions
}
