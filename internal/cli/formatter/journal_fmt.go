package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/domain"
)

// FormatJournalList renders entries newest first as given.
func FormatJournalList(entries []*domain.JournalEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No journal entries.") + "\n"
	}
	headers := []string{"ID", "WHEN", "MOOD", "TAGS", "SUGG", "ENTRY"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			TruncID(e.ID),
			HumanTimestampFrom(e.CreatedAt, now),
			OrDash(e.Mood),
			OrDash(strings.Join(e.Tags, ",")),
			fmt.Sprint(len(e.SuggestionIDs)),
			Truncate(e.Body, 50),
		})
	}
	return RenderBox("Journal", RenderTable(headers, rows)) + "\n"
}

// FormatJournalEntry renders an entry body followed by its suggestions.
func FormatJournalEntry(v *app.JournalEntryView, now time.Time) string {
	e := v.Entry
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Header("Entry "+shortID(e.ID)), Dim(HumanTimestampFrom(e.CreatedAt, now)))
	if e.Mood != "" || len(e.Tags) > 0 {
		fmt.Fprintf(&b, "%s %s   %s %s\n", Dim("mood:"), OrDash(e.Mood), Dim("tags:"), OrDash(strings.Join(e.Tags, ", ")))
	}
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(e.Body, "\n"))
	b.WriteString("\n\n")
	b.WriteString(FormatSuggestions("Suggestions", v.Suggestions))
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
