package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/domain"
)

// FormatSuggestions renders suggestions as a table in the given order.
func FormatSuggestions(title string, suggestions []*domain.Suggestion) string {
	if len(suggestions) == 0 {
		return Dim("No suggestions.") + "\n"
	}
	headers := []string{"ID", "TYPE", "TITLE", "CATEGORY", "HINT", "CONF", "STATUS"}
	rows := make([][]string, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, []string{
			TruncID(s.ID),
			ClassBadge(s.Classification),
			Truncate(s.Proposed.Title, 48),
			s.Proposed.Category,
			OrDash(hint(s)),
			ConfidenceColor(s.Confidence),
			SuggestionStatusPill(s.Status),
		})
	}
	return RenderBox(title, RenderTable(headers, rows)) + "\n"
}

// FormatCandidates renders extraction output that has not been stored.
func FormatCandidates(candidates []domain.Suggestion) string {
	if len(candidates) == 0 {
		return Dim("Nothing actionable found.") + "\n"
	}
	headers := []string{"#", "TYPE", "TITLE", "CATEGORY", "HINT", "CONF"}
	rows := make([][]string, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			ClassBadge(c.Classification),
			Truncate(c.Proposed.Title, 48),
			c.Proposed.Category,
			OrDash(hint(c)),
			ConfidenceColor(c.Confidence),
		})
	}
	return RenderTable(headers, rows)
}

// FormatSuggestionDetail shows one suggestion with its source span.
func FormatSuggestionDetail(s *domain.Suggestion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n", ClassBadge(s.Classification), Bold(s.Proposed.Title), SuggestionStatusPill(s.Status))
	fmt.Fprintf(&b, "%s %q\n", Dim("span:"), s.Span)
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		Dim("category:"), s.Proposed.Category,
		Dim("hint:"), OrDash(hint(s)),
		Dim("confidence:"), ConfidenceColor(s.Confidence))
	return b.String()
}

// FormatPromoteResult reports what a decision did.
func FormatPromoteResult(res *app.PromoteResult) string {
	sg := res.Suggestion
	if sg.Status == domain.SuggestionRejected {
		return fmt.Sprintf("%s suggestion %s\n", StyleDim.Render("Rejected"), TruncID(sg.ID))
	}
	var title string
	switch {
	case res.Goal != nil:
		title = res.Goal.Title
	case res.Habit != nil:
		title = res.Habit.Title
	case res.QuickAction != nil:
		title = res.QuickAction.Title
	}
	return fmt.Sprintf("%s %s %s (%s)\n", StyleGreen.Render("Created"), sg.Classification, Bold(title), res.EntityID())
}

func hint(s *domain.Suggestion) string {
	parts := make([]string, 0, 2)
	if s.Proposed.DueHint != "" {
		parts = append(parts, s.Proposed.DueHint)
	}
	if s.Proposed.Frequency != "" {
		parts = append(parts, string(s.Proposed.Frequency))
	}
	return strings.Join(parts, ", ")
}
