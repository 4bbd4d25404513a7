package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/actionmenu/internal/app"
)

// FormatStateReport renders the outcome of a state check, repair or
// migration.
func FormatStateReport(op string, r *app.StateReport) string {
	var b strings.Builder

	switch {
	case r.FromVersion > 0:
		fmt.Fprintf(&b, "%s schema v%d\n", Dim("source:"), r.FromVersion)
	case len(r.Problems) == 0:
		fmt.Fprintf(&b, "%s no stored document\n", Dim("source:"))
	}
	if r.Migrated {
		fmt.Fprintf(&b, "%s\n", StyleYellow.Render("migrated from an older schema"))
	}

	// A failed check has no loaded state to count.
	if len(r.Problems) == 0 {
		c := r.Counts
		fmt.Fprintf(&b, "%s %d goals, %d habits, %d quick actions\n", Dim("entities:"), c.Goals, c.Habits, c.QuickActions)
		fmt.Fprintf(&b, "%s %d entries, %d suggestions (%d pending), %d sessions\n",
			Dim("journal:"), c.JournalEntries, c.Suggestions, c.Pending, c.WorkSessions)
	}

	if len(r.Problems) > 0 {
		fmt.Fprintf(&b, "\n%s\n", StyleRed.Render(fmt.Sprintf("%d integrity problem(s):", len(r.Problems))))
		for _, p := range r.Problems {
			fmt.Fprintf(&b, "  %s %s\n", StyleRed.Render("✖"), p)
		}
	}
	if len(r.Repairs) > 0 {
		fmt.Fprintf(&b, "\n%s\n", StyleYellow.Render(fmt.Sprintf("%d repair(s):", len(r.Repairs))))
		for _, p := range r.Repairs {
			fmt.Fprintf(&b, "  %s %s\n", StyleYellow.Render("•"), p)
		}
	}

	switch {
	case r.Rewritten:
		fmt.Fprintf(&b, "\n%s\n", StyleGreen.Render("✔ state rewritten"))
	case len(r.Problems) == 0:
		fmt.Fprintf(&b, "\n%s\n", StyleGreen.Render("✔ state is consistent"))
	}
	return RenderBox("State "+op, strings.TrimRight(b.String(), "\n")) + "\n"
}
