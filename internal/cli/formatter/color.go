package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ClassBadge labels a suggestion classification.
func ClassBadge(c domain.Classification) string {
	switch c {
	case domain.ClassGoal:
		return StylePurple.Render("◆ goal")
	case domain.ClassHabit:
		return StyleBlue.Render("↻ habit")
	case domain.ClassQuickAction:
		return StyleYellow.Render("▸ action")
	default:
		return StyleDim.Render(string(c))
	}
}

// SuggestionStatusPill returns a colored indicator for a suggestion status.
func SuggestionStatusPill(s domain.SuggestionStatus) string {
	switch s {
	case domain.SuggestionPending:
		return StyleYellow.Render("○ pending")
	case domain.SuggestionAccepted:
		return StyleGreen.Render("✔ accepted")
	case domain.SuggestionRejected:
		return StyleDim.Render("✖ rejected")
	default:
		return StyleDim.Render(string(s))
	}
}

// ConfidenceColor renders a 0..1 confidence as a percentage, red below 0.4
// and green from 0.7.
func ConfidenceColor(c float64) string {
	text := fmt.Sprintf("%3.0f%%", c*100)
	switch {
	case c >= 0.7:
		return StyleGreen.Render(text)
	case c >= 0.4:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
