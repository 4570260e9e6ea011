package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"pomoplan/internal/domain"
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

// Predefined lipgloss styles.
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

// StatusStyle returns the style for a session status.
func StatusStyle(status domain.SessionStatus) lipgloss.Style {
	switch status {
	case domain.SessionInProgress:
		return StyleYellow
	case domain.SessionCompleted:
		return StyleGreen
	case domain.SessionArchived:
		return StyleDim
	default:
		return StyleBlue
	}
}

// TaskStatusIndicator returns a colored marker for a task status.
func TaskStatusIndicator(status domain.TaskStatus) string {
	switch status {
	case domain.TaskCompleted:
		return StyleGreen.Render("✓")
	case domain.TaskInProgress:
		return StyleYellow.Render("▶")
	case domain.TaskMitigated:
		return StyleDim.Render("~")
	default:
		return StyleDim.Render("·")
	}
}

// BoxStyle returns the style for a timebox type.
func BoxStyle(t domain.TimeBoxType) lipgloss.Style {
	switch t {
	case domain.BoxWork:
		return StyleBlue
	case domain.BoxDebrief:
		return StylePurple
	default:
		return StyleGreen
	}
}
