package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/projectboard/internal/model"
)

// Color palette based on TUI design
var (
	// Status colors
	StatusNewColor        = lipgloss.Color("#4ECDC4") // Blue
	StatusInProgressColor = lipgloss.Color("#FFB347") // Orange
	StatusDoneColor       = lipgloss.Color("#95E1A3") // Green
	OverdueColor          = lipgloss.Color("#FF6B6B") // Red

	// UI colors
	Primary    = lipgloss.Color("#4ECDC4")
	Secondary  = lipgloss.Color("#6C757D")
	Background = lipgloss.Color("#1a1a2e")
	Surface    = lipgloss.Color("#16213e")
	Text       = lipgloss.Color("#FFFFFF")
	TextMuted  = lipgloss.Color("#888888")
	Border     = lipgloss.Color("#333333")
	Highlight  = lipgloss.Color("#4ECDC4")
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	// Sidebar
	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	// Task list
	TaskListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	// Project item
	ProjectItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	ProjectItemSelectedStyle = lipgloss.NewStyle().
					Padding(0, 1).
					Background(Surface).
					Bold(true)

	// Task item
	TaskItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TaskItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	// Status badges
	StatusNewStyle        = lipgloss.NewStyle().Foreground(StatusNewColor)
	StatusInProgressStyle = lipgloss.NewStyle().Foreground(StatusInProgressColor).Bold(true)
	StatusDoneStyle       = lipgloss.NewStyle().Foreground(StatusDoneColor)
	OverdueStyle          = lipgloss.NewStyle().Foreground(OverdueColor).Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Input modal
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// GetStatusStyle returns the style for a task status
func GetStatusStyle(status model.Status) lipgloss.Style {
	switch status {
	case model.StatusInProgress:
		return StatusInProgressStyle
	case model.StatusDone:
		return StatusDoneStyle
	default:
		return StatusNewStyle
	}
}

// FormatStatus returns a colored status label
func FormatStatus(status model.Status) string {
	return GetStatusStyle(status).Render(string(status))
}
