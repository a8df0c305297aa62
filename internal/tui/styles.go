package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/todo/internal/domain"
)

// Palette defines the colors of one theme.
type Palette struct {
	// Base colors
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Selected   lipgloss.Color

	// Priority colors
	High   lipgloss.Color
	Medium lipgloss.Color
	Low    lipgloss.Color
}

// DarkPalette is used when dark mode is on.
var DarkPalette = Palette{
	Primary:    lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#FF7675"), // Light red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray
	Text:       lipgloss.Color("#DFE6E9"), // Light gray
	Selected:   lipgloss.Color("#FFEAA7"), // Pale yellow

	High:   lipgloss.Color("#FF7675"),
	Medium: lipgloss.Color("#FDCB6E"),
	Low:    lipgloss.Color("#74B9FF"),
}

// LightPalette is used when dark mode is off.
var LightPalette = Palette{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Muted:      lipgloss.Color("#95A5A6"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00A383"), // Green
	Warning:    lipgloss.Color("#E17055"), // Orange
	Background: lipgloss.Color("#F5F6FA"), // Off white
	Text:       lipgloss.Color("#2D3436"), // Dark gray
	Selected:   lipgloss.Color("#0984E3"), // Blue

	High:   lipgloss.Color("#D63031"),
	Medium: lipgloss.Color("#E17055"),
	Low:    lipgloss.Color("#0984E3"),
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style
	Clock      lipgloss.Style

	// Task list
	TaskText          lipgloss.Style
	TaskTextSelected  lipgloss.Style
	TaskTextCompleted lipgloss.Style
	TaskMeta          lipgloss.Style
	SelectionCursor   lipgloss.Style

	// Priority badges
	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style

	// Due dates
	DueOverdue  lipgloss.Style
	DueToday    lipgloss.Style
	DueUpcoming lipgloss.Style

	// Bars
	FilterBar    lipgloss.Style
	FilterActive lipgloss.Style
	StatsBar     lipgloss.Style
	StatusLine   lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Messages
	ErrorMsg  lipgloss.Style
	NoticeMsg lipgloss.Style

	// Help
	Help lipgloss.Style

	Palette Palette
}

// NewStyles returns the styles for dark or light mode.
func NewStyles(dark bool) Styles {
	p := LightPalette
	if dark {
		p = DarkPalette
	}

	return Styles{
		Palette: p,

		Header: lipgloss.NewStyle().
			Padding(0, 1).
			MarginBottom(1),
		HeaderText: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		Clock: lipgloss.NewStyle().
			Foreground(p.Muted),

		TaskText: lipgloss.NewStyle().
			Foreground(p.Text),
		TaskTextSelected: lipgloss.NewStyle().
			Foreground(p.Selected).
			Bold(true),
		TaskTextCompleted: lipgloss.NewStyle().
			Foreground(p.Muted).
			Strikethrough(true),
		TaskMeta: lipgloss.NewStyle().
			Foreground(p.Muted),
		SelectionCursor: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),

		PriorityHigh: lipgloss.NewStyle().
			Foreground(p.High).
			Bold(true),
		PriorityMedium: lipgloss.NewStyle().
			Foreground(p.Medium),
		PriorityLow: lipgloss.NewStyle().
			Foreground(p.Low),

		DueOverdue: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),
		DueToday: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),
		DueUpcoming: lipgloss.NewStyle().
			Foreground(p.Muted),

		FilterBar: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		FilterActive: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		StatsBar: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		StatusLine: lipgloss.NewStyle().
			Foreground(p.Warning).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			MarginBottom(1),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(p.Error).
			Padding(0, 1),
		NoticeMsg: lipgloss.NewStyle().
			Foreground(p.Success).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Padding(0, 1),
	}
}

// PriorityStyle returns the style for a priority badge.
func (s Styles) PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return s.PriorityHigh
	case domain.PriorityMedium:
		return s.PriorityMedium
	default:
		return s.PriorityLow
	}
}

// DueStyle returns the style for a due date in the given state.
func (s Styles) DueStyle(state domain.DueState) lipgloss.Style {
	switch state {
	case domain.DueOverdue:
		return s.DueOverdue
	case domain.DueToday:
		return s.DueToday
	default:
		return s.DueUpcoming
	}
}
