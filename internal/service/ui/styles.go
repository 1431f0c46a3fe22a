package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle ANSI 6 (Cyan) for headers, readable on light and dark terminals
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle ANSI 2 (Green) for arguments and usage lines
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (Bright Black / Gray) for secondary descriptions
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (Yellow) for flags
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// UserLabelStyle marks user-authored transcript entries
	UserLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)

	// AgentLabelStyle marks agent-authored transcript entries
	AgentLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)

	// MutedStyle is for confidence lines, timestamps, and key hints
	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// LinkStyle renders clickable source URLs
	LinkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Underline(true)

	// ChipStyle renders follow-up suggestions
	ChipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).
			Border(lipgloss.RoundedBorder()).Padding(0, 1)

	// SelectedStyle highlights the active sidebar entry
	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))

	// ErrorStyle for fatal TUI errors
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	// SidebarStyle frames the conversation list
	SidebarStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("8")).PaddingRight(1)
)
