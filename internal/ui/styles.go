package ui

import "github.com/charmbracelet/lipgloss"

// This file centralizes the lipgloss styles used across the TUI.

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")). // Brand Color
			Padding(0, 1).
			Bold(true)

	metricStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true).
			Height(3).
			Align(lipgloss.Center)

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light Gray

	goalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")). // Green
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	stateStyles = map[string]lipgloss.Style{
		"idle":    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		"running": lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		"paused":  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"blocked": lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666")).
			MarginTop(1)
)
