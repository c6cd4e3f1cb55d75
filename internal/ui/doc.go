// Package ui provides the color themes shared by the CLI report and the TUI
// dashboard. ANSI helpers serve plain terminal output; lipgloss styles serve
// the rendered tables and the dashboard.
package ui
