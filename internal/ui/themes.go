package ui

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme pairs the ANSI escape codes used by the line-oriented CLI output with
// the lipgloss palette used by rendered tables and the dashboard.
type Theme struct {
	Name string

	Accent    string
	Muted     string
	Success   string
	Warning   string
	Error     string
	Highlight string
	Bold      string
	Underline string
	Reset     string

	TUI TUITheme
}

// TUITheme defines lipgloss colors for the dashboard and rendered tables.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

func ansi256(n int) string { return fmt.Sprintf("\033[38;5;%dm", n) }

const (
	escBold      = "\033[1m"
	escUnderline = "\033[4m"
	escReset     = "\033[0m"
)

var (
	// DarkTheme is the default, tuned for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Accent:    ansi256(39),
		Muted:     ansi256(245),
		Success:   ansi256(82),
		Warning:   ansi256(220),
		Error:     ansi256(196),
		Highlight: ansi256(141),
		Bold:      escBold,
		Underline: escUnderline,
		Reset:     escReset,
		TUI: TUITheme{
			Text:    lipgloss.Color("#E0E0E0"),
			Border:  lipgloss.Color("#4488FF"),
			Accent:  lipgloss.Color("#00AFFF"),
			Success: lipgloss.Color("#9ece6a"),
			Warning: lipgloss.Color("#FFB347"),
			Error:   lipgloss.Color("#FF4444"),
			Dim:     lipgloss.Color("#666666"),
		},
	}

	// LightTheme uses darker tones for light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Accent:    ansi256(27),
		Muted:     ansi256(240),
		Success:   ansi256(28),
		Warning:   ansi256(130),
		Error:     ansi256(124),
		Highlight: ansi256(54),
		Bold:      escBold,
		Underline: escUnderline,
		Reset:     escReset,
		TUI: TUITheme{
			Text:    lipgloss.Color("#1F1F1F"),
			Border:  lipgloss.Color("#005FD7"),
			Accent:  lipgloss.Color("#005FAF"),
			Success: lipgloss.Color("#008700"),
			Warning: lipgloss.Color("#AF5F00"),
			Error:   lipgloss.Color("#AF0000"),
			Dim:     lipgloss.Color("#8A8A8A"),
		},
	}

	// NoColorTheme emits no escape codes at all. It is selected by
	// --no-color and by the NO_COLOR environment variable.
	NoColorTheme = Theme{
		Name: "none",
		TUI: TUITheme{
			Text:    lipgloss.NoColor{},
			Border:  lipgloss.NoColor{},
			Accent:  lipgloss.NoColor{},
			Success: lipgloss.NoColor{},
			Warning: lipgloss.NoColor{},
			Error:   lipgloss.NoColor{},
			Dim:     lipgloss.NoColor{},
		},
	}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	mu      sync.RWMutex
	current = DarkTheme
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// GetCurrentTUITheme returns the lipgloss palette of the active theme.
func GetCurrentTUITheme() TUITheme {
	return GetCurrentTheme().TUI
}

// SetCurrentTheme installs t as the active theme. Tests use it to restore
// state.
func SetCurrentTheme(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	current = t
}

// SetTheme selects a theme by name ("dark", "light" or "none"). Unknown names
// fall back to dark.
func SetTheme(name string) {
	t, ok := themes[name]
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme picks the startup theme. Colors are disabled by noColor or by a
// NO_COLOR variable (https://no-color.org/); otherwise PARBENCH_THEME may name
// a theme, and dark is used by default.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(os.Getenv("PARBENCH_THEME"))
}
