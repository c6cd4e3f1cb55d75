package ui

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestInitTheme(t *testing.T) {
	orig := GetCurrentTheme()
	defer SetCurrentTheme(orig)

	InitTheme(true)
	if got := GetCurrentTheme().Name; got != "none" {
		t.Errorf("InitTheme(true) theme = %q, want none", got)
	}
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("no-color theme should produce empty escape codes")
	}
	if _, ok := GetCurrentTUITheme().Accent.(lipgloss.NoColor); !ok {
		t.Error("no-color theme should use lipgloss.NoColor")
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if got := GetCurrentTheme().Name; got != "none" {
		t.Errorf("NO_COLOR theme = %q, want none", got)
	}
}

func TestSetTheme(t *testing.T) {
	orig := GetCurrentTheme()
	defer SetCurrentTheme(orig)

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"unknown", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}

	SetTheme("dark")
	if ColorGreen() != DarkTheme.Success {
		t.Error("ColorGreen should follow the active theme")
	}
	if GetCurrentTUITheme() != DarkTheme.TUI {
		t.Error("dark theme should select its own TUI palette")
	}
	SetTheme("light")
	if GetCurrentTUITheme() != LightTheme.TUI {
		t.Error("light theme should select its own TUI palette")
	}
}

func TestInitThemeFromEnvironment(t *testing.T) {
	orig := GetCurrentTheme()
	defer SetCurrentTheme(orig)

	if _, set := os.LookupEnv("NO_COLOR"); set {
		t.Skip("NO_COLOR is set in the environment")
	}
	t.Setenv("PARBENCH_THEME", "light")
	InitTheme(false)
	if got := GetCurrentTheme().Name; got != "light" {
		t.Errorf("PARBENCH_THEME=light theme = %q, want light", got)
	}
	InitTheme(true)
	if got := GetCurrentTheme().Name; got != "none" {
		t.Errorf("--no-color should win over PARBENCH_THEME, got %q", got)
	}
}
