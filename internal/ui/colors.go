package ui

// ANSI helpers reading the active theme.

func ColorReset() string     { return GetCurrentTheme().Reset }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Accent }
func ColorMagenta() string   { return GetCurrentTheme().Highlight }
func ColorCyan() string      { return GetCurrentTheme().Accent }
func ColorGrey() string      { return GetCurrentTheme().Muted }
