// Package ui provides the visual building blocks of the kwmap terminal
// interface: theme, styles, value formatting and the record panes.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f7f7f5")
	LightForeground = lipgloss.Color("#1f2933")
	LightPrimary    = lipgloss.Color("#1f4e79") // Navy
	LightAccent     = lipgloss.Color("#2e7d32") // Green
	LightMuted      = lipgloss.Color("#8a94a0")
	LightBorder     = lipgloss.Color("#cfd6dd")
	LightTag        = lipgloss.Color("#e3ecf5")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#16191d")
	DarkForeground = lipgloss.Color("#e8eaed")
	DarkPrimary    = lipgloss.Color("#7fb3e6")
	DarkAccent     = lipgloss.Color("#81c784")
	DarkMuted      = lipgloss.Color("#6b7580")
	DarkBorder     = lipgloss.Color("#3a424b")
	DarkTag        = lipgloss.Color("#243447")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935") // Red
	Caution     = lipgloss.Color("#fb8c00") // Orange
	Notice      = lipgloss.Color("#1e88e5") // Blue
	Success     = lipgloss.Color("#43a047") // Green
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Tag        lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Tag:        LightTag,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Tag:        DarkTag,
		IsDark:     true,
	}
}

// DetectTheme picks the theme. An explicit preference wins; otherwise the
// terminal background from COLORFGBG decides, defaulting to light.
func DetectTheme(dark *bool) Theme {
	if dark != nil {
		if *dark {
			return DarkTheme()
		}
		return LightTheme()
	}

	// Format is usually "foreground;background"; 0-6 and 8 are dark.
	parts := strings.Split(os.Getenv("COLORFGBG"), ";")
	if len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil && ((bg >= 0 && bg <= 6) || bg == 8) {
			return DarkTheme()
		}
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header lipgloss.Style
	Footer lipgloss.Style

	// Text
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	// Panes
	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
	Filter      lipgloss.Style
	FilterFocus lipgloss.Style

	// Results
	Tag         lipgloss.Style
	TagSelected lipgloss.Style
	EntryTitle  lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
	filter := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(theme.Border)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.Background).
			Padding(0, 2).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Pane:        pane,
		FocusedPane: pane.BorderForeground(theme.Primary),
		Filter:      filter,
		FilterFocus: filter.BorderForeground(theme.Primary),

		Tag: lipgloss.NewStyle().
			Background(theme.Tag).
			Foreground(theme.Foreground).
			Padding(0, 1),
		TagSelected: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.Background).
			Padding(0, 1).
			Bold(true),
		EntryTitle: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().Foreground(Success),
		Error:   lipgloss.NewStyle().Foreground(Destructive).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(Caution),
		Info:    lipgloss.NewStyle().Foreground(Notice),
	}
}

// DefaultStyles returns styles for the auto-detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme(nil))
}
