// Package styles holds the lipgloss palettes and message renderers for the
// msgboard TUI.
package styles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BaseColors defines global UI colors.
type BaseColors struct {
	Background string
	Foreground string
	Muted      string
	Accent     string
	Border     string
}

// StatusColors defines colors for poll and request outcomes.
type StatusColors struct {
	OK    string
	Busy  string
	Error string
}

// ChromeColors defines non-content UI colors.
type ChromeColors struct {
	Header       string
	Footer       string
	Banner       string
	SelectedItem string
}

// EditColors marks the row under edit.
type EditColors struct {
	Row    string
	Cursor string
	Marker string
}

// Theme defines the msgboard TUI style tokens.
type Theme struct {
	Name        string
	BorderStyle string   // "rounded", "sharp", "double", "hidden"
	UserPalette []string // optional override for username colors (ANSI-256 codes)

	Base   BaseColors
	Status StatusColors
	Chrome ChromeColors
	Edit   EditColors
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// ThemeNames returns the registered theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a theme by name.
func Lookup(name string) (Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultTheme, nil
	}
	theme, ok := Themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("invalid theme %q (want one of %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return theme, nil
}

// Border returns the lipgloss border matching BorderStyle.
func (t Theme) Border() lipgloss.Border {
	switch t.BorderStyle {
	case "double":
		return lipgloss.DoubleBorder()
	case "sharp":
		return lipgloss.NormalBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// Muted is the style for secondary text.
func (t Theme) Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Muted))
}

// Accent is the style for key hints and highlights.
func (t Theme) Accent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Accent)).Bold(true)
}
