package boardtui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpItem struct {
	key  string
	desc string
}

type helpSection struct {
	title string
	items []helpItem
}

var helpSections = []helpSection{
	{title: "List", items: []helpItem{
		{key: "↑/↓ j/k", desc: "move selection"},
		{key: "g / G", desc: "first / last message"},
		{key: "e / Enter", desc: "edit selected, again to save"},
		{key: "d / x", desc: "delete selected"},
		{key: "n / Tab", desc: "compose a message"},
		{key: "r", desc: "refresh now"},
		{key: "c", desc: "dismiss error"},
		{key: "t", desc: "toggle timestamps"},
		{key: "q / Ctrl+C", desc: "quit"},
	}},
	{title: "Editor", items: []helpItem{
		{key: "Enter", desc: "save"},
		{key: "Ctrl+U", desc: "clear draft"},
		{key: "Esc", desc: "back to list, draft kept"},
	}},
	{title: "Compose", items: []helpItem{
		{key: "Tab", desc: "switch field"},
		{key: "Enter", desc: "send"},
		{key: "Esc", desc: "back to list"},
	}},
}

func (m *Model) renderHelpOverlay(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	lines := make([]string, 0, 32)
	head := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Chrome.Header)).Render("Help")
	lines = append(lines, head, "")

	keyStyle := m.theme.Accent()
	for _, sec := range helpSections {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(sec.title))
		for _, it := range sec.items {
			lines = append(lines, "  "+keyStyle.Render(padRight(it.key, 11))+" "+it.desc)
		}
		lines = append(lines, "")
	}
	lines = append(lines, m.theme.Muted().Render("Dismiss: ? or Esc"))

	panelWidth := minInt(maxInt(40, width-10), 72)
	panel := lipgloss.NewStyle().
		Border(m.theme.Border()).
		BorderForeground(lipgloss.Color(m.theme.Base.Border)).
		Foreground(lipgloss.Color(m.theme.Base.Foreground)).
		Padding(1, 2).
		Width(panelWidth)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel.Render(strings.Join(lines, "\n")))
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
