package boardtui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/msgboard/internal/boardtui/styles"
)

func (m *Model) renderHeader() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Base.Foreground)).
		Background(lipgloss.Color(m.theme.Chrome.Header)).
		Bold(true).
		Padding(0, 1)

	left := "msgboard"
	if m.source != "" {
		left += " " + m.source
	}
	center := editingLabel(m.board.Session().EditingID.String())
	right := m.pollStatus()
	line := joinHeader(left, center, right, maxInt(0, m.width-2))
	return style.Width(maxInt(0, m.width)).Render(line)
}

func editingLabel(id string) string {
	if id == "" {
		id = "null"
	}
	return "Editing ID: " + id
}

func (m *Model) pollStatus() string {
	if !m.board.Loaded() {
		return "connecting"
	}
	status := fmt.Sprintf("%d msgs · %s", len(m.board.Messages()), m.board.LastRefresh().Local().Format("15:04:05"))
	if n := m.board.InFlight(); n > 1 {
		status += fmt.Sprintf(" · %d pending", n)
	}
	return status
}

func (m *Model) renderErrorBanner() string {
	text := m.board.Err()
	if text == "" {
		return ""
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(styles.ContrastingText(m.theme.Chrome.Banner))).
		Background(lipgloss.Color(m.theme.Chrome.Banner)).
		Padding(0, 1)
	line := truncateVis("! "+text+"  (c to dismiss)", maxInt(0, m.width-2))
	return style.Width(maxInt(0, m.width)).Render(line)
}

func (m *Model) renderFooter() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Base.Foreground)).
		Background(lipgloss.Color(m.theme.Chrome.Footer)).
		Padding(0, 1)

	var base string
	switch m.focus {
	case focusEditor:
		base = "typing edits the draft · Enter save · Esc back to list"
	case focusCompose:
		base = "Tab switch field · Enter send · Esc back to list"
	default:
		base = "j/k move · e edit/save · d delete · n compose · r refresh · ? help · q quit"
	}
	return style.Width(maxInt(0, m.width)).Render(truncateVis(base, maxInt(0, m.width-2)))
}

func joinHeader(left, center, right string, width int) string {
	left = strings.TrimSpace(left)
	center = strings.TrimSpace(center)
	right = strings.TrimSpace(right)
	if width <= 0 {
		return left + "  " + center + "  " + right
	}

	space := width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if space < 2 {
		return truncateVis(center+"  "+right, width)
	}

	leftGap := space / 2
	rightGap := space - leftGap
	return left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
}

func truncateVis(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= max {
		return s
	}
	runes := []rune(s)
	if max <= 3 {
		return string(runes[:minInt(max, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > max {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
