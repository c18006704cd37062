package boardtui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/msgboard/internal/boardtui/state"
	"github.com/tOgg1/msgboard/internal/models"
)

type composeField int

const (
	composeFieldUsername composeField = iota
	composeFieldContent
)

// composeState is the new-message form. Sending does not clear it.
type composeState struct {
	visible  bool
	field    composeField
	username string
	content  string
}

func (m *Model) restoreCompose() {
	draft := m.tuiState.Compose()
	m.compose.username = draft.Username
	m.compose.content = draft.Content
	m.compose.visible = draft.Username != "" || draft.Content != ""
}

func (m *Model) persistCompose() {
	m.tuiState.SetCompose(state.ComposeDraft{
		Username: m.compose.username,
		Content:  m.compose.content,
	})
}

func (m *Model) handleComposeKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.focus = focusList
		return nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		if m.compose.field == composeFieldUsername {
			m.compose.field = composeFieldContent
		} else {
			m.compose.field = composeFieldUsername
		}
		return nil
	case tea.KeyEnter:
		return m.createCmd(models.CreateRequest{
			Username: m.compose.username,
			Content:  m.compose.content,
		})
	case tea.KeyBackspace:
		m.editComposeField(dropLastRune)
	case tea.KeyCtrlU:
		m.editComposeField(func(string) string { return "" })
	case tea.KeySpace:
		m.editComposeField(func(s string) string { return s + " " })
	case tea.KeyRunes:
		text := string(msg.Runes)
		m.editComposeField(func(s string) string { return s + text })
	}
	return nil
}

func (m *Model) editComposeField(edit func(string) string) {
	switch m.compose.field {
	case composeFieldUsername:
		m.compose.username = edit(m.compose.username)
	default:
		m.compose.content = edit(m.compose.content)
	}
	m.persistCompose()
}

func (m *Model) renderCompose(width int) string {
	focused := m.focus == focusCompose
	labelStyle := m.theme.Muted()
	activeLabel := m.theme.Accent()
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Base.Foreground))

	field := func(name string, value string, which composeField) string {
		label := labelStyle.Render(name + ":")
		if focused && m.compose.field == which {
			label = activeLabel.Render(name + ":")
			value += "▌"
		}
		return label + " " + valueStyle.Render(value)
	}

	lines := []string{
		field("Username", m.compose.username, composeFieldUsername),
		field("Content ", m.compose.content, composeFieldContent),
	}

	borderColor := m.theme.Base.Border
	if focused {
		borderColor = m.theme.Base.Accent
	}
	panel := lipgloss.NewStyle().
		Border(m.theme.Border()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(0, 1)
	if width > 2 {
		panel = panel.Width(width - 2)
	}
	return panel.Render(strings.Join(lines, "\n"))
}
