package boardtui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	session := m.board.Session()
	if !session.Active() {
		m.focus = focusList
		return m.handleListKey(msg)
	}

	switch msg.Type {
	case tea.KeyEnter:
		m.focus = focusList
		pending, ok := m.board.CommitEdit()
		if !ok {
			return nil
		}
		return m.updateCmd(pending)
	case tea.KeyEsc:
		// Leaves the session open; the draft keeps showing in the list.
		m.focus = focusList
	case tea.KeyBackspace:
		m.board.UpdateDraft(dropLastRune(session.Draft))
	case tea.KeyCtrlU:
		m.board.UpdateDraft("")
	case tea.KeySpace:
		m.board.UpdateDraft(session.Draft + " ")
	case tea.KeyRunes:
		m.board.UpdateDraft(session.Draft + string(msg.Runes))
	}
	return nil
}

func dropLastRune(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}
