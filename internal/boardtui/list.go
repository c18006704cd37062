package boardtui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/msgboard/internal/board"
)

const selectedPrefix = "› "

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "?":
		m.showHelp = true
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "home", "g":
		m.moveCursor(-len(m.board.Rows()))
	case "end", "G":
		m.moveCursor(len(m.board.Rows()))
	case "e", "enter":
		return m.toggleEdit()
	case "d", "x":
		if row, ok := m.selectedRow(); ok {
			return m.deleteCmd(row.Message.ID)
		}
	case "n", "tab":
		m.focus = focusCompose
		m.compose.visible = true
	case "r":
		return m.refreshCmd()
	case "c":
		m.board.ClearErr()
	case "t":
		m.timestamps = !m.timestamps
		m.tuiState.SetShowTimestamps(m.timestamps)
	}
	return nil
}

// toggleEdit opens the selected row in the editor, or saves it when it is
// already the one being edited.
func (m *Model) toggleEdit() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	pending, committed, err := m.board.BeginEdit(row.Message.ID)
	if errors.Is(err, board.ErrMessageNotFound) {
		return nil
	}
	if committed {
		return m.updateCmd(pending)
	}
	m.focus = focusEditor
	return nil
}

func (m *Model) renderList(width, height int) string {
	if height <= 0 {
		return ""
	}
	rows := m.board.Rows()
	if len(rows) == 0 {
		text := "No messages yet. Press n to write one."
		if !m.board.Loaded() {
			text = "Loading messages..."
		}
		return lipgloss.NewStyle().
			Width(maxInt(0, width)).
			Height(height).
			Foreground(lipgloss.Color(m.theme.Base.Muted)).
			Padding(0, 1).
			Render(text)
	}

	blocks := make([]string, 0, len(rows))
	for i, row := range rows {
		blocks = append(blocks, m.renderRow(row, i == m.cursor, width))
	}
	visible := visibleBlocks(blocks, m.cursor, height)
	return lipgloss.NewStyle().Height(height).Render(strings.Join(visible, "\n"))
}

func (m *Model) renderRow(row board.Row, selected bool, width int) string {
	prefix := strings.Repeat(" ", lipgloss.Width(selectedPrefix))
	if selected {
		prefix = m.msgStyles.Selected.Render(selectedPrefix)
	}

	head := m.msgStyles.UserColors.Foreground(row.Message.Username).Render(displayName(row.Message.Username))
	if m.timestamps {
		head = m.msgStyles.RenderHeader(row.Message.Username, row.Message.CreatedAt.Time)
	}
	head = head + " " + m.msgStyles.RenderMarker(row.Editing)

	bodyWidth := maxInt(1, width-lipgloss.Width(selectedPrefix)-1)
	var body string
	if row.Editing {
		body = m.msgStyles.RenderDraft(row.Content, bodyWidth, m.focus == focusEditor)
	} else {
		body = m.msgStyles.RenderBody(row.Content, bodyWidth)
	}

	indent := strings.Repeat(" ", lipgloss.Width(selectedPrefix))
	lines := []string{prefix + head}
	for _, line := range strings.Split(body, "\n") {
		lines = append(lines, indent+line)
	}
	return strings.Join(lines, "\n")
}

// visibleBlocks picks a run of blocks that fits height and contains the
// selected one, preferring to show what comes before it.
func visibleBlocks(blocks []string, selected, height int) []string {
	if len(blocks) == 0 || height <= 0 {
		return nil
	}
	selected = clampInt(selected, 0, len(blocks)-1)

	start, end := selected, selected+1
	used := lipgloss.Height(blocks[selected])
	for start > 0 && used+lipgloss.Height(blocks[start-1]) <= height {
		start--
		used += lipgloss.Height(blocks[start])
	}
	for end < len(blocks) && used+lipgloss.Height(blocks[end]) <= height {
		used += lipgloss.Height(blocks[end])
		end++
	}
	return blocks[start:end]
}

func displayName(username string) string {
	if strings.TrimSpace(username) == "" {
		return "anonymous"
	}
	return username
}
