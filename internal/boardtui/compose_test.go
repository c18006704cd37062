package boardtui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/msgboard/internal/models"
)

func TestComposeSendKeepsInputs(t *testing.T) {
	model, svc := newServiceModel(t)
	model = runCmd(t, model, model.Init())

	model = applyUpdate(t, model, runeKey('n'))
	require.Equal(t, focusCompose, model.focus)

	model = typeText(t, model, "alice")
	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model = typeText(t, model, "hello world")
	model = applyUpdateWithCmd(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	stored := svc.Messages()
	require.Len(t, stored, 1)
	require.Equal(t, "alice", stored[0].Username)
	require.Equal(t, "hello world", stored[0].Content)

	require.Len(t, model.board.Messages(), 1)
	require.Equal(t, "alice", model.compose.username)
	require.Equal(t, "hello world", model.compose.content)
	require.Equal(t, focusCompose, model.focus)
}

func TestComposeAllowsEmptyFields(t *testing.T) {
	stub := &stubService{}
	model := newTestModel(t, Config{Service: stub, PollInterval: time.Hour})

	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model = applyUpdateWithCmd(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, 1, stub.calls("create"))
	require.Equal(t, []models.Message{{ID: "99"}}, model.board.Messages())
}

func TestComposeKeysTypeLiterally(t *testing.T) {
	model := newTestModel(t, Config{Service: &stubService{}})
	model = applyUpdate(t, model, runeKey('n'))

	// List shortcuts are plain text while composing.
	model = typeText(t, model, "qdx")
	require.Equal(t, "qdx", model.compose.username)

	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, "qd", model.compose.username)

	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, focusList, model.focus)
	require.Contains(t, model.View(), "qd")
}

func TestComposeInputsRestoredFromState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msgboard", "tui-state.json")

	model := newTestModel(t, Config{Service: &stubService{}, StateFile: path})
	model = applyUpdate(t, model, runeKey('n'))
	model = typeText(t, model, "bob")
	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model = typeText(t, model, "unsent")
	require.NoError(t, model.Close())

	reopened := newTestModel(t, Config{Service: &stubService{}, StateFile: path})
	require.Equal(t, "bob", reopened.compose.username)
	require.Equal(t, "unsent", reopened.compose.content)
	require.True(t, reopened.compose.visible)
	require.Equal(t, focusList, reopened.focus)
}
