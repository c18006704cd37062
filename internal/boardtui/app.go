// Package boardtui is the terminal front end for the message board: a
// bubbletea program that polls the service, lists messages and hosts the
// compose form and the inline editor.
package boardtui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/tOgg1/msgboard/internal/board"
	"github.com/tOgg1/msgboard/internal/boardtui/state"
	"github.com/tOgg1/msgboard/internal/boardtui/styles"
	"github.com/tOgg1/msgboard/internal/logging"
	"github.com/tOgg1/msgboard/internal/models"
)

const defaultPollInterval = 1 * time.Second

// MessageService is the remote collection the TUI works against.
// *api.Client satisfies it.
type MessageService interface {
	List(ctx context.Context) ([]models.Message, error)
	Create(ctx context.Context, req models.CreateRequest) (models.Message, error)
	Update(ctx context.Context, id models.ID, req models.UpdateRequest) (models.Message, error)
	Delete(ctx context.Context, id models.ID) error
}

type Config struct {
	Service        MessageService
	Source         string // shown in the header, usually the base URL
	Theme          string
	PollInterval   time.Duration
	StateFile      string
	ShowTimestamps bool
}

type focusMode int

const (
	focusList focusMode = iota
	focusCompose
	focusEditor
)

type Model struct {
	service      MessageService
	board        *board.Board
	tuiState     *state.Manager
	theme        styles.Theme
	msgStyles    styles.MessageStyles
	pollInterval time.Duration
	source       string
	timestamps   bool
	log          zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	width    int
	height   int
	showHelp bool
	focus    focusMode

	// cursor follows cursorID across polls; the index is the fallback when
	// the selected message disappears.
	cursor   int
	cursorID models.ID

	compose composeState
}

func NewModel(cfg Config) (*Model, error) {
	normalized, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	theme, err := styles.Lookup(normalized.Theme)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		service:      normalized.Service,
		board:        board.New(),
		tuiState:     state.New(normalized.StateFile),
		theme:        theme,
		msgStyles:    styles.NewMessageStyles(theme, nil),
		pollInterval: normalized.PollInterval,
		source:       normalized.Source,
		log:          logging.Component("boardtui"),
		ctx:          ctx,
		cancel:       cancel,
	}
	// Non-fatal: a broken state file only costs the restored inputs.
	if err := m.tuiState.Load(); err != nil {
		m.log.Warn().Err(err).Str("path", m.tuiState.Path()).Msg("failed to load tui state")
	}
	m.timestamps = m.tuiState.ShowTimestamps(normalized.ShowTimestamps)
	m.restoreCompose()
	return m, nil
}

func Run(cfg Config) error {
	model, err := NewModel(cfg)
	if err != nil {
		return err
	}
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// Close cancels outstanding requests and flushes the state file.
func (m *Model) Close() error {
	if m == nil {
		return nil
	}
	if m.cancel != nil {
		m.cancel()
	}
	if m.tuiState != nil {
		return m.tuiState.Close()
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.tickCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil
	case refreshTickMsg:
		// The timer re-arms regardless of outstanding polls.
		return m, tea.Batch(m.refreshCmd(), m.tickCmd())
	case refreshResultMsg:
		m.applyRefresh(typed)
		return m, nil
	case createResultMsg:
		m.board.ApplyCreate(typed.msg, typed.err)
		m.logResult(createOp, typed.err).Str("id", typed.msg.ID.String()).Msg("create finished")
		m.syncCursor()
		return m, nil
	case updateResultMsg:
		m.board.ApplyUpdate(typed.pending, typed.msg, typed.err)
		m.logResult(updateOp, typed.err).Str("id", typed.pending.ID.String()).Msg("update finished")
		return m, nil
	case deleteResultMsg:
		m.board.ApplyDelete(typed.id, typed.err)
		m.logResult(deleteOp, typed.err).Str("id", typed.id.String()).Msg("delete finished")
		m.syncCursor()
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(typed)
	}
	return m, nil
}

func (m *Model) View() string {
	header := m.renderHeader()
	banner := m.renderErrorBanner()
	footer := m.renderFooter()

	var composer string
	if m.focus == focusCompose || m.compose.visible {
		composer = m.renderCompose(m.width)
	}

	used := lipgloss.Height(header) + lipgloss.Height(footer)
	if banner != "" {
		used += lipgloss.Height(banner)
	}
	if composer != "" {
		used += lipgloss.Height(composer)
	}
	bodyHeight := maxInt(0, m.height-used)

	var body string
	if m.showHelp {
		body = m.renderHelpOverlay(m.width, bodyHeight)
	} else {
		body = m.renderList(m.width, bodyHeight)
	}

	parts := []string{header}
	if banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, body)
	if composer != "" {
		parts = append(parts, composer)
	}
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return nil
	}

	switch m.focus {
	case focusEditor:
		return m.handleEditorKey(msg)
	case focusCompose:
		return m.handleComposeKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) applyRefresh(res refreshResultMsg) {
	if !m.board.ApplyRefresh(res.ticket, res.msgs, res.err) {
		m.log.Debug().Uint64("ticket", res.ticket.Seq()).Msg("dropped stale refresh")
		return
	}
	if res.err != nil {
		m.log.Debug().Err(res.err).Uint64("ticket", res.ticket.Seq()).Msg("refresh failed")
	}
	m.syncCursor()
}

func (m *Model) logResult(op string, err error) *zerolog.Event {
	if err != nil {
		return m.log.Warn().Err(err).Str("op", op)
	}
	return m.log.Debug().Str("op", op)
}

// syncCursor keeps the selection on the same message when rows move.
func (m *Model) syncCursor() {
	rows := m.board.Rows()
	if len(rows) == 0 {
		m.cursor = 0
		m.cursorID = ""
		return
	}
	if !m.cursorID.IsZero() {
		for i, row := range rows {
			if row.Message.ID == m.cursorID {
				m.cursor = i
				return
			}
		}
	}
	m.cursor = clampInt(m.cursor, 0, len(rows)-1)
	m.cursorID = rows[m.cursor].Message.ID
}

func (m *Model) moveCursor(delta int) {
	rows := m.board.Rows()
	if len(rows) == 0 {
		return
	}
	m.cursor = clampInt(m.cursor+delta, 0, len(rows)-1)
	m.cursorID = rows[m.cursor].Message.ID
}

func (m *Model) selectedRow() (board.Row, bool) {
	rows := m.board.Rows()
	if len(rows) == 0 {
		return board.Row{}, false
	}
	return rows[clampInt(m.cursor, 0, len(rows)-1)], true
}

func (c Config) normalize() (Config, error) {
	if c.Service == nil {
		return Config{}, errors.New("message service is required")
	}
	c.Source = strings.TrimSpace(c.Source)
	c.StateFile = strings.TrimSpace(c.StateFile)
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if strings.TrimSpace(c.Theme) == "" {
		c.Theme = styles.DefaultTheme.Name
	}
	if _, ok := styles.Themes[c.Theme]; !ok {
		return Config{}, fmt.Errorf("invalid theme %q", c.Theme)
	}
	return c, nil
}
