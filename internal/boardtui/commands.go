package boardtui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tOgg1/msgboard/internal/board"
	"github.com/tOgg1/msgboard/internal/models"
)

const (
	createOp = "create"
	updateOp = "update"
	deleteOp = "delete"
)

type refreshTickMsg struct{}

type refreshResultMsg struct {
	ticket board.RefreshTicket
	msgs   []models.Message
	err    error
}

type createResultMsg struct {
	msg models.Message
	err error
}

type updateResultMsg struct {
	pending board.PendingUpdate
	msg     models.Message
	err     error
}

type deleteResultMsg struct {
	id  models.ID
	err error
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

// refreshCmd issues the ticket on the update loop; only the request itself
// runs on the command goroutine.
func (m *Model) refreshCmd() tea.Cmd {
	ticket := m.board.BeginRefresh()
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		msgs, err := svc.List(ctx)
		return refreshResultMsg{ticket: ticket, msgs: msgs, err: err}
	}
}

func (m *Model) createCmd(req models.CreateRequest) tea.Cmd {
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		msg, err := svc.Create(ctx, req)
		return createResultMsg{msg: msg, err: err}
	}
}

func (m *Model) updateCmd(pending board.PendingUpdate) tea.Cmd {
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		msg, err := svc.Update(ctx, pending.ID, models.UpdateRequest{Content: pending.Content})
		return updateResultMsg{pending: pending, msg: msg, err: err}
	}
}

func (m *Model) deleteCmd(id models.ID) tea.Cmd {
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		return deleteResultMsg{id: id, err: svc.Delete(ctx, id)}
	}
}
