// Package board holds the client-side state of the message list: the cached
// collection, the single edit session and the most recent error.
//
// A Board is not safe for concurrent use. Network calls happen elsewhere;
// their outcomes are folded in through the Apply methods, all from one loop.
package board

import (
	"errors"
	"sort"
	"time"

	"github.com/tOgg1/msgboard/internal/models"
)

// ErrMessageNotFound is returned when an edit targets an id that is not in
// the local collection.
var ErrMessageNotFound = errors.New("message not found")

// RefreshTicket identifies one collection retrieval. Tickets are ordered by
// issue time; a response is applied only if its ticket is newer than the
// last applied one.
type RefreshTicket struct {
	seq uint64
}

// Seq returns the ticket's sequence number.
func (t RefreshTicket) Seq() uint64 {
	return t.seq
}

// Row is one message as it should be displayed.
type Row struct {
	Message models.Message
	// Content is the draft for the row being edited, else Message.Content.
	Content string
	Editing bool
}

// Board is the message list state.
type Board struct {
	messages []models.Message
	session  Session
	lastErr  string

	issued   uint64
	applied  uint64
	inflight int

	loaded      bool
	lastRefresh time.Time
	now         func() time.Time
}

// New returns an empty board.
func New() *Board {
	return &Board{now: time.Now}
}

// BeginRefresh issues a ticket for a new collection retrieval.
// Overlapping retrievals are allowed.
func (b *Board) BeginRefresh() RefreshTicket {
	b.issued++
	b.inflight++
	return RefreshTicket{seq: b.issued}
}

// ApplyRefresh folds in the outcome of the retrieval identified by ticket.
// On success the collection is replaced wholesale; on failure the error is
// recorded and the previous collection kept. Responses older than the last
// applied one are dropped and ApplyRefresh returns false. The edit session
// is never touched.
func (b *Board) ApplyRefresh(ticket RefreshTicket, msgs []models.Message, err error) bool {
	if b.inflight > 0 {
		b.inflight--
	}
	if ticket.seq <= b.applied {
		return false
	}
	b.applied = ticket.seq

	if err != nil {
		b.recordErr(err)
		return true
	}
	b.messages = append(make([]models.Message, 0, len(msgs)), msgs...)
	b.loaded = true
	b.lastRefresh = b.now()
	return true
}

// ApplyCreate appends the server's record for a successful create. If a poll
// already delivered the same id, that record is replaced instead.
func (b *Board) ApplyCreate(msg models.Message, err error) {
	if err != nil {
		b.recordErr(err)
		return
	}
	if i := b.indexOf(msg.ID); i >= 0 {
		b.messages[i] = msg
		return
	}
	b.messages = append(b.messages, msg)
}

// ApplyDelete removes every record with id after a successful delete.
func (b *Board) ApplyDelete(id models.ID, err error) {
	if err != nil {
		b.recordErr(err)
		return
	}
	kept := b.messages[:0]
	for _, msg := range b.messages {
		if msg.ID != id {
			kept = append(kept, msg)
		}
	}
	b.messages = kept
}

// ApplyUpdate replaces the edited record with the server's copy. A failed
// save only records the error; the session was already closed by CommitEdit.
func (b *Board) ApplyUpdate(pending PendingUpdate, msg models.Message, err error) {
	if err != nil {
		b.recordErr(err)
		return
	}
	for i := range b.messages {
		if b.messages[i].ID == pending.ID {
			b.messages[i] = msg
		}
	}
}

// Rows returns the display projection: ascending by created_at, ties kept in
// arrival order, with the edited row showing the draft.
func (b *Board) Rows() []Row {
	sorted := append([]models.Message(nil), b.messages...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	rows := make([]Row, 0, len(sorted))
	for _, msg := range sorted {
		row := Row{Message: msg, Content: msg.Content}
		if b.session.Active() && msg.ID == b.session.EditingID {
			row.Content = b.session.Draft
			row.Editing = true
		}
		rows = append(rows, row)
	}
	return rows
}

// Messages returns a copy of the cached collection in arrival order.
func (b *Board) Messages() []models.Message {
	return append([]models.Message(nil), b.messages...)
}

// Lookup finds a cached message by id.
func (b *Board) Lookup(id models.ID) (models.Message, bool) {
	if i := b.indexOf(id); i >= 0 {
		return b.messages[i], true
	}
	return models.Message{}, false
}

// Err returns the most recent error text, or "".
func (b *Board) Err() string {
	return b.lastErr
}

// ClearErr dismisses the current error.
func (b *Board) ClearErr() {
	b.lastErr = ""
}

// Loaded reports whether at least one retrieval succeeded.
func (b *Board) Loaded() bool {
	return b.loaded
}

// LastRefresh is when the collection was last replaced.
func (b *Board) LastRefresh() time.Time {
	return b.lastRefresh
}

// InFlight counts retrievals issued but not yet applied or dropped.
func (b *Board) InFlight() int {
	return b.inflight
}

func (b *Board) recordErr(err error) {
	b.lastErr = err.Error()
}

func (b *Board) indexOf(id models.ID) int {
	for i := range b.messages {
		if b.messages[i].ID == id {
			return i
		}
	}
	return -1
}
