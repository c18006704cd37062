package board

import "github.com/tOgg1/msgboard/internal/models"

// Session is the in-progress edit of at most one message.
type Session struct {
	EditingID models.ID
	Draft     string
}

// Active reports whether an edit is open.
func (s Session) Active() bool {
	return !s.EditingID.IsZero()
}

// PendingUpdate is a save that still has to be sent to the service.
type PendingUpdate struct {
	ID      models.ID
	Content string
}

// Session returns the current edit session.
func (b *Board) Session() Session {
	return b.session
}

// BeginEdit opens an edit on id, seeded from its current content. Editing a
// different message discards the open draft. Calling it on the message that
// is already being edited saves instead: committed is true and pending holds
// the update to send.
func (b *Board) BeginEdit(id models.ID) (pending PendingUpdate, committed bool, err error) {
	if b.session.Active() && b.session.EditingID == id {
		pending, committed = b.CommitEdit()
		return pending, committed, nil
	}
	msg, ok := b.Lookup(id)
	if !ok {
		return PendingUpdate{}, false, ErrMessageNotFound
	}
	b.session = Session{EditingID: id, Draft: msg.Content}
	return PendingUpdate{}, false, nil
}

// UpdateDraft replaces the draft text. It has no effect without a session.
func (b *Board) UpdateDraft(text string) {
	if !b.session.Active() {
		return
	}
	b.session.Draft = text
}

// CommitEdit closes the session immediately and returns the update to send.
// ok is false when no edit was open.
func (b *Board) CommitEdit() (pending PendingUpdate, ok bool) {
	if !b.session.Active() {
		return PendingUpdate{}, false
	}
	pending = PendingUpdate{ID: b.session.EditingID, Content: b.session.Draft}
	b.session = Session{}
	return pending, true
}
