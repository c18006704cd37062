package styles

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const (
	// TimestampLayout renders created_at in local time.
	TimestampLayout = "2006-01-02 15:04:05"

	editMarker = "Edit"
	saveMarker = "Save"
	cursor     = "▌"
)

// MessageStyles contains pre-built styles for message rows.
type MessageStyles struct {
	Theme      Theme
	UserColors *UserColorMapper

	Timestamp lipgloss.Style
	Body      lipgloss.Style
	Draft     lipgloss.Style
	Cursor    lipgloss.Style
	Marker    lipgloss.Style
	Selected  lipgloss.Style
}

// NewMessageStyles builds a reusable style set for message rows.
func NewMessageStyles(theme Theme, mapper *UserColorMapper) MessageStyles {
	if mapper == nil {
		mapper = NewUserColorMapperWithPalette(theme.UserPalette)
	}

	return MessageStyles{
		Theme:      theme,
		UserColors: mapper,
		Timestamp:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Base.Muted)),
		Body:       lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Base.Foreground)),
		Draft: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Base.Foreground)).
			Background(lipgloss.Color(theme.Edit.Row)),
		Cursor: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Edit.Cursor)).Blink(true),
		Marker: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Edit.Marker)).Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Chrome.SelectedItem)).
			Bold(true),
	}
}

// RenderHeader renders the username and the local creation time.
// A zero timestamp renders as "-".
func (s MessageStyles) RenderHeader(username string, created time.Time) string {
	name := strings.TrimSpace(username)
	if name == "" {
		name = "anonymous"
	}

	when := "-"
	if !created.IsZero() {
		when = created.Local().Format(TimestampLayout)
	}
	return s.UserColors.Foreground(name).Render(name) + " " + s.Timestamp.Render(when)
}

// RenderBody renders wrapped content.
func (s MessageStyles) RenderBody(body string, width int) string {
	return s.Body.Render(WrapBody(body, width))
}

// RenderDraft renders the draft under edit with a trailing cursor.
func (s MessageStyles) RenderDraft(draft string, width int, focused bool) string {
	text := WrapBody(draft, width-1)
	if focused {
		return s.Draft.Render(text) + s.Cursor.Render(cursor)
	}
	return s.Draft.Render(text)
}

// RenderMarker renders the Edit/Save toggle label for a row.
func (s MessageStyles) RenderMarker(editing bool) string {
	if editing {
		return s.Marker.Render("[" + saveMarker + "]")
	}
	return s.Timestamp.Render("[" + editMarker + "]")
}

// WrapBody word-wraps each line of body to width. Non-positive widths
// leave body untouched.
func WrapBody(body string, width int) string {
	if width <= 0 {
		return body
	}

	parts := strings.Split(body, "\n")
	for i := range parts {
		parts[i] = wordwrap.String(parts[i], width)
	}
	return strings.Join(parts, "\n")
}
