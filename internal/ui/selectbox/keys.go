package selectbox

import (
	"unicode"

	"github.com/atomicstack/fleetpick/internal/logging/events"
	"github.com/atomicstack/fleetpick/internal/option"
	tea "github.com/charmbracelet/bubbletea"
)

func isSpace(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeySpace {
		return true
	}
	return msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) == 1 && msg.Runes[0] == ' '
}

func (m *Model) handleKey(msg tea.KeyMsg, p Props) tea.Cmd {
	if !m.control.Open {
		switch {
		case msg.Type == tea.KeyEnter, msg.Type == tea.KeyDown, isSpace(msg):
			return m.activate(p)
		}
		return nil
	}

	n := option.Count(p.Options, m.control.Query)
	switch msg.Type {
	case tea.KeyEsc:
		m.close(events.CloseReasonEscape)
		return nil
	case tea.KeyEnter:
		return m.commitHighlighted(p)
	case tea.KeyDown, tea.KeyCtrlN:
		m.noteHighlight(p, n, m.control.MoveHighlightDown(n))
		return nil
	case tea.KeyUp, tea.KeyCtrlP:
		m.noteHighlight(p, n, m.control.MoveHighlightUp(n))
		return nil
	case tea.KeyPgDown:
		m.noteHighlight(p, n, m.control.MoveHighlightPageDown(n, p.MaxDisplayed))
		return nil
	case tea.KeyPgUp:
		m.noteHighlight(p, n, m.control.MoveHighlightPageUp(n, p.MaxDisplayed))
		return nil
	case tea.KeyHome:
		m.noteHighlight(p, n, m.control.MoveHighlightHome(n))
		return nil
	case tea.KeyEnd:
		m.noteHighlight(p, n, m.control.MoveHighlightEnd(n))
		return nil
	}
	m.handleQueryKey(msg, p)
	return nil
}

func (m *Model) noteHighlight(p Props, n int, moved bool) {
	if !moved {
		return
	}
	m.afterHighlightChange(p, n)
	events.Select.Highlight(m.id, m.control.Highlight)
}

// handleQueryKey applies text editing keys to the query. Any change of the
// query text puts the highlight back on the first match.
func (m *Model) handleQueryKey(msg tea.KeyMsg, p Props) {
	before := m.control.QueryCursorPos()
	var changed, moved bool
	switch msg.String() {
	case "ctrl+u":
		changed = m.control.ClearQuery()
	case "ctrl+w":
		changed = m.control.DeleteQueryWordBackward()
	case "ctrl+a":
		moved = m.control.MoveQueryCursorStart()
	case "ctrl+e":
		moved = m.control.MoveQueryCursorEnd()
	case "alt+b":
		moved = m.control.MoveQueryCursorWordBackward()
	case "alt+f":
		moved = m.control.MoveQueryCursorWordForward()
	default:
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyCtrlH:
			changed = m.control.DeleteQueryRuneBackward()
		case tea.KeyDelete:
			changed = m.control.DeleteQueryRuneForward()
		case tea.KeyLeft:
			moved = m.control.MoveQueryCursorRuneBackward()
		case tea.KeyRight:
			moved = m.control.MoveQueryCursorRuneForward()
		case tea.KeySpace:
			changed = m.control.InsertQueryText(" ")
		case tea.KeyRunes:
			if msg.Alt || !printable(msg.Runes) {
				return
			}
			changed = m.control.InsertQueryText(string(msg.Runes))
		}
	}
	if changed {
		n := option.Count(p.Options, m.control.Query)
		m.afterHighlightChange(p, n)
		events.Select.Query(m.id, m.control.Query, n)
	} else if moved {
		events.Select.QueryCursor(m.id, m.control.QueryCursor)
	}
	if before != m.control.QueryCursorPos() {
		m.caretDirty = true
	}
}

func printable(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
