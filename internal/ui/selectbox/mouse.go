package selectbox

import (
	"github.com/atomicstack/fleetpick/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleMouse(msg tea.MouseMsg, p Props) tea.Cmd {
	if p.Disabled || msg.Action != tea.MouseActionPress {
		return nil
	}
	if !m.Contains(msg.X, msg.Y) {
		return nil
	}
	col := msg.X - m.x
	row := msg.Y - m.y
	r := m.rows(p)

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if !m.control.Open || row < r.listTop || row >= r.listTop+r.listLen {
			return nil
		}
		delta := 1
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		if m.control.ScrollBy(r.filtered, p.MaxDisplayed, delta) {
			events.Select.Scroll(m.id, m.control.ViewportOffset)
		}
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	switch {
	case row == r.trigger:
		if m.canClear(p) && inClearZone(col, p.Width) {
			return m.clear(p)
		}
		if m.control.Open {
			m.close(events.CloseReasonToggle)
			return nil
		}
		return m.activate(p)
	case m.control.Open && row >= r.listTop && row < r.listTop+r.listLen:
		filtered := m.Filtered(p)
		idx := m.control.VisibleStart(len(filtered), p.MaxDisplayed) + (row - r.listTop)
		if idx < 0 || idx >= len(filtered) {
			return nil
		}
		return m.commit(filtered[idx], p)
	}
	return nil
}
