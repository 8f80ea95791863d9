package ui

import (
	"github.com/atomicstack/fleetpick/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	cancelReasonInterrupt = "interrupt"
	cancelReasonEscape    = "escape"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.submitting {
		if keyMsg.String() == "ctrl+c" {
			return m.cancel(cancelReasonInterrupt)
		}
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return m.cancel(cancelReasonInterrupt)
	case "ctrl+s":
		return m.submit()
	case "tab":
		return m.moveFocus(1)
	case "shift+tab":
		return m.moveFocus(-1)
	}

	f := m.focusedField()
	if f == nil {
		if keyMsg.Type == tea.KeyEsc {
			return m.cancel(cancelReasonEscape)
		}
		return nil
	}
	if f.isText() {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return m.cancel(cancelReasonEscape)
		case tea.KeyEnter:
			return m.moveFocus(1)
		}
		return m.updateField(f, keyMsg)
	}
	// an open control consumes esc itself
	if keyMsg.Type == tea.KeyEsc && !f.sel.IsOpen() {
		return m.cancel(cancelReasonEscape)
	}
	return m.updateField(f, keyMsg)
}

// moveFocus steps through the fields in order, skipping disabled ones, and
// wraps at both ends.
func (m *Model) moveFocus(delta int) tea.Cmd {
	n := len(m.fields)
	if n == 0 {
		return nil
	}
	idx := m.focus
	for step := 0; step < n; step++ {
		idx = (idx + delta + n) % n
		f := m.fields[idx]
		if f.def.Disabled {
			continue
		}
		if !f.isText() {
			if _, missing := m.parentMissing(f); missing {
				continue
			}
		}
		return m.focusField(idx)
	}
	return nil
}

func (m *Model) cancel(reason string) tea.Cmd {
	for _, f := range m.fields {
		if f.sel != nil {
			f.sel.Unmount()
		}
	}
	m.cancelled = true
	events.Form.Cancel(reason)
	return tea.Quit
}
