package ui

import tea "github.com/charmbracelet/bubbletea"

// handleMouseMsg routes a pointer event. Presses go to the outside-click
// registry first so an open list closes before anything else reacts, then
// to the field under the pointer using the geometry of the frame the user
// actually saw.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || m.submitting {
		return nil
	}
	m.layout()
	cmds := make([]tea.Cmd, 0, 3)
	if mouse.Action == tea.MouseActionPress {
		if cmd := m.listeners.Dispatch(mouse); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	idx := m.fieldAt(mouse.X, mouse.Y)
	if idx < 0 {
		return tea.Batch(cmds...)
	}
	f := m.fields[idx]
	if mouse.Action == tea.MouseActionPress && mouse.Button == tea.MouseButtonLeft && idx != m.focus && !f.def.Disabled {
		if cmd := m.focusField(idx); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if !f.isText() {
		if cmd := f.sel.Update(mouse, m.selectProps(f)); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) fieldAt(x, y int) int {
	for i, f := range m.fields {
		if f.isText() {
			if y >= f.y && y < f.y+f.height && x >= f.x && x < f.x+m.fieldWidth() {
				return i
			}
			continue
		}
		if f.sel.Contains(x, y) {
			return i
		}
	}
	return -1
}
