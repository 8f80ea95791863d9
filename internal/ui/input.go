package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// updateTextField feeds msg to a free-text field and stores the edited
// value. Keys only arrive here while the field has focus.
func (m *Model) updateTextField(f *field, msg tea.Msg) tea.Cmd {
	if f.def.Disabled {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
				return m.applyChange(f.def.ID, "")
			}
			return nil
		}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	value := strings.TrimSpace(f.input.Value())
	if value != m.values.Value(f.def.ID) {
		if next := m.applyChange(f.def.ID, value); next != nil {
			return tea.Batch(cmd, next)
		}
	}
	return cmd
}
