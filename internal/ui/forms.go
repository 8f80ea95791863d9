package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/fleetpick/internal/logging/events"
	"github.com/atomicstack/fleetpick/internal/option"
	"github.com/atomicstack/fleetpick/internal/state"
	"github.com/atomicstack/fleetpick/internal/ui/selectbox"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	maxFieldWidth  = 60
	textCharLimit  = 256
	requiredMarker = " *"
)

// field is one mounted form entry. Select fields render through a
// selectbox; text fields through a textinput.
type field struct {
	def   option.Field
	sel   *selectbox.Model
	input textinput.Model
	err   string

	// text field geometry from the last layout pass
	x, y, height int
}

func (f *field) isText() bool {
	return f.sel == nil
}

func (m *Model) mountFields() {
	for _, f := range m.fields {
		if f.sel != nil {
			f.sel.Unmount()
		}
	}
	ds := m.dataset.Dataset()
	m.fields = make([]*field, 0, len(ds.Fields))
	for _, def := range ds.Fields {
		f := &field{def: def}
		if def.IsText() {
			f.input = newTextInput(def, m.values.Value(def.ID))
			f.input.Cursor.SetMode(m.caretMode)
		} else {
			f.sel = selectbox.New(def.ID, m.listeners)
			f.sel.SetStyles(styles)
			f.sel.SetCaretMode(m.caretMode)
		}
		m.fields = append(m.fields, f)
	}
	if m.focus >= len(m.fields) {
		m.focus = max(len(m.fields)-1, 0)
	}
}

// refreshFieldSpecs copies option lists from the store into mounted fields
// whose layout did not change.
func (m *Model) refreshFieldSpecs() {
	for _, f := range m.fields {
		if def, ok := m.dataset.Field(f.def.ID); ok {
			f.def = def
		}
		if f.isText() {
			if v := m.values.Value(f.def.ID); v != f.input.Value() {
				f.input.SetValue(v)
			}
		}
	}
}

func newTextInput(def option.Field, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = def.Placeholder
	ti.CharLimit = textCharLimit
	if value != "" {
		ti.SetValue(value)
		ti.CursorEnd()
	}
	if styles.Filter != nil {
		ti.TextStyle = styles.Filter.Copy()
	}
	if styles.FilterPlaceholder != nil {
		ti.PlaceholderStyle = styles.FilterPlaceholder.Copy()
	}
	return ti
}

func (m *Model) fieldWidth() int {
	if m.width <= 0 {
		return selectbox.DefaultWidth
	}
	return min(m.width-2*marginX, maxFieldWidth)
}

func (m *Model) fieldLabel(f *field) string {
	label := f.def.Label
	if f.def.Required {
		label += requiredMarker
	}
	return label
}

// parentMissing reports whether f depends on a field that has no value yet.
func (m *Model) parentMissing(f *field) (option.Field, bool) {
	if f.def.DependsOn == "" {
		return option.Field{}, false
	}
	parent, ok := m.dataset.Field(f.def.DependsOn)
	if !ok {
		return option.Field{}, false
	}
	return parent, m.values.Value(parent.ID) == ""
}

func (m *Model) selectProps(f *field) selectbox.Props {
	id := f.def.ID
	p := selectbox.Props{
		Options:      state.AvailableOptions(f.def, m.values),
		Value:        m.values.Value(id),
		OnChange:     func(value string) tea.Cmd { return m.applyChange(id, value) },
		Placeholder:  f.def.Placeholder,
		Disabled:     f.def.Disabled,
		Error:        f.err,
		Label:        m.fieldLabel(f),
		MaxDisplayed: f.def.MaxDisplayed,
		Width:        m.fieldWidth(),
	}
	if p.MaxDisplayed <= 0 {
		p.MaxDisplayed = m.maxDisplayed
	}
	if parent, missing := m.parentMissing(f); missing {
		p.Disabled = true
		p.Placeholder = fmt.Sprintf("Select a %s first", strings.ToLower(parent.Label))
	}
	return p
}

func (m *Model) focusedField() *field {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return m.fields[m.focus]
}

func (m *Model) fieldIndex(id string) int {
	for i, f := range m.fields {
		if f.def.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) initialFocus(id string) int {
	if idx := m.fieldIndex(id); idx >= 0 {
		return idx
	}
	for i, f := range m.fields {
		if !f.def.Disabled {
			return i
		}
	}
	return 0
}

// focusField moves keyboard focus to field i. The previous field is blurred
// first, which closes its option list if one is showing.
func (m *Model) focusField(i int) tea.Cmd {
	if i < 0 || i >= len(m.fields) {
		return nil
	}
	if i != m.focus {
		m.blurField(m.focus)
	}
	m.focus = i
	f := m.fields[i]
	events.Form.Focus(f.def.ID)
	if f.isText() {
		return f.input.Focus()
	}
	return f.sel.Focus()
}

func (m *Model) blurField(i int) {
	if i < 0 || i >= len(m.fields) {
		return
	}
	f := m.fields[i]
	if f.isText() {
		f.input.Blur()
		return
	}
	f.sel.Blur()
}

// updateField routes msg to a single field.
func (m *Model) updateField(f *field, msg tea.Msg) tea.Cmd {
	if f.isText() {
		return m.updateTextField(f, msg)
	}
	return f.sel.Update(msg, m.selectProps(f))
}

// broadcast hands msg to every select control and to the focused text
// input. Blink ticks are addressed by id, so the other controls ignore them.
func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.fields))
	for i, f := range m.fields {
		if f.isText() && i != m.focus {
			continue
		}
		if cmd := m.updateField(f, msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}
