// Package selectbox implements a filterable single-selection control for
// Bubble Tea programs.
//
// The control is controlled by its host: the options, the selected value
// and the change callback arrive as Props on every call, and the Model only
// keeps transient interaction state (open or closed, query text, highlighted
// row). A commit or a clear calls Props.OnChange and nothing else; the host
// must pass the new value back in on the next call for the trigger to show
// it.
//
// Keys are only handled while the control has focus. Mouse presses are
// handled when they land inside the bounds set by the last Layout call, and
// an open control closes when a press lands anywhere else, through the
// outside.Registry shared with the host.
package selectbox

import (
	"github.com/atomicstack/fleetpick/internal/logging/events"
	"github.com/atomicstack/fleetpick/internal/option"
	"github.com/atomicstack/fleetpick/internal/theme"
	"github.com/atomicstack/fleetpick/internal/ui/outside"
	"github.com/atomicstack/fleetpick/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultPlaceholder  = "Select…"
	DefaultMaxDisplayed = 8
	DefaultWidth        = 40
	minWidth            = 12
)

// Props is the host-owned configuration, supplied on every call.
type Props struct {
	Options      []option.Option
	Value        string
	OnChange     func(value string) tea.Cmd
	Placeholder  string
	Disabled     bool
	Error        string
	Label        string
	MaxDisplayed int
	Width        int
}

func (p Props) withDefaults() Props {
	if p.Placeholder == "" {
		p.Placeholder = DefaultPlaceholder
	}
	if p.MaxDisplayed <= 0 {
		p.MaxDisplayed = DefaultMaxDisplayed
	}
	if p.Width <= 0 {
		p.Width = DefaultWidth
	}
	if p.Width < minWidth {
		p.Width = minWidth
	}
	return p
}

// Selected returns the option matching Value, if any.
func (p Props) Selected() (option.Option, bool) {
	return option.Find(p.Options, p.Value)
}

// Model is one mounted control.
type Model struct {
	id         string
	control    *state.Control
	listeners  *outside.Registry
	sub        *outside.Subscription
	caret      cursor.Model
	caretDirty bool
	focused    bool
	styles     *theme.Styles

	x, y      int
	bounds    outside.Rect
	lastCount int
}

// New mounts a control. listeners is the registry the host feeds mouse
// presses through; a nil registry gives the control a private one.
func New(id string, listeners *outside.Registry) *Model {
	if listeners == nil {
		listeners = outside.NewRegistry()
	}
	m := &Model{
		id:        id,
		control:   state.NewControl(),
		listeners: listeners,
		styles:    theme.Default(),
	}
	c := cursor.New()
	c.SetChar(" ")
	m.caret = c
	return m
}

// ID returns the identifier used in trace output.
func (m *Model) ID() string {
	return m.id
}

// SetStyles swaps the style set used by View.
func (m *Model) SetStyles(s *theme.Styles) {
	if s == nil {
		s = theme.Default()
	}
	m.styles = s
}

// SetCaretMode switches the query caret between blinking, static and
// hidden.
func (m *Model) SetCaretMode(mode cursor.Mode) tea.Cmd {
	return m.caret.SetMode(mode)
}

// IsOpen reports whether the option list is showing.
func (m *Model) IsOpen() bool {
	return m.control.Open
}

// Focused reports whether the control receives keys.
func (m *Model) Focused() bool {
	return m.focused
}

// State returns a copy of the interaction state.
func (m *Model) State() state.Control {
	return *m.control
}

// Filtered returns the options matching the current query.
func (m *Model) Filtered(p Props) []option.Option {
	return option.Filter(p.Options, m.control.Query)
}

// Focus gives the control keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	if m.control.Open {
		return m.caret.Focus()
	}
	return nil
}

// Blur removes keyboard focus. An open control closes without committing.
func (m *Model) Blur() {
	m.focused = false
	m.close(events.CloseReasonBlur)
}

// Unmount releases everything the control holds outside itself.
func (m *Model) Unmount() {
	m.focused = false
	m.close(events.CloseReasonUnmount)
}

// Update handles one message. The returned command includes whatever
// Props.OnChange returned.
func (m *Model) Update(msg tea.Msg, p Props) tea.Cmd {
	p = p.withDefaults()
	cmds := make([]tea.Cmd, 0, 3)
	var cmd tea.Cmd
	m.caret, cmd = m.caret.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.sync(p)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.focused && !p.Disabled {
			if cmd := m.handleKey(msg, p); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	case tea.MouseMsg:
		if cmd := m.handleMouse(msg, p); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m.finish(cmds)
}

// sync reconciles transient state with props that may have changed since
// the last call.
func (m *Model) sync(p Props) {
	if !m.control.Open {
		return
	}
	if p.Disabled {
		m.close(events.CloseReasonDisable)
		return
	}
	n := option.Count(p.Options, m.control.Query)
	if n != m.lastCount || m.control.Highlight >= n {
		m.afterHighlightChange(p, n)
	}
}

func (m *Model) finish(cmds []tea.Cmd) tea.Cmd {
	if m.caretDirty {
		m.caretDirty = false
		m.caret.Blink = false
		if cmd := m.caret.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// activate opens the list and takes keyboard focus, so a control opened by
// the pointer accepts typed queries straight away.
func (m *Model) activate(p Props) tea.Cmd {
	if p.Disabled || !m.control.Activate() {
		return nil
	}
	m.focused = true
	m.sub.Release()
	m.sub = m.listeners.Subscribe(m.Bounds, func(tea.MouseMsg) tea.Cmd {
		m.close(events.CloseReasonOutside)
		return nil
	})
	n := len(p.Options)
	m.afterHighlightChange(p, n)
	events.Select.Open(m.id, n)
	return m.caret.Focus()
}

func (m *Model) close(reason events.CloseReason) {
	m.sub.Release()
	m.sub = nil
	if !m.control.Close() {
		return
	}
	m.lastCount = 0
	m.caret.Blur()
	events.Select.Close(m.id, reason)
}

// afterHighlightChange runs after any transition that moved the highlight
// or changed the filtered set.
func (m *Model) afterHighlightChange(p Props, n int) {
	m.lastCount = n
	m.control.EnsureHighlightVisible(n, p.MaxDisplayed)
}

func (m *Model) commit(opt option.Option, p Props) tea.Cmd {
	events.Select.Commit(m.id, opt.Value, opt.Label)
	var cmd tea.Cmd
	if p.OnChange != nil {
		cmd = p.OnChange(opt.Value)
	}
	m.close(events.CloseReasonCommit)
	return cmd
}

func (m *Model) commitHighlighted(p Props) tea.Cmd {
	filtered := m.Filtered(p)
	h := m.control.Highlight
	if h < 0 || h >= len(filtered) {
		return nil
	}
	return m.commit(filtered[h], p)
}

func (m *Model) clear(p Props) tea.Cmd {
	if p.Disabled || !m.canClear(p) {
		return nil
	}
	events.Select.Clear(m.id, p.Value)
	if p.OnChange == nil {
		return nil
	}
	return p.OnChange("")
}

func (m *Model) canClear(p Props) bool {
	if p.Value == "" {
		return false
	}
	_, ok := p.Selected()
	return ok
}
