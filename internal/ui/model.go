package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/fleetpick/internal/backend"
	"github.com/atomicstack/fleetpick/internal/data/dispatcher"
	"github.com/atomicstack/fleetpick/internal/format/output"
	"github.com/atomicstack/fleetpick/internal/option"
	"github.com/atomicstack/fleetpick/internal/state"
	"github.com/atomicstack/fleetpick/internal/theme"
	"github.com/atomicstack/fleetpick/internal/ui/command"
	"github.com/atomicstack/fleetpick/internal/ui/outside"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a new Model.
type Options struct {
	Dataset      option.Dataset
	SourcePath   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	Output       output.Format
	Clipboard    bool
	MaxDisplayed int
	Focus        string
	StaticCaret  bool
	Watcher      *backend.Watcher
}

// Model implements the Bubble Tea model for the selection form.
type Model struct {
	fields []*field
	focus  int

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	sourcePath   string
	outputFormat output.Format
	clipboard    bool
	maxDisplayed int
	caretMode    cursor.Mode

	submitting bool
	submitted  bool
	cancelled  bool
	result     string

	backend    *backend.Watcher
	listeners  *outside.Registry
	handlers   map[reflect.Type]msgHandler
	bus        *command.Bus
	dataset    state.DatasetStore
	values     state.ValueStore
	dispatcher *dispatcher.Dispatcher
}

// NewModel builds the form for opts.Dataset. Initial values declared by the
// dataset are applied and then checked against the available options, so a
// stale default never reaches a control.
func NewModel(opts Options) *Model {
	dataset := state.NewDatasetStore(opts.Dataset)
	values := state.NewValueStore()
	for _, f := range opts.Dataset.Fields {
		if f.Value != "" {
			values.SetValue(f.ID, f.Value)
		}
	}
	format := opts.Output
	if format == "" {
		format = output.FormatTable
	}
	m := &Model{
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		sourcePath:   opts.SourcePath,
		outputFormat: format,
		clipboard:    opts.Clipboard,
		maxDisplayed: opts.MaxDisplayed,
		caretMode:    cursor.CursorBlink,
		backend:      opts.Watcher,
		listeners:    outside.NewRegistry(),
		bus:          command.New(),
		dataset:      dataset,
		values:       values,
		dispatcher:   dispatcher.New(dataset, values),
	}
	if opts.StaticCaret {
		m.caretMode = cursor.CursorStatic
	}
	m.dispatcher.Handle(backend.Event{Kind: backend.KindDataset, Data: opts.Dataset})
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.mountFields()
	m.focus = m.initialFocus(opts.Focus)
	m.focusField(m.focus)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.focusField(m.focus); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	// caret blinks and anything else the controls may be waiting on
	if cmd := m.broadcast(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(submitResultMsg{}):   m.handleSubmitResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Result returns the rendered submission once the form has been submitted.
func (m *Model) Result() (string, bool) {
	return m.result, m.submitted
}

// Cancelled reports whether the user quit without submitting.
func (m *Model) Cancelled() bool {
	return m.cancelled
}

// Values returns a copy of the committed field values.
func (m *Model) Values() map[string]string {
	return m.values.Values()
}

// FocusedField returns the id of the field holding keyboard focus.
func (m *Model) FocusedField() string {
	if f := m.focusedField(); f != nil {
		return f.def.ID
	}
	return ""
}
