package ui

import (
	"fmt"
	"path/filepath"

	"github.com/atomicstack/fleetpick/internal/backend"
	"github.com/atomicstack/fleetpick/internal/logging"
	"github.com/atomicstack/fleetpick/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent folds a reloaded dataset into the form. Controls read
// their options from the stores on every call, so an open list picks up the
// new options and clamps its highlight on the next message.
func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		logging.Error(fmt.Errorf("reload %s: %w", m.sourcePath, res.Err))
		events.Source.Error(m.sourcePath, res.Err)
		m.errMsg = fmt.Sprintf("Reload failed: %v", res.Err)
		return nil
	}
	if !res.DatasetUpdated {
		return nil
	}
	ds := m.dataset.Dataset()
	events.Source.Reload(m.sourcePath, len(ds.Fields))
	m.errMsg = ""

	var cmd tea.Cmd
	if res.FieldsChanged {
		focused := m.FocusedField()
		m.mountFields()
		m.focus = m.initialFocus(focused)
		cmd = m.focusField(m.focus)
	} else {
		m.refreshFieldSpecs()
	}
	for _, id := range res.ValuesCleared {
		events.Form.Change(id, "", nil)
	}

	options := 0
	for _, f := range ds.Fields {
		options += len(f.Options)
	}
	info := fmt.Sprintf("Reloaded %s: %s options", filepath.Base(m.sourcePath), humanize.Comma(int64(options)))
	if n := len(res.ValuesCleared); n > 0 {
		info += fmt.Sprintf(", %d selection(s) cleared", n)
	}
	m.setInfo(info)
	return cmd
}
