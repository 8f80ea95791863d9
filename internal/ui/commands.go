package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/fleetpick/internal/format/output"
	"github.com/atomicstack/fleetpick/internal/logging"
	"github.com/atomicstack/fleetpick/internal/logging/events"
	"github.com/atomicstack/fleetpick/internal/option"
	"github.com/atomicstack/fleetpick/internal/ui/command"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// writeClipboard is swapped out by tests.
var writeClipboard = clipboard.WriteAll

const submitActionID = "form:submit"

// applyChange is the OnChange side of every control. It stores the value,
// resets fields that depend on it and clears the field's error.
func (m *Model) applyChange(id, value string) tea.Cmd {
	if !m.values.SetValue(id, value) {
		return nil
	}
	reset := m.resetDependents(id)
	if idx := m.fieldIndex(id); idx >= 0 && value != "" {
		m.fields[idx].err = ""
	}
	m.errMsg = ""
	m.clearInfo()
	events.Form.Change(id, value, reset)
	return nil
}

// resetDependents clears every field that depends on id, transitively, and
// returns the ids it cleared.
func (m *Model) resetDependents(id string) []string {
	var reset []string
	queue := []string{id}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, f := range m.fields {
			if f.def.DependsOn != parent {
				continue
			}
			if m.values.Reset(f.def.ID) {
				reset = append(reset, f.def.ID)
			}
			queue = append(queue, f.def.ID)
		}
	}
	return reset
}

// validate marks required fields that have no value and returns their ids.
func (m *Model) validate() []string {
	var missing []string
	for _, f := range m.fields {
		f.err = ""
		if !f.def.Required || m.values.Value(f.def.ID) != "" {
			continue
		}
		verb := "Select"
		if f.isText() {
			verb = "Enter"
		}
		f.err = fmt.Sprintf("%s a %s", verb, strings.ToLower(f.def.Label))
		missing = append(missing, f.def.ID)
	}
	return missing
}

func (m *Model) submit() tea.Cmd {
	if missing := m.validate(); len(missing) > 0 {
		events.Form.SubmitInvalid(missing)
		m.errMsg = fmt.Sprintf("%d required field(s) missing", len(missing))
		if idx := m.fieldIndex(missing[0]); idx >= 0 {
			return m.focusField(idx)
		}
		return nil
	}
	m.blurField(m.focus)
	m.errMsg = ""
	m.submitting = true
	return m.bus.Execute(command.Request{
		ID:      submitActionID,
		Label:   "Submit",
		Handler: m.submitAction,
		Payload: m.submission(),
	})
}

func (m *Model) submission() output.Submission {
	ds := m.dataset.Dataset()
	sub := output.Submission{
		ID:      uuid.NewString(),
		Title:   ds.Title,
		Entries: make([]output.Entry, 0, len(m.fields)),
	}
	for _, f := range m.fields {
		value := m.values.Value(f.def.ID)
		entry := output.Entry{Field: f.def.ID, Label: f.def.Label, Value: value}
		if !f.isText() {
			if opt, ok := option.Find(f.def.Options, value); ok {
				entry.Display = opt.Label
			}
		}
		sub.Entries = append(sub.Entries, entry)
	}
	return sub
}

type submitResultMsg struct {
	submission output.Submission
	output     string
	copied     bool
	err        error
}

// submitAction renders the submission off the update loop. A clipboard
// failure is logged and reported but does not fail the submit.
func (m *Model) submitAction(payload interface{}) tea.Cmd {
	sub, ok := payload.(output.Submission)
	if !ok {
		return nil
	}
	format := m.outputFormat
	copyResult := m.clipboard
	return func() tea.Msg {
		rendered, err := output.Render(sub, format)
		if err != nil {
			return submitResultMsg{submission: sub, err: err}
		}
		res := submitResultMsg{submission: sub, output: rendered}
		if copyResult {
			if err := writeClipboard(rendered); err != nil {
				logging.Error(fmt.Errorf("copy to clipboard: %w", err))
			} else {
				res.copied = true
			}
		}
		return res
	}
}

func (m *Model) handleSubmitResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(submitResultMsg)
	if !ok {
		return nil
	}
	m.submitting = false
	if result.err != nil {
		m.errMsg = result.err.Error()
		m.forceClearInfo()
		events.Action.Error(result.err)
		return m.focusField(m.focus)
	}
	m.result = result.output
	m.submitted = true
	events.Form.Submit(result.submission.Values())
	info := fmt.Sprintf("Submitted %s", result.submission.ID)
	if result.copied {
		info += " (copied to clipboard)"
	}
	if m.verbose {
		m.setInfo(info)
	}
	events.Action.Success(info)
	for _, f := range m.fields {
		if f.sel != nil {
			f.sel.Unmount()
		}
	}
	return tea.Quit
}
