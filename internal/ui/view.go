package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/fleetpick/internal/ui/render"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	marginX    = 1
	footerText = "tab move  enter select  esc close  ctrl+s submit"
)

// layout assigns screen origins to every field. View and the mouse handler
// both call it, so hit testing always matches the last drawn frame.
func (m *Model) layout() int {
	y := 0
	if m.dataset.Dataset().Title != "" {
		y += 2
	}
	for i, f := range m.fields {
		if i > 0 {
			y++
		}
		if f.isText() {
			f.x, f.y = marginX, y
			f.height = m.textFieldHeight(f)
			y += f.height
			continue
		}
		p := m.selectProps(f)
		f.sel.Layout(marginX, y, p)
		y += f.sel.Height(p)
	}
	return y
}

func (m *Model) textFieldHeight(f *field) int {
	h := 2
	if f.err != "" {
		h++
	}
	return h
}

// View implements tea.Model.
func (m *Model) View() string {
	m.layout()
	lines := make([]render.Line, 0, 32)
	if title := m.dataset.Dataset().Title; title != "" {
		lines = append(lines, render.Line{Text: title, Style: styles.Title}, render.Line{})
	}
	margin := strings.Repeat(" ", marginX)
	for i, f := range m.fields {
		if i > 0 {
			lines = append(lines, render.Line{})
		}
		var block string
		if f.isText() {
			block = m.viewTextField(f, i == m.focus)
		} else {
			block = f.sel.View(m.selectProps(f))
		}
		for _, row := range strings.Split(block, "\n") {
			lines = append(lines, render.Line{Text: margin + row, Raw: true})
		}
	}
	if len(m.fields) == 0 {
		lines = append(lines, render.Line{Text: margin + "(no fields)", Style: styles.Info})
	}

	lines = append(lines, render.Line{})
	switch {
	case m.errMsg != "":
		lines = append(lines, render.Line{Text: fmt.Sprintf("Error: %s", m.errMsg), Style: styles.Error})
	case m.currentInfo() != "":
		lines = append(lines, render.Line{Text: m.currentInfo(), Style: styles.Info})
	default:
		lines = append(lines, render.Line{})
	}
	if m.showFooter {
		lines = append(lines, render.Line{Text: footerText, Style: styles.Footer})
	}
	lines = render.LimitHeight(lines, m.height, m.width)
	lines = render.ApplyWidth(lines, m.width)
	return render.Lines(lines)
}

func (m *Model) viewTextField(f *field, focused bool) string {
	width := m.fieldWidth()
	labelStyle := styles.Label
	if focused {
		labelStyle = styles.LabelFocused
	}
	if f.def.Disabled {
		labelStyle = styles.Disabled
	}
	f.input.Width = max(width-2, 1)
	rows := []string{
		render.Render(render.Line{Text: render.Fit(m.fieldLabel(f), width), Style: labelStyle}),
		" " + f.input.View(),
	}
	if f.err != "" {
		rows = append(rows, render.Render(render.Line{Text: render.Fit(f.err, width), Style: styles.FieldError}))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	// controls re-clamp their viewport against the new props
	return m.broadcast(msg)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
