package selectbox

import (
	"fmt"
	"strings"

	"github.com/atomicstack/fleetpick/internal/ui/render"
	"github.com/charmbracelet/lipgloss"
)

const (
	clearGlyph        = "✕"
	chevronClosed     = "▾"
	chevronOpen       = "▴"
	itemIndicator     = "▌"
	checkMark         = "✓"
	searchPlaceholder = "Search…"
	noResults         = "No results"
	filterPromptText  = "» "
)

// View renders the control for p. The output has exactly Height(p) rows.
func (m *Model) View(p Props) string {
	p = p.withDefaults()
	r := m.rows(p)
	lines := make([]string, 0, r.height)
	if r.label >= 0 {
		lines = append(lines, render.Render(render.Line{Text: render.Fit(p.Label, p.Width), Style: m.labelStyle()}))
	}
	lines = append(lines, m.triggerLine(p))
	if m.control.Open {
		lines = append(lines, m.filterLine(p.Width))
		lines = append(lines, m.listLines(p, r)...)
		if r.count >= 0 {
			lines = append(lines, render.Render(render.Line{Text: render.Fit(" "+resultCount(r.filtered), p.Width), Style: m.styles.Count}))
		}
	}
	if r.err >= 0 {
		lines = append(lines, render.Render(render.Line{Text: render.Fit(p.Error, p.Width), Style: m.styles.FieldError}))
	}
	return strings.Join(lines, "\n")
}

func resultCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

func (m *Model) labelStyle() *lipgloss.Style {
	if m.focused {
		return m.styles.LabelFocused
	}
	return m.styles.Label
}

func (m *Model) triggerLine(p Props) string {
	text := p.Placeholder
	style := m.styles.Placeholder
	if opt, ok := p.Selected(); ok {
		text = opt.Label
		style = m.triggerStyle(p)
	} else if p.Error != "" && m.styles.TriggerError != nil {
		style = m.styles.TriggerError
	}
	if p.Disabled {
		style = m.styles.Disabled
	}
	clear := " "
	if !p.Disabled && m.canClear(p) {
		clear = clearGlyph
	}
	chevron := chevronClosed
	if m.control.Open {
		chevron = chevronOpen
	}
	row := " " + render.Fit(text, p.Width-triggerChrome) + " " + clear + " " + chevron + " "
	return render.Render(render.Line{Text: row, Style: style})
}

func (m *Model) triggerStyle(p Props) *lipgloss.Style {
	switch {
	case m.control.Open && m.styles.TriggerOpen != nil:
		return m.styles.TriggerOpen
	case p.Error != "" && m.styles.TriggerError != nil:
		return m.styles.TriggerError
	case m.focused && m.styles.TriggerFocused != nil:
		return m.styles.TriggerFocused
	}
	return m.styles.Trigger
}

func (m *Model) listLines(p Props, r rows) []string {
	if r.filtered == 0 {
		return []string{render.Render(render.Line{Text: render.Fit("  "+noResults, p.Width), Style: m.styles.Empty})}
	}
	filtered := m.Filtered(p)
	start := m.control.VisibleStart(len(filtered), p.MaxDisplayed)
	out := make([]string, 0, r.listLen)
	for i := 0; i < r.listLen && start+i < len(filtered); i++ {
		idx := start + i
		opt := filtered[idx]
		mark := "  "
		lineStyle := m.styles.Item
		if opt.Value != "" && opt.Value == p.Value {
			mark = checkMark + " "
			if m.styles.CurrentItem != nil {
				lineStyle = m.styles.CurrentItem
			}
		}
		indicatorStyle := m.styles.ItemIndicator
		if idx == m.control.Highlight {
			indicatorStyle = m.styles.SelectedItemIndicator
			lineStyle = m.styles.SelectedItem
		}
		out = append(out, render.Render(render.Line{
			Text:          render.Fit(itemIndicator+" "+mark+opt.Label, p.Width),
			Style:         lineStyle,
			PrefixStyle:   indicatorStyle,
			HighlightFrom: 1,
		}))
	}
	return out
}

func (m *Model) filterLine(width int) string {
	prompt := filterPromptText
	if m.styles.FilterPrompt != nil {
		prompt = m.styles.FilterPrompt.Render(prompt)
	}
	avail := width - render.Width(filterPromptText)
	query := []rune(m.control.Query)
	if len(query) == 0 {
		placeholder := []rune(render.Fit(searchPlaceholder, avail))
		caret := m.renderCaret(string(placeholder[:1]), m.styles.FilterPlaceholder)
		return prompt + caret + styleText(m.styles.FilterPlaceholder, string(placeholder[1:]))
	}
	before, caretRune, after := queryWindow(query, m.control.QueryCursorPos(), avail)
	used := render.Width(before) + render.Width(caretRune) + render.Width(after)
	if pad := avail - used; pad > 0 {
		after += render.Fit("", pad)
	}
	return prompt + styleText(m.styles.Filter, before) + m.renderCaret(caretRune, m.styles.Filter) + styleText(m.styles.Filter, after)
}

// queryWindow returns the part of query that fits in avail cells. The window
// scrolls so the caret at pos is always inside it.
func queryWindow(query []rune, pos, avail int) (before, caret, after string) {
	caret = " "
	if pos < len(query) {
		caret = string(query[pos])
	}
	cw := render.Width(caret)
	start := 0
	for start < pos && render.Width(string(query[start:pos]))+cw > avail {
		start++
	}
	before = string(query[start:pos])
	used := render.Width(before) + cw
	var b strings.Builder
	for i := pos + 1; i < len(query); i++ {
		w := render.Width(string(query[i]))
		if used+w > avail {
			break
		}
		b.WriteRune(query[i])
		used += w
	}
	return before, caret, b.String()
}

func (m *Model) renderCaret(char string, text *lipgloss.Style) string {
	if char == "" {
		char = " "
	}
	m.caret.SetChar(char)
	base := lipgloss.NewStyle()
	if text != nil {
		base = text.Copy()
	}
	base = base.Inline(true)
	if m.caret.Blink || !m.focused {
		return base.Render(char)
	}
	if m.styles.Cursor != nil {
		return base.Inherit(m.styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}

func styleText(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}
