// Package render turns styled rows into terminal output. Widths are
// measured in display cells so wide runes line up with mouse columns.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// Line is one output row. When HighlightFrom is positive the first
// HighlightFrom runes are drawn with PrefixStyle and the rest with Style.
type Line struct {
	Text          string
	Style         *lipgloss.Style
	PrefixStyle   *lipgloss.Style
	HighlightFrom int
	Raw           bool // Text already carries ANSI escapes
}

// Lines joins the rendered rows with newlines.
func Lines(lines []Line) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Render(line)
	}
	return strings.Join(out, "\n")
}

// Render styles a single row.
func Render(line Line) string {
	text := line.Text
	if line.Raw {
		return text
	}
	runes := []rune(text)
	if line.HighlightFrom > 0 && line.HighlightFrom < len(runes) {
		head := string(runes[:line.HighlightFrom])
		tail := string(runes[line.HighlightFrom:])
		if line.PrefixStyle != nil {
			head = line.PrefixStyle.Render(head)
		}
		if line.Style != nil {
			tail = line.Style.Render(tail)
		}
		return head + tail
	}
	if line.Style != nil {
		return line.Style.Render(text)
	}
	return text
}

// ApplyWidth truncates every row to width cells.
func ApplyWidth(lines []Line, width int) []Line {
	if width <= 0 {
		return lines
	}
	result := make([]Line, len(lines))
	for i, line := range lines {
		if line.Raw {
			if lipgloss.Width(line.Text) > width {
				line.Text = truncate.StringWithTail(line.Text, uint(width-1), "…")
			}
		} else {
			line.Text = Truncate(line.Text, width)
		}
		result[i] = line
	}
	return result
}

// LimitHeight keeps at most height rows, replacing the last kept row with
// an ellipsis when rows were dropped.
func LimitHeight(lines []Line, height, width int) []Line {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []Line{{Text: Truncate("…", width)}}
	}
	trimmed := make([]Line, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, Line{Text: Truncate("…", width)})
	return trimmed
}

// Truncate shortens text to at most width cells, ending in an ellipsis
// when anything was cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return text
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return runewidth.Truncate(text, 1, "")
	}
	return runewidth.Truncate(text, width, "…")
}

// Fit truncates or pads text to exactly width cells.
func Fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(Truncate(text, width), width)
}

// Width returns the display width of plain text.
func Width(text string) int {
	return runewidth.StringWidth(text)
}
