package selectbox

import (
	"github.com/atomicstack/fleetpick/internal/option"
	"github.com/atomicstack/fleetpick/internal/ui/outside"
)

// rows maps each part of the control to its row offset from the origin.
// Parts that are not shown hold -1.
type rows struct {
	label    int
	trigger  int
	filter   int
	listTop  int
	listLen  int
	count    int
	err      int
	height   int
	filtered int
}

func (m *Model) rows(p Props) rows {
	r := rows{label: -1, filter: -1, listTop: -1, count: -1, err: -1}
	y := 0
	if p.Label != "" {
		r.label = y
		y++
	}
	r.trigger = y
	y++
	if m.control.Open {
		n := option.Count(p.Options, m.control.Query)
		r.filtered = n
		r.filter = y
		y++
		r.listTop = y
		r.listLen = min(n, p.MaxDisplayed)
		if r.listLen < 1 {
			// the "no results" row
			r.listLen = 1
		}
		y += r.listLen
		if m.control.Query != "" && n > 0 {
			r.count = y
			y++
		}
	}
	if p.Error != "" {
		r.err = y
		y++
	}
	r.height = y
	return r
}

// Height returns the number of rows View will produce for p.
func (m *Model) Height(p Props) int {
	return m.rows(p.withDefaults()).height
}

// Layout records where the host draws the control. It must be called with
// the same props as the following View so mouse hit testing lines up.
func (m *Model) Layout(x, y int, p Props) {
	p = p.withDefaults()
	m.x, m.y = x, y
	m.bounds = outside.Rect{X: x, Y: y, Width: p.Width, Height: m.rows(p).height}
}

// Bounds returns the screen rectangle recorded by the last Layout call.
func (m *Model) Bounds() outside.Rect {
	return m.bounds
}

// Contains reports whether a screen cell belongs to the control.
func (m *Model) Contains(x, y int) bool {
	return m.bounds.Contains(x, y)
}

// The trigger row is drawn as
//
//	" " + text + " " + clear + " " + chevron + " "
//
// with text padded to width-6 cells, which puts the clear glyph at column
// width-4 and the chevron at width-2.
const triggerChrome = 6

func clearColumn(width int) int {
	return width - 4
}

func chevronColumn(width int) int {
	return width - 2
}

// inClearZone widens the clear glyph's hit area by one cell on each side.
func inClearZone(col, width int) bool {
	c := clearColumn(width)
	return col >= c-1 && col <= c+1
}
