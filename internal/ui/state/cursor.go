package state

// The highlight helpers take n, the size of the currently filtered list.

// MoveHighlightDown moves the highlight one row down without wrapping.
func (c *Control) MoveHighlightDown(n int) bool {
	if !c.Open || n == 0 {
		return false
	}
	return c.moveHighlightBy(n, 1)
}

// MoveHighlightUp moves the highlight one row up without wrapping.
func (c *Control) MoveHighlightUp(n int) bool {
	if !c.Open || n == 0 {
		return false
	}
	return c.moveHighlightBy(n, -1)
}

// MoveHighlightHome moves the highlight to the first row.
func (c *Control) MoveHighlightHome(n int) bool {
	if !c.Open || n == 0 {
		return false
	}
	old := c.Highlight
	c.Highlight = 0
	return old != c.Highlight
}

// MoveHighlightEnd moves the highlight to the last row.
func (c *Control) MoveHighlightEnd(n int) bool {
	if !c.Open || n == 0 {
		return false
	}
	old := c.Highlight
	c.Highlight = n - 1
	return old != c.Highlight
}

// MoveHighlightPageUp moves the highlight up by one page.
func (c *Control) MoveHighlightPageUp(n, maxVisible int) bool {
	if !c.Open || n == 0 {
		return false
	}
	return c.moveHighlightBy(n, -pageSize(n, maxVisible))
}

// MoveHighlightPageDown moves the highlight down by one page.
func (c *Control) MoveHighlightPageDown(n, maxVisible int) bool {
	if !c.Open || n == 0 {
		return false
	}
	return c.moveHighlightBy(n, pageSize(n, maxVisible))
}

func (c *Control) moveHighlightBy(n, delta int) bool {
	old := c.Highlight
	c.Highlight = clamp(c.Highlight+delta, 0, n-1)
	return c.Highlight != old
}

// ClampHighlight pulls the highlight back into [0, n-1]. An empty list
// parks it at 0.
func (c *Control) ClampHighlight(n int) bool {
	old := c.Highlight
	if n == 0 {
		c.Highlight = 0
	} else {
		c.Highlight = clamp(c.Highlight, 0, n-1)
	}
	return old != c.Highlight
}

func pageSize(total, maxVisible int) int {
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureHighlightVisible adjusts the viewport so the highlighted row is on
// screen, scrolling the minimum distance needed.
func (c *Control) EnsureHighlightVisible(n, maxVisible int) {
	c.ClampHighlight(n)
	if n == 0 || maxVisible <= 0 {
		c.ViewportOffset = 0
		return
	}
	maxOffset := n - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	c.ViewportOffset = clamp(c.ViewportOffset, 0, maxOffset)
	if c.Highlight < c.ViewportOffset {
		c.ViewportOffset = c.Highlight
	}
	upper := c.ViewportOffset + maxVisible - 1
	if c.Highlight > upper {
		c.ViewportOffset = clamp(c.Highlight-maxVisible+1, 0, maxOffset)
	}
}

// ScrollBy moves the viewport by delta rows without touching the highlight.
func (c *Control) ScrollBy(n, maxVisible, delta int) bool {
	if !c.Open || n == 0 || maxVisible <= 0 {
		return false
	}
	maxOffset := n - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	old := c.ViewportOffset
	c.ViewportOffset = clamp(c.ViewportOffset+delta, 0, maxOffset)
	return old != c.ViewportOffset
}

// VisibleStart returns the first visible row for a list of n rows without
// mutating the control.
func (c *Control) VisibleStart(n, maxVisible int) int {
	if n == 0 || maxVisible <= 0 {
		return 0
	}
	maxOffset := n - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	return clamp(c.ViewportOffset, 0, maxOffset)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
