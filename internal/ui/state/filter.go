package state

import "unicode"

// SetQuery replaces the query text and caret position. A change of the text
// resets the highlight and the viewport to the top of the filtered list;
// a caret-only change leaves them alone. It reports whether the text changed.
func (c *Control) SetQuery(query string, cursor int) bool {
	if !c.Open {
		return false
	}
	changed := query != c.Query
	c.Query = query
	runes := []rune(c.Query)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	c.QueryCursor = cursor
	if changed {
		c.Highlight = 0
		c.ViewportOffset = 0
	}
	return changed
}

// QueryCursorPos returns the rune offset of the query caret.
func (c *Control) QueryCursorPos() int {
	runes := []rune(c.Query)
	if c.QueryCursor < 0 {
		return 0
	}
	if c.QueryCursor > len(runes) {
		return len(runes)
	}
	return c.QueryCursor
}

// InsertQueryText inserts text into the query at the caret.
func (c *Control) InsertQueryText(text string) bool {
	if !c.Open || text == "" {
		return false
	}
	insert := []rune(text)
	runes := []rune(c.Query)
	pos := c.QueryCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	return c.SetQuery(string(updated), pos+len(insert))
}

// DeleteQueryRuneBackward deletes the rune before the caret.
func (c *Control) DeleteQueryRuneBackward() bool {
	runes := []rune(c.Query)
	pos := c.QueryCursorPos()
	if !c.Open || pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1:pos-1], runes[pos:]...)
	return c.SetQuery(string(updated), pos-1)
}

// DeleteQueryRuneForward deletes the rune under the caret.
func (c *Control) DeleteQueryRuneForward() bool {
	runes := []rune(c.Query)
	pos := c.QueryCursorPos()
	if !c.Open || pos >= len(runes) {
		return false
	}
	updated := append(runes[:pos:pos], runes[pos+1:]...)
	return c.SetQuery(string(updated), pos)
}

// DeleteQueryWordBackward deletes the word preceding the caret.
func (c *Control) DeleteQueryWordBackward() bool {
	runes := []rune(c.Query)
	pos := c.QueryCursorPos()
	if !c.Open || pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i:i], runes[pos:]...)
	return c.SetQuery(string(updated), i)
}

// ClearQuery empties the query.
func (c *Control) ClearQuery() bool {
	if c.Query == "" {
		return false
	}
	return c.SetQuery("", 0)
}

// MoveQueryCursorStart moves the caret to the start of the query.
func (c *Control) MoveQueryCursorStart() bool {
	if c.QueryCursorPos() == 0 {
		return false
	}
	c.QueryCursor = 0
	return true
}

// MoveQueryCursorEnd moves the caret to the end of the query.
func (c *Control) MoveQueryCursorEnd() bool {
	end := len([]rune(c.Query))
	if c.QueryCursorPos() == end {
		return false
	}
	c.QueryCursor = end
	return true
}

// MoveQueryCursorWordBackward moves the caret one word backward.
func (c *Control) MoveQueryCursorWordBackward() bool {
	runes := []rune(c.Query)
	pos := c.QueryCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	if i == pos {
		return false
	}
	c.QueryCursor = i
	return true
}

// MoveQueryCursorWordForward moves the caret one word forward.
func (c *Control) MoveQueryCursorWordForward() bool {
	runes := []rune(c.Query)
	pos := c.QueryCursorPos()
	if pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	c.QueryCursor = i
	return true
}

// MoveQueryCursorRuneBackward moves the caret one rune backward.
func (c *Control) MoveQueryCursorRuneBackward() bool {
	if c.QueryCursorPos() == 0 {
		return false
	}
	c.QueryCursor = c.QueryCursorPos() - 1
	return true
}

// MoveQueryCursorRuneForward moves the caret one rune forward.
func (c *Control) MoveQueryCursorRuneForward() bool {
	pos := c.QueryCursorPos()
	if pos >= len([]rune(c.Query)) {
		return false
	}
	c.QueryCursor = pos + 1
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
