package state

// Control is the transient interaction state of one selection control. It
// never holds the selected value; that belongs to the host.
type Control struct {
	Open           bool
	Query          string
	QueryCursor    int
	Highlight      int
	ViewportOffset int
}

// NewControl returns a closed control with an empty query.
func NewControl() *Control {
	return &Control{}
}

// Activate opens the control with a fresh query and the first row
// highlighted. It reports false when the control was already open.
func (c *Control) Activate() bool {
	if c.Open {
		return false
	}
	c.Open = true
	c.reset()
	return true
}

// Close returns the control to its resting state. Closing always drops the
// query. It reports false when the control was already closed.
func (c *Control) Close() bool {
	if !c.Open {
		c.reset()
		return false
	}
	c.Open = false
	c.reset()
	return true
}

func (c *Control) reset() {
	c.Query = ""
	c.QueryCursor = 0
	c.Highlight = 0
	c.ViewportOffset = 0
}
