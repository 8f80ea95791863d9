// Package outside tracks pointer presses that land outside an open overlay.
//
// An overlay subscribes while it is open and releases the subscription on
// every path that closes it. The host feeds each mouse press through
// Dispatch before routing it anywhere else.
package outside

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Rect is a screen region in cell coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) falls inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Handler runs when a press lands outside the subscriber's bounds.
type Handler func(tea.MouseMsg) tea.Cmd

// Registry holds the live subscriptions. It is used from the Bubble Tea
// update loop only and is not safe for concurrent use.
type Registry struct {
	subs []*Subscription
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Subscription is one acquired listener. Release it exactly when the
// overlay closes; extra calls are ignored.
type Subscription struct {
	registry *Registry
	bounds   func() Rect
	handler  Handler
	active   bool
}

// Subscribe installs a listener. bounds is evaluated on every press so the
// subscriber may move or resize while open.
func (r *Registry) Subscribe(bounds func() Rect, handler Handler) *Subscription {
	sub := &Subscription{
		registry: r,
		bounds:   bounds,
		handler:  handler,
		active:   true,
	}
	r.subs = append(r.subs, sub)
	return sub
}

// Dispatch notifies every subscriber whose bounds do not contain a left
// button press. Handlers may release their own or other subscriptions.
func (r *Registry) Dispatch(msg tea.MouseMsg) tea.Cmd {
	if r == nil || len(r.subs) == 0 {
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	snapshot := make([]*Subscription, len(r.subs))
	copy(snapshot, r.subs)
	var cmds []tea.Cmd
	for _, sub := range snapshot {
		if !sub.active {
			continue
		}
		if sub.bounds != nil && sub.bounds().Contains(msg.X, msg.Y) {
			continue
		}
		if sub.handler == nil {
			continue
		}
		if cmd := sub.handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Len returns the number of live subscriptions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.subs)
}

// Release removes the subscription from its registry.
func (s *Subscription) Release() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	r := s.registry
	for i, sub := range r.subs {
		if sub == s {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			break
		}
	}
}

// Active reports whether the subscription is still installed.
func (s *Subscription) Active() bool {
	return s != nil && s.active
}
