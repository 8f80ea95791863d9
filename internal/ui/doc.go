// Package ui contains the Bubble Tea program that hosts the selection form.
// The Model owns every committed value and hands each control its props on
// every call; the controls themselves (internal/ui/selectbox) only keep
// open/closed state, the query and the highlighted row.
//
// Message flow:
//   - Bubble Tea invokes Model.Update, which routes each tea.Msg through a
//     typed handler registry (keys, mouse, resize, submit results, backend
//     events). Anything without a handler, such as caret blink ticks, is
//     broadcast to the mounted controls.
//   - Keys go to the focused field only. tab and shift+tab move focus, ctrl+s
//     submits, esc on a closed control and ctrl+c quit without output.
//   - Mouse presses go to the outside-click registry first, then to the field
//     under the pointer. Both use the geometry computed by layout, which View
//     also uses, so hit testing matches the last frame.
//
// State ownership:
//   - Field values live in internal/state.ValueStore. A control's OnChange
//     lands in applyChange, which stores the value and resets dependent
//     fields; the control sees the new value on its next call.
//   - The option dataset lives in internal/state.DatasetStore and is replaced
//     by the dispatcher when the backend watcher reloads the source file.
//   - Submission runs through the internal/ui/command bus so rendering and
//     clipboard access happen off the update loop.
package ui
