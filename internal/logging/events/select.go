package events

import "github.com/atomicstack/fleetpick/internal/logging"

type SelectTracer struct{}

// CloseReason records why an open control closed.
type CloseReason string

const (
	CloseReasonCommit  CloseReason = "commit"
	CloseReasonEscape  CloseReason = "escape"
	CloseReasonOutside CloseReason = "outside"
	CloseReasonToggle  CloseReason = "toggle"
	CloseReasonBlur    CloseReason = "blur"
	CloseReasonDisable CloseReason = "disabled"
	CloseReasonUnmount CloseReason = "unmount"
)

var Select = SelectTracer{}

func (SelectTracer) Open(control string, options int) {
	logging.Trace("select.open", map[string]interface{}{"control": control, "options": options})
}

func (SelectTracer) Close(control string, reason CloseReason) {
	logging.Trace("select.close", map[string]interface{}{"control": control, "reason": string(reason)})
}

func (SelectTracer) Query(control, query string, matches int) {
	logging.Trace("select.query", map[string]interface{}{"control": control, "query": query, "matches": matches})
}

func (SelectTracer) QueryCursor(control string, pos int) {
	logging.Trace("select.query.cursor", map[string]interface{}{"control": control, "cursor": pos})
}

func (SelectTracer) Highlight(control string, index int) {
	logging.Trace("select.highlight", map[string]interface{}{"control": control, "index": index})
}

func (SelectTracer) Scroll(control string, offset int) {
	logging.Trace("select.scroll", map[string]interface{}{"control": control, "offset": offset})
}

func (SelectTracer) Commit(control, value, label string) {
	logging.Trace("select.commit", map[string]interface{}{"control": control, "value": value, "label": label})
}

func (SelectTracer) Clear(control, previous string) {
	logging.Trace("select.clear", map[string]interface{}{"control": control, "previous": previous})
}
