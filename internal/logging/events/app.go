package events

import "github.com/atomicstack/fleetpick/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(submitted bool) {
	logging.Trace("app.exit", map[string]interface{}{"submitted": submitted})
}
