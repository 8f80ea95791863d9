package events

import "github.com/atomicstack/fleetpick/internal/logging"

type SourceTracer struct{}

var Source = SourceTracer{}

func (SourceTracer) Load(path string, fields int) {
	logging.Trace("source.load", map[string]interface{}{"path": path, "fields": fields})
}

func (SourceTracer) Reload(path string, fields int) {
	logging.Trace("source.reload", map[string]interface{}{"path": path, "fields": fields})
}

func (SourceTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("source.error", map[string]interface{}{"path": path, "error": err.Error()})
}
