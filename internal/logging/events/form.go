package events

import "github.com/atomicstack/fleetpick/internal/logging"

type FormTracer struct{}

var Form = FormTracer{}

func (FormTracer) Focus(field string) {
	logging.Trace("form.focus", map[string]interface{}{"field": field})
}

func (FormTracer) Change(field, value string, reset []string) {
	logging.Trace("form.change", map[string]interface{}{"field": field, "value": value, "reset": reset})
}

func (FormTracer) Submit(values map[string]string) {
	logging.Trace("form.submit", map[string]interface{}{"values": values})
}

func (FormTracer) SubmitInvalid(missing []string) {
	logging.Trace("form.submit.invalid", map[string]interface{}{"missing": missing})
}

func (FormTracer) Cancel(reason string) {
	logging.Trace("form.cancel", map[string]interface{}{"reason": reason})
}
