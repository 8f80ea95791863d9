package dispatcher

import (
	"github.com/atomicstack/fleetpick/internal/backend"
	"github.com/atomicstack/fleetpick/internal/option"
	"github.com/atomicstack/fleetpick/internal/state"
)

type Result struct {
	DatasetUpdated bool
	// FieldsChanged is set when the field list itself differs, which means
	// the host has to remount its controls.
	FieldsChanged bool
	// ValuesCleared lists fields whose committed value no longer exists.
	ValuesCleared []string
	Err           error
}

type Dispatcher struct {
	dataset state.DatasetStore
	values  state.ValueStore
}

func New(d state.DatasetStore, v state.ValueStore) *Dispatcher {
	return &Dispatcher{dataset: d, values: v}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindDataset:
		ds, ok := evt.Data.(option.Dataset)
		if !ok {
			return res
		}
		res.FieldsChanged = !sameFields(d.dataset.Dataset(), ds)
		d.dataset.SetDataset(ds)
		res.ValuesCleared = d.prune(ds)
		res.DatasetUpdated = true
	}
	return res
}

// prune drops committed values that the new dataset no longer offers.
// Clearing a parent can invalidate its dependents, so it repeats until
// nothing changes.
func (d *Dispatcher) prune(ds option.Dataset) []string {
	var cleared []string
	for pass := 0; pass <= len(ds.Fields); pass++ {
		changed := false
		for _, f := range ds.Fields {
			v := d.values.Value(f.ID)
			if v == "" || f.IsText() {
				continue
			}
			if _, ok := option.Find(state.AvailableOptions(f, d.values), v); ok {
				continue
			}
			d.values.Reset(f.ID)
			cleared = append(cleared, f.ID)
			changed = true
		}
		if !changed {
			break
		}
	}
	for id := range d.values.Values() {
		if _, ok := ds.Field(id); !ok {
			d.values.Reset(id)
			cleared = append(cleared, id)
		}
	}
	return cleared
}

func sameFields(a, b option.Dataset) bool {
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		x, y := a.Fields[i], b.Fields[i]
		if x.ID != y.ID || x.Kind != y.Kind || x.DependsOn != y.DependsOn {
			return false
		}
	}
	return true
}
