package state

import "github.com/atomicstack/fleetpick/internal/option"

// DatasetStore holds the option dataset currently shown by the form.
type DatasetStore interface {
	Dataset() option.Dataset
	SetDataset(option.Dataset)
	Field(id string) (option.Field, bool)
	Options(id string) []option.Option
	Version() int
}

type datasetStore struct {
	dataset option.Dataset
	version int
}

func NewDatasetStore(ds option.Dataset) DatasetStore {
	s := &datasetStore{}
	s.SetDataset(ds)
	return s
}

func (s *datasetStore) Dataset() option.Dataset {
	return cloneDataset(s.dataset)
}

func (s *datasetStore) SetDataset(ds option.Dataset) {
	s.dataset = cloneDataset(ds)
	s.version++
}

func (s *datasetStore) Field(id string) (option.Field, bool) {
	f, ok := s.dataset.Field(id)
	if !ok {
		return option.Field{}, false
	}
	f.Options = option.Clone(f.Options)
	return f, true
}

func (s *datasetStore) Options(id string) []option.Option {
	f, ok := s.dataset.Field(id)
	if !ok {
		return nil
	}
	return option.Clone(f.Options)
}

func (s *datasetStore) Version() int {
	return s.version
}

func cloneDataset(ds option.Dataset) option.Dataset {
	out := option.Dataset{Title: ds.Title}
	if len(ds.Fields) == 0 {
		return out
	}
	out.Fields = make([]option.Field, len(ds.Fields))
	for i, f := range ds.Fields {
		f.Options = option.Clone(f.Options)
		out.Fields[i] = f
	}
	return out
}
