package state

import "github.com/atomicstack/fleetpick/internal/option"

// ValueStore holds the committed value of every field. It is the single
// source of truth for selections; controls only ever read from it.
type ValueStore interface {
	Value(id string) string
	SetValue(id, value string) bool
	Reset(id string) bool
	Values() map[string]string
}

type valueStore struct {
	values map[string]string
}

func NewValueStore() ValueStore {
	return &valueStore{values: map[string]string{}}
}

func (s *valueStore) Value(id string) string {
	return s.values[id]
}

// SetValue stores value and reports whether it differed from the old one.
func (s *valueStore) SetValue(id, value string) bool {
	if s.values[id] == value {
		return false
	}
	if value == "" {
		delete(s.values, id)
		return true
	}
	s.values[id] = value
	return true
}

func (s *valueStore) Reset(id string) bool {
	return s.SetValue(id, "")
}

func (s *valueStore) Values() map[string]string {
	dup := make(map[string]string, len(s.values))
	for k, v := range s.values {
		dup[k] = v
	}
	return dup
}

// AvailableOptions returns the options f offers given the committed values.
// A dependent field only offers the children of its parent's value, and
// nothing while the parent is empty.
func AvailableOptions(f option.Field, values ValueStore) []option.Option {
	if f.DependsOn == "" {
		return option.Clone(f.Options)
	}
	parent := values.Value(f.DependsOn)
	if parent == "" {
		return nil
	}
	return option.ChildrenOf(f.Options, parent)
}
