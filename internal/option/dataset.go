package option

import (
	"errors"
	"fmt"
	"strings"
)

// Kind distinguishes searchable selections from free-text inputs.
type Kind string

const (
	KindSelect Kind = "select"
	KindText   Kind = "text"
)

// Field describes one entry of the host form.
type Field struct {
	ID           string   `yaml:"id" json:"id" toml:"id"`
	Label        string   `yaml:"label" json:"label" toml:"label"`
	Placeholder  string   `yaml:"placeholder,omitempty" json:"placeholder,omitempty" toml:"placeholder,omitempty"`
	Kind         Kind     `yaml:"kind,omitempty" json:"kind,omitempty" toml:"kind,omitempty"`
	Required     bool     `yaml:"required,omitempty" json:"required,omitempty" toml:"required,omitempty"`
	DependsOn    string   `yaml:"depends_on,omitempty" json:"depends_on,omitempty" toml:"depends_on,omitempty"`
	MaxDisplayed int      `yaml:"max_displayed,omitempty" json:"max_displayed,omitempty" toml:"max_displayed,omitempty"`
	Disabled     bool     `yaml:"disabled,omitempty" json:"disabled,omitempty" toml:"disabled,omitempty"`
	Value        string   `yaml:"value,omitempty" json:"value,omitempty" toml:"value,omitempty"`
	Options      []Option `yaml:"options,omitempty" json:"options,omitempty" toml:"options,omitempty"`
}

// IsText reports whether the field is rendered as a free-text input.
func (f Field) IsText() bool {
	return f.Kind == KindText
}

// Dataset is the full option set loaded from a source.
type Dataset struct {
	Title  string  `yaml:"title,omitempty" json:"title,omitempty" toml:"title,omitempty"`
	Fields []Field `yaml:"fields" json:"fields" toml:"fields"`
}

var ErrNoFields = errors.New("dataset defines no fields")

// Field looks up a field by id.
func (d Dataset) Field(id string) (Field, bool) {
	for _, f := range d.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Normalize fills in defaults that sources may leave out.
func (d *Dataset) Normalize() {
	for i := range d.Fields {
		f := &d.Fields[i]
		f.ID = strings.TrimSpace(f.ID)
		if f.Kind == "" {
			f.Kind = KindSelect
		}
		if strings.TrimSpace(f.Label) == "" {
			f.Label = f.ID
		}
	}
}

// Validate checks the structural rules of the dataset. Duplicate option
// values are allowed through; the form copes with them.
func (d Dataset) Validate() error {
	if len(d.Fields) == 0 {
		return ErrNoFields
	}
	seen := make(map[string]Field, len(d.Fields))
	for i, f := range d.Fields {
		if f.ID == "" {
			return fmt.Errorf("field %d: id required", i)
		}
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("field %q: duplicate id", f.ID)
		}
		switch f.Kind {
		case KindSelect, KindText:
		default:
			return fmt.Errorf("field %q: unknown kind %q", f.ID, f.Kind)
		}
		if f.MaxDisplayed < 0 {
			return fmt.Errorf("field %q: max_displayed must be >= 0 (got %d)", f.ID, f.MaxDisplayed)
		}
		seen[f.ID] = f
	}
	for _, f := range d.Fields {
		if f.DependsOn == "" {
			continue
		}
		parent, ok := seen[f.DependsOn]
		if !ok {
			return fmt.Errorf("field %q: depends on unknown field %q", f.ID, f.DependsOn)
		}
		if parent.ID == f.ID {
			return fmt.Errorf("field %q: depends on itself", f.ID)
		}
		if parent.IsText() || f.IsText() {
			return fmt.Errorf("field %q: dependencies are only supported between select fields", f.ID)
		}
		visited := map[string]struct{}{f.ID: {}}
		for next := f.DependsOn; next != ""; next = seen[next].DependsOn {
			if _, loop := visited[next]; loop {
				return fmt.Errorf("field %q: dependency cycle through %q", f.ID, next)
			}
			visited[next] = struct{}{}
		}
	}
	return nil
}
