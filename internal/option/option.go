package option

import "strings"

// Option is a single selectable entry. Value is expected to be unique within
// the list it belongs to; nothing here deduplicates.
type Option struct {
	Value      string `yaml:"value" json:"value" toml:"value"`
	Label      string `yaml:"label" json:"label" toml:"label"`
	SearchText string `yaml:"search_text,omitempty" json:"search_text,omitempty" toml:"search_text,omitempty"`
	Parent     string `yaml:"parent,omitempty" json:"parent,omitempty" toml:"parent,omitempty"`
}

// SearchKey returns the text the filter matches against.
func (o Option) SearchKey() string {
	if o.SearchText != "" {
		return o.SearchText
	}
	return o.Label
}

// Filter returns the options whose search key contains query, ignoring case.
// The input order is kept. An empty query returns options unchanged.
func Filter(options []Option, query string) []Option {
	if query == "" {
		return options
	}
	needle := strings.ToLower(query)
	filtered := make([]Option, 0, len(options))
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.SearchKey()), needle) {
			filtered = append(filtered, opt)
		}
	}
	return filtered
}

// Count returns len(Filter(options, query)) without allocating.
func Count(options []Option, query string) int {
	if query == "" {
		return len(options)
	}
	needle := strings.ToLower(query)
	n := 0
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.SearchKey()), needle) {
			n++
		}
	}
	return n
}

// Find returns the first option carrying value. The empty value never
// matches: it is the "nothing selected" sentinel.
func Find(options []Option, value string) (Option, bool) {
	if value == "" {
		return Option{}, false
	}
	for _, opt := range options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// ChildrenOf returns the options whose Parent equals parent.
func ChildrenOf(options []Option, parent string) []Option {
	children := make([]Option, 0, len(options))
	for _, opt := range options {
		if opt.Parent == parent {
			children = append(children, opt)
		}
	}
	return children
}

// Clone produces a shallow copy of the provided options.
func Clone(options []Option) []Option {
	if options == nil {
		return nil
	}
	dup := make([]Option, len(options))
	copy(dup, options)
	return dup
}
