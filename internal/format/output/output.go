// Package output renders a submitted form for stdout and the clipboard.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atomicstack/fleetpick/internal/format/table"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts the names used on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
}

// Entry is one submitted field.
type Entry struct {
	Field   string `json:"field" yaml:"field"`
	Label   string `json:"label" yaml:"label"`
	Value   string `json:"value" yaml:"value"`
	Display string `json:"display,omitempty" yaml:"display,omitempty"`
}

// Submission is the full result of a submitted form.
type Submission struct {
	ID      string  `json:"id" yaml:"id"`
	Title   string  `json:"title,omitempty" yaml:"title,omitempty"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Values returns the entries keyed by field id.
func (s Submission) Values() map[string]string {
	out := make(map[string]string, len(s.Entries))
	for _, e := range s.Entries {
		out[e.Field] = e.Value
	}
	return out
}

// Render encodes s in the requested format. The result always ends in a
// newline.
func Render(s Submission, f Format) (string, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return "", fmt.Errorf("output: encode json: %w", err)
		}
		return string(data) + "\n", nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return "", fmt.Errorf("output: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("output: encode yaml: %w", err)
		}
		return buf.String(), nil
	case FormatTable, "":
		return renderTable(s), nil
	}
	return "", fmt.Errorf("output: unknown format %q", f)
}

func renderTable(s Submission) string {
	rows := make([][]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		shown := e.Display
		if shown == "" {
			shown = e.Value
		}
		if shown == "" {
			shown = "-"
		}
		rows = append(rows, []string{e.Label, shown})
	}
	var b strings.Builder
	if s.Title != "" {
		b.WriteString(s.Title)
		b.WriteByte('\n')
	}
	for _, line := range table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft}) {
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	return b.String()
}
