package option

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Extensions lists the file extensions Load understands.
func Extensions() []string {
	return []string{".yaml", ".yml", ".json", ".toml", ".db", ".sqlite", ".sqlite3"}
}

// Load reads a dataset from path. The format is picked from the extension:
// .yaml/.yml, .json, .toml, or .db/.sqlite/.sqlite3.
func Load(ctx context.Context, path string) (Dataset, error) {
	var (
		ds  Dataset
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		ds, err = loadFile(path, DecodeYAML)
	case ".json":
		ds, err = loadFile(path, DecodeJSON)
	case ".toml":
		ds, err = loadFile(path, DecodeTOML)
	case ".db", ".sqlite", ".sqlite3":
		ds, err = LoadSQLite(ctx, path)
	default:
		return Dataset{}, fmt.Errorf("unsupported options file %q", filepath.Base(path))
	}
	if err != nil {
		return Dataset{}, err
	}
	ds.Normalize()
	if err := ds.Validate(); err != nil {
		return Dataset{}, fmt.Errorf("validate %s: %w", path, err)
	}
	return ds, nil
}

func loadFile(path string, decode func(io.Reader) (Dataset, error)) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open options: %w", err)
	}
	defer f.Close()
	ds, err := decode(f)
	if err != nil {
		return Dataset{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return ds, nil
}

// DecodeYAML parses a YAML document into a dataset.
func DecodeYAML(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		if err == io.EOF {
			return Dataset{}, ErrNoFields
		}
		return Dataset{}, err
	}
	return ds, nil
}

// DecodeJSON parses a JSON document into a dataset.
func DecodeJSON(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		if err == io.EOF {
			return Dataset{}, ErrNoFields
		}
		return Dataset{}, err
	}
	return ds, nil
}

// DecodeTOML parses a TOML document into a dataset. Fields are written as
// [[fields]] tables with nested [[fields.options]].
func DecodeTOML(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}
