package option

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

const (
	selectFields = `SELECT id, COALESCE(label, ''), COALESCE(placeholder, ''), COALESCE(kind, ''),
	required, COALESCE(depends_on, ''), max_displayed, disabled, COALESCE(value, '')
	FROM fields ORDER BY position, rowid`
	selectOptions = `SELECT field_id, value, label, COALESCE(search_text, ''), COALESCE(parent, '')
	FROM options ORDER BY field_id, position, rowid`
	selectTitle = `SELECT value FROM meta WHERE key = 'title'`
	hasMeta     = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'meta'`
)

// LoadSQLite reads a dataset from the fields/options tables of a SQLite
// database. The database is opened read-only.
func LoadSQLite(ctx context.Context, path string) (Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return Dataset{}, fmt.Errorf("open options: %w", err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return Dataset{}, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer db.Close()

	ds := Dataset{}
	index := map[string]int{}

	rows, err := db.QueryContext(ctx, selectFields)
	if err != nil {
		return Dataset{}, fmt.Errorf("query fields: %w", err)
	}
	for rows.Next() {
		var (
			f        Field
			kind     string
			required int
			disabled int
		)
		if err := rows.Scan(&f.ID, &f.Label, &f.Placeholder, &kind, &required, &f.DependsOn, &f.MaxDisplayed, &disabled, &f.Value); err != nil {
			rows.Close()
			return Dataset{}, fmt.Errorf("scan field: %w", err)
		}
		f.Kind = Kind(kind)
		f.Required = required != 0
		f.Disabled = disabled != 0
		index[f.ID] = len(ds.Fields)
		ds.Fields = append(ds.Fields, f)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return Dataset{}, fmt.Errorf("read fields: %w", err)
	}
	rows.Close()

	rows, err = db.QueryContext(ctx, selectOptions)
	if err != nil {
		return Dataset{}, fmt.Errorf("query options: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			fieldID string
			opt     Option
		)
		if err := rows.Scan(&fieldID, &opt.Value, &opt.Label, &opt.SearchText, &opt.Parent); err != nil {
			return Dataset{}, fmt.Errorf("scan option: %w", err)
		}
		idx, ok := index[fieldID]
		if !ok {
			return Dataset{}, fmt.Errorf("option %q references unknown field %q", opt.Value, fieldID)
		}
		ds.Fields[idx].Options = append(ds.Fields[idx].Options, opt)
	}
	if err := rows.Err(); err != nil {
		return Dataset{}, fmt.Errorf("read options: %w", err)
	}

	title, err := readTitle(ctx, db)
	if err != nil {
		return Dataset{}, err
	}
	ds.Title = title
	return ds, nil
}

func readTitle(ctx context.Context, db *sql.DB) (string, error) {
	var tables int
	if err := db.QueryRowContext(ctx, hasMeta).Scan(&tables); err != nil {
		return "", fmt.Errorf("inspect schema: %w", err)
	}
	if tables == 0 {
		return "", nil
	}
	var title sql.NullString
	switch err := db.QueryRowContext(ctx, selectTitle).Scan(&title); err {
	case nil:
		return title.String, nil
	case sql.ErrNoRows:
		return "", nil
	default:
		return "", fmt.Errorf("query title: %w", err)
	}
}
