package option

import (
	"context"
	"database/sql"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/fleetpick/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
title: Payment register
fields:
  - id: vehicle
    label: Vehicle
    placeholder: Search by plate...
    required: true
    options:
      - value: "1"
        label: ABC-123 Toyota Yaris
        search_text: ABC-123 Toyota Yaris 2019
      - value: "2"
        label: XYZ-987 Nissan Versa
  - id: contract
    label: Contract
    depends_on: vehicle
    max_displayed: 5
    options:
      - value: "10"
        label: "#10 - ABC-123"
        parent: "1"
  - id: amount
    label: Amount
    kind: text
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "fleet.yaml", sampleYAML)
	ds, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Payment register", ds.Title)
	require.Len(t, ds.Fields, 3)

	vehicle := ds.Fields[0]
	assert.Equal(t, KindSelect, vehicle.Kind)
	assert.True(t, vehicle.Required)
	require.Len(t, vehicle.Options, 2)
	assert.Equal(t, "ABC-123 Toyota Yaris 2019", vehicle.Options[0].SearchText)

	contract, ok := ds.Field("contract")
	require.True(t, ok)
	assert.Equal(t, "vehicle", contract.DependsOn)
	assert.Equal(t, 5, contract.MaxDisplayed)
	assert.Equal(t, "1", contract.Options[0].Parent)

	amount, ok := ds.Field("amount")
	require.True(t, ok)
	assert.True(t, amount.IsText())
}

func TestLoadJSON(t *testing.T) {
	body := `{"fields": [{"id": "client", "label": "Client", "options": [{"value": "7", "label": "Rosa Diaz", "search_text": "Rosa Diaz 44556677"}]}]}`
	path := writeFile(t, "clients.json", body)
	ds, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, ds.Fields, 1)
	assert.Equal(t, "Rosa Diaz 44556677", ds.Fields[0].Options[0].SearchText)
}

func TestLoadTOML(t *testing.T) {
	body := `title = "Clients"

[[fields]]
id = "client"
label = "Client"
required = true

[[fields.options]]
value = "7"
label = "Rosa Diaz"
search_text = "Rosa Diaz 44556677"

[[fields.options]]
value = "8"
label = "Jake Peralta"
`
	ds, err := Load(context.Background(), writeFile(t, "clients.toml", body))
	require.NoError(t, err)
	assert.Equal(t, "Clients", ds.Title)
	require.Len(t, ds.Fields, 1)
	assert.True(t, ds.Fields[0].Required)
	require.Len(t, ds.Fields[0].Options, 2)
	assert.Equal(t, "Rosa Diaz 44556677", ds.Fields[0].Options[0].SearchText)
	assert.Equal(t, "Jake Peralta", ds.Fields[0].Options[1].Label)
}

func TestLoadSampleDataset(t *testing.T) {
	ds, err := Load(context.Background(), testutil.Testdata(t, "fleet.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Payment register", ds.Title)
	contract, ok := ds.Field("contract")
	require.True(t, ok)
	assert.Equal(t, "client", contract.DependsOn)
}

func TestLoadKnowsEveryListedExtension(t *testing.T) {
	for _, ext := range Extensions() {
		_, err := Load(context.Background(), writeFile(t, "broken"+ext, "not a dataset"))
		require.Error(t, err, ext)
		assert.NotContains(t, err.Error(), "unsupported", ext)
	}
}

func TestLoadDefaultsLabelAndKind(t *testing.T) {
	path := writeFile(t, "bare.yml", "fields:\n  - id: client\n")
	ds, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "client", ds.Fields[0].Label)
	assert.Equal(t, KindSelect, ds.Fields[0].Kind)
}

func TestLoadRejectsUnknownKeysAndExtensions(t *testing.T) {
	_, err := Load(context.Background(), writeFile(t, "typo.yaml", "fields:\n  - id: a\n    lable: A\n"))
	require.Error(t, err)

	_, err = Load(context.Background(), writeFile(t, "fleet.ini", "x = 1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")

	_, err = Load(context.Background(), writeFile(t, "typo.toml", "[[fields]]\nid = \"a\"\nlable = \"A\"\n"))
	require.Error(t, err)

	_, err = Load(context.Background(), writeFile(t, "empty.yaml", ""))
	require.ErrorIs(t, err, ErrNoFields)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		ds   Dataset
		want string
	}{
		{"no fields", Dataset{}, "no fields"},
		{"missing id", Dataset{Fields: []Field{{Kind: KindSelect}}}, "id required"},
		{"duplicate id", Dataset{Fields: []Field{{ID: "a", Kind: KindSelect}, {ID: "a", Kind: KindSelect}}}, "duplicate"},
		{"unknown kind", Dataset{Fields: []Field{{ID: "a", Kind: "radio"}}}, "unknown kind"},
		{"negative rows", Dataset{Fields: []Field{{ID: "a", Kind: KindSelect, MaxDisplayed: -1}}}, "max_displayed"},
		{"unknown parent", Dataset{Fields: []Field{{ID: "a", Kind: KindSelect, DependsOn: "b"}}}, "unknown field"},
		{"text parent", Dataset{Fields: []Field{{ID: "a", Kind: KindText}, {ID: "b", Kind: KindSelect, DependsOn: "a"}}}, "only supported"},
		{"cycle", Dataset{Fields: []Field{{ID: "a", Kind: KindSelect, DependsOn: "b"}, {ID: "b", Kind: KindSelect, DependsOn: "a"}}}, "cycle"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.ds.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	ok := Dataset{Fields: []Field{
		{ID: "vehicle", Kind: KindSelect, Options: []Option{{Value: "1"}, {Value: "1"}}},
		{ID: "contract", Kind: KindSelect, DependsOn: "vehicle"},
	}}
	assert.NoError(t, ok.Validate(), "duplicate option values are tolerated")
}

// sqliteSchema creates the tables LoadSQLite reads.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS fields (
	id            TEXT PRIMARY KEY,
	position      INTEGER NOT NULL DEFAULT 0,
	label         TEXT,
	placeholder   TEXT,
	kind          TEXT,
	required      INTEGER NOT NULL DEFAULT 0,
	depends_on    TEXT,
	max_displayed INTEGER NOT NULL DEFAULT 0,
	disabled      INTEGER NOT NULL DEFAULT 0,
	value         TEXT
);
CREATE TABLE IF NOT EXISTS options (
	field_id    TEXT NOT NULL REFERENCES fields(id),
	position    INTEGER NOT NULL DEFAULT 0,
	value       TEXT NOT NULL,
	label       TEXT NOT NULL,
	search_text TEXT,
	parent      TEXT
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT
);
`

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(sqliteSchema)
	require.NoError(t, err)

	stmts := []string{
		`INSERT INTO meta (key, value) VALUES ('title', 'Subcontracts')`,
		`INSERT INTO fields (id, position, label, required) VALUES ('vehicle', 0, 'Vehicle', 1)`,
		`INSERT INTO fields (id, position, label, depends_on, max_displayed) VALUES ('contract', 1, 'Contract', 'vehicle', 4)`,
		`INSERT INTO fields (id, position, label, kind) VALUES ('amount', 2, 'Amount', 'text')`,
		`INSERT INTO options (field_id, position, value, label, search_text) VALUES ('vehicle', 1, '2', 'XYZ-987', NULL)`,
		`INSERT INTO options (field_id, position, value, label, search_text) VALUES ('vehicle', 0, '1', 'ABC-123', 'ABC-123 Yaris')`,
		`INSERT INTO options (field_id, position, value, label, parent) VALUES ('contract', 0, '10', '#10', '1')`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	require.NoError(t, db.Close())

	ds, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Subcontracts", ds.Title)
	require.Len(t, ds.Fields, 3)
	assert.Equal(t, []string{"vehicle", "contract", "amount"}, []string{ds.Fields[0].ID, ds.Fields[1].ID, ds.Fields[2].ID})

	vehicle := ds.Fields[0]
	assert.True(t, vehicle.Required)
	require.Len(t, vehicle.Options, 2)
	assert.Equal(t, "1", vehicle.Options[0].Value, "options ordered by position")
	assert.Equal(t, "ABC-123 Yaris", vehicle.Options[0].SearchText)
	assert.Equal(t, "", vehicle.Options[1].SearchText)

	contract := ds.Fields[1]
	assert.Equal(t, "vehicle", contract.DependsOn)
	assert.Equal(t, 4, contract.MaxDisplayed)
	assert.Equal(t, "1", contract.Options[0].Parent)
	assert.True(t, ds.Fields[2].IsText())
}

func TestLoadSQLiteWithoutMetaTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.sqlite")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	schema := sqliteSchema[:strings.Index(sqliteSchema, "CREATE TABLE IF NOT EXISTS meta")]
	_, err = db.Exec(schema)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO fields (id, label) VALUES ('client', 'Client')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	ds, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "", ds.Title)
	require.Len(t, ds.Fields, 1)
}

func TestLoadSQLiteMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
