package migrations_test

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iomzzz/Standards-final/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// tableSchema is the driver-independent shape both migration sets must produce.
type tableSchema struct {
	Columns []string
	Indexes map[string][]string
}

var wantSchema = map[string]tableSchema{
	"standards": {
		Columns: []string{"id", "title", "category", "content", "version", "last_updated"},
		Indexes: map[string][]string{
			"idx_standards_last_updated": {"last_updated"},
		},
	},
	"incidents": {
		Columns: []string{"id", "type", "description", "severity", "status", "reported_at", "reported_by"},
		Indexes: map[string][]string{
			"idx_incidents_reported_at": {"reported_at", "id"},
			"idx_incidents_status":      {"status"},
		},
	},
}

func TestFS_SetsHaveSameVersions(t *testing.T) {
	names := func(dir string) []string {
		entries, err := fs.ReadDir(migrations.FS, dir)
		require.NoError(t, err)

		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.Name())
		}
		return out
	}

	postgres := names(string(migrations.Postgres))
	require.NotEmpty(t, postgres)
	assert.Equal(t, postgres, names(string(migrations.SQLite)))
}

func TestUp_UnknownDriver(t *testing.T) {
	err := migrations.Up("oracle", "oracle://localhost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no migrations for driver "oracle"`)
}

func TestSQLite_Schema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.db")
	require.NoError(t, migrations.Up(migrations.SQLite, migrations.SQLiteURL(path)))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for table, want := range wantSchema {
		t.Run(table, func(t *testing.T) {
			assert.Equal(t, want, sqliteTableSchema(t, db, table))
		})
	}
}

func TestSQLite_UpIsIdempotentAndDownDropsTables(t *testing.T) {
	url := migrations.SQLiteURL(filepath.Join(t.TempDir(), "schema.db"))

	require.NoError(t, migrations.Up(migrations.SQLite, url))
	require.NoError(t, migrations.Up(migrations.SQLite, url))
	require.NoError(t, migrations.Down(migrations.SQLite, url, 0))

	db, err := sql.Open("sqlite", strings.TrimPrefix(url, "sqlite://"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var tables int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('standards', 'incidents')`).Scan(&tables)
	require.NoError(t, err)
	assert.Zero(t, tables)
}

func sqliteTableSchema(t *testing.T, db *sql.DB, table string) tableSchema {
	t.Helper()

	got := tableSchema{Indexes: map[string][]string{}}
	got.Columns = queryStrings(t, db, `SELECT name FROM pragma_table_info(?) ORDER BY cid`, table)

	// implicit primary-key indexes have no sql
	indexes := queryStrings(t, db,
		`SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = ? AND sql IS NOT NULL`, table)
	for _, index := range indexes {
		got.Indexes[index] = queryStrings(t, db, `SELECT name FROM pragma_index_info(?) ORDER BY seqno`, index)
	}
	return got
}

func queryStrings(t *testing.T, db *sql.DB, query string, args ...any) []string {
	t.Helper()

	rows, err := db.Query(query, args...)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		out = append(out, s)
	}
	require.NoError(t, rows.Err())
	return out
}
