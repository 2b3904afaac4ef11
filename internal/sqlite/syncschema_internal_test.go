package sqlite

import (
	"github.com/myrjola/constellation/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

const (
	namesTable   = "CREATE TABLE names (id INTEGER PRIMARY KEY, name TEXT)"
	namesIndex   = "CREATE INDEX names_name ON names (name)"
	failTrigger  = "CREATE TRIGGER names_insert AFTER INSERT ON names BEGIN SELECT RAISE(FAIL, 'fail'); END"
	noopTrigger  = "CREATE TRIGGER names_insert AFTER INSERT ON names BEGIN SELECT 1; END"
	insertName   = "INSERT INTO names (name) VALUES ('Ann')"
	dropNameIdx  = "DROP INDEX names_name"
	idOnlyTable  = "CREATE TABLE names (id INTEGER PRIMARY KEY)"
	withEmailCol = "CREATE TABLE names (id INTEGER PRIMARY KEY, name TEXT, email TEXT)"
)

func TestDatabase_migrateTo(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		schemas  []string
		query    string
		wantErr  bool
		wantRows int
	}{
		{name: "empty schema", schemas: []string{""}, query: "SELECT * FROM sqlite_schema"},
		{name: "create table", schemas: []string{namesTable}, query: insertName},
		{name: "drop table", schemas: []string{namesTable, ""}, query: insertName, wantErr: true},
		{name: "add column", schemas: []string{idOnlyTable, namesTable}, query: insertName},
		{name: "remove column", schemas: []string{idOnlyTable, namesTable, idOnlyTable}, query: insertName, wantErr: true},
		{name: "create index", schemas: []string{namesTable + ";" + namesIndex}, query: dropNameIdx},
		{name: "drop index", schemas: []string{namesTable + ";" + namesIndex, namesTable}, query: dropNameIdx, wantErr: true},
		{
			name:    "change index",
			schemas: []string{namesTable + ";" + namesIndex, namesTable + ";CREATE INDEX names_name ON names (id, name)"},
			query:   dropNameIdx,
		},
		{name: "create trigger", schemas: []string{namesTable + ";" + failTrigger}, query: insertName, wantErr: true},
		{name: "drop trigger", schemas: []string{namesTable + ";" + failTrigger, namesTable}, query: insertName},
		{name: "change trigger", schemas: []string{namesTable + ";" + failTrigger, namesTable + ";" + noopTrigger}, query: insertName},
		{name: "keep index of rebuilt table", schemas: []string{namesTable + ";" + namesIndex, withEmailCol + ";" + namesIndex}, query: dropNameIdx},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := t.Context()
			db, err := connect(":memory:", testhelpers.NewLogger(io.Discard))
			require.NoError(t, err)
			t.Cleanup(func() { require.NoError(t, db.Close()) })

			for _, schema := range tt.schemas {
				require.NoError(t, db.migrateTo(ctx, schema))
			}
			_, err = db.ReadWrite.ExecContext(ctx, tt.query)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDatabase_migrateToKeepsData(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	db, err := connect(":memory:", testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	require.NoError(t, db.migrateTo(ctx, namesTable))
	_, err = db.ReadWrite.ExecContext(ctx, insertName)
	require.NoError(t, err)

	require.NoError(t, db.migrateTo(ctx, withEmailCol))
	var names []string
	require.NoError(t, db.ReadOnly.SelectContext(ctx, &names, "SELECT name FROM names WHERE email IS NULL"))
	require.Equal(t, []string{"Ann"}, names)
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	db, err := Open(ctx, ":memory:", testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	_, err = db.ReadWrite.ExecContext(ctx,
		"INSERT INTO sessions (token, data, expiry) VALUES ('token', x'00', julianday('now'))")
	require.NoError(t, err)

	var tokens []string
	require.NoError(t, db.ReadOnly.SelectContext(ctx, &tokens, "SELECT token FROM sessions"))
	require.Equal(t, []string{"token"}, tokens)

	_, err = db.ReadOnly.ExecContext(ctx, "DELETE FROM sessions")
	require.Error(t, err, "read pool is query only")
}
