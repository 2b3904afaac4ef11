package sqlite

import (
	"context"
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/myrjola/constellation/internal/errors"
	"github.com/myrjola/constellation/internal/random"
	"log/slog"
	"strings"
)

// migrateTo brings the database schema in line with the declarative target schema:
//
//  1. tables missing from the target are dropped,
//  2. new tables are created,
//  3. changed tables are rebuilt with the 12-step procedure of https://www.sqlite.org/lang_altertable.html#otheralter,
//     keeping the data of the columns both versions share,
//  4. indexes and triggers are recreated from the target.
//
// Inspired by https://david.rothlis.net/declarative-schema-migration-for-sqlite/.
func (db *Database) migrateTo(ctx context.Context, schema string) (err error) {
	target, name, err := openSchemaTarget(ctx, schema)
	if err != nil {
		return errors.Wrap(err, "open schema target")
	}
	defer func() {
		err = errors.Join(err, errors.Wrap(target.Close(), "close schema target"))
	}()

	// ATTACH fails and the foreign key pragma is ignored inside a transaction, so both run on the connection itself.
	conn, err := db.ReadWrite.Connx(ctx)
	if err != nil {
		return errors.Wrap(err, "acquire connection")
	}
	defer func() {
		err = errors.Join(err, errors.Wrap(conn.Close(), "release connection"))
	}()
	if _, err = conn.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return errors.Wrap(err, "disable foreign keys")
	}
	defer func() {
		if _, fkErr := conn.ExecContext(context.WithoutCancel(ctx), "PRAGMA foreign_keys = ON"); fkErr != nil {
			err = errors.Join(err, errors.Wrap(fkErr, "enable foreign keys"))
		}
	}()
	if _, err = conn.ExecContext(ctx, "ATTACH DATABASE ? AS schemaTarget", name); err != nil {
		return errors.Wrap(err, "attach schema target")
	}
	defer func() {
		if _, detachErr := conn.ExecContext(context.WithoutCancel(ctx), "DETACH DATABASE schemaTarget"); detachErr != nil {
			err = errors.Join(err, errors.Wrap(detachErr, "detach schema target"))
		}
	}()

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	if err = db.syncSchema(ctx, tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit schema")
	}
	return nil
}

func openSchemaTarget(ctx context.Context, schema string) (*sqlx.DB, string, error) {
	id, err := random.Letters(memoryNameLength)
	if err != nil {
		return nil, "", errors.Wrap(err, "generate database name")
	}
	name := fmt.Sprintf("file:%s?mode=memory&cache=shared", id)
	target, err := sqlx.Open("sqlite3", name)
	if err != nil {
		return nil, "", errors.Wrap(err, "open")
	}
	// The in-memory database only lives while a connection is open.
	target.SetMaxIdleConns(1)
	target.SetConnMaxLifetime(0)
	if _, err = target.ExecContext(ctx, schema); err != nil {
		return nil, "", errors.Join(errors.Wrap(err, "apply schema"), target.Close())
	}
	return target, name, nil
}

func (db *Database) syncSchema(ctx context.Context, tx *sqlx.Tx) error {
	if err := db.dropObjects(ctx, tx, "index", "trigger"); err != nil {
		return err
	}
	if err := db.syncTables(ctx, tx); err != nil {
		return err
	}
	if err := db.createObjects(ctx, tx, "index", "trigger"); err != nil {
		return err
	}

	var violations int
	if err := tx.GetContext(ctx, &violations, "SELECT count(*) FROM pragma_foreign_key_check"); err != nil {
		return errors.Wrap(err, "check foreign keys")
	}
	if violations > 0 {
		return errors.New("foreign key violations after migration", slog.Int("violations", violations))
	}
	return nil
}

func (db *Database) syncTables(ctx context.Context, tx *sqlx.Tx) error {
	var deleted []string
	if err := tx.SelectContext(ctx, &deleted, `SELECT current.name
FROM main.sqlite_schema AS current
LEFT JOIN schemaTarget.sqlite_schema AS target ON target.name = current.name AND target.type = current.type
WHERE current.type = 'table' AND target.name IS NULL AND current.name NOT LIKE 'sqlite_%'`); err != nil {
		return errors.Wrap(err, "query deleted tables")
	}
	for _, table := range deleted {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping table", slog.String("table", table))
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE %q", table)); err != nil {
			return errors.Wrap(err, "drop table", slog.String("table", table))
		}
	}

	var created []string
	if err := tx.SelectContext(ctx, &created, `SELECT target.sql
FROM schemaTarget.sqlite_schema AS target
LEFT JOIN main.sqlite_schema AS current ON current.name = target.name AND current.type = target.type
WHERE target.type = 'table' AND current.name IS NULL AND target.name NOT LIKE 'sqlite_%'`); err != nil {
		return errors.Wrap(err, "query new tables")
	}
	for _, query := range created {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating table", slog.String("query", query))
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return errors.Wrap(err, "create table", slog.String("query", query))
		}
	}

	var changed []changedTable
	if err := tx.SelectContext(ctx, &changed, `SELECT current.name AS name, current.sql AS current_sql, target.sql AS new_sql
FROM main.sqlite_schema AS current
JOIN schemaTarget.sqlite_schema AS target ON target.name = current.name AND target.type = current.type
WHERE current.type = 'table' AND current.name NOT LIKE 'sqlite_%' AND current.sql <> target.sql`); err != nil {
		return errors.Wrap(err, "query changed tables")
	}
	for _, table := range changed {
		if err := db.rebuildTable(ctx, tx, table); err != nil {
			return errors.Wrap(err, "rebuild table", slog.String("table", table.Name))
		}
	}
	return nil
}

type changedTable struct {
	Name       string `db:"name"`
	CurrentSQL string `db:"current_sql"`
	NewSQL     string `db:"new_sql"`
}

func (db *Database) rebuildTable(ctx context.Context, tx *sqlx.Tx, table changedTable) error {
	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrating table",
		slog.String("table", table.Name),
		slog.String("current_sql", table.CurrentSQL),
		slog.String("new_sql", table.NewSQL))

	tempName := table.Name + "_migration_temp"
	if _, err := tx.ExecContext(ctx, strings.Replace(table.NewSQL, table.Name, tempName, 1)); err != nil {
		return errors.Wrap(err, "create temporary table")
	}

	var common []string
	// Quoting keeps column names that are also keywords working.
	if err := tx.SelectContext(ctx, &common, `SELECT '"' || target.name || '"'
FROM pragma_table_info(?) AS current
JOIN pragma_table_info(?, 'schemaTarget') AS target ON target.name = current.name`, table.Name, table.Name); err != nil {
		return errors.Wrap(err, "query common columns")
	}
	if len(common) > 0 {
		columns := strings.Join(common, ", ")
		//nolint:gosec // the identifiers come from the schema, not from input.
		copySQL := fmt.Sprintf("INSERT INTO %q (%s) SELECT %s FROM %q", tempName, columns, columns, table.Name)
		if _, err := tx.ExecContext(ctx, copySQL); err != nil {
			return errors.Wrap(err, "copy data", slog.String("query", copySQL))
		}
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE %q", table.Name)); err != nil {
		return errors.Wrap(err, "drop old table")
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %q RENAME TO %q", tempName, table.Name)); err != nil {
		return errors.Wrap(err, "rename temporary table")
	}
	return nil
}

// dropObjects drops every object of the given types that SQLite did not create on its own.
func (db *Database) dropObjects(ctx context.Context, tx *sqlx.Tx, types ...string) error {
	for _, typ := range types {
		var names []string
		if err := tx.SelectContext(ctx, &names, `SELECT name FROM main.sqlite_schema
WHERE type = ? AND sql IS NOT NULL AND name NOT LIKE 'sqlite_%'`, typ); err != nil {
			return errors.Wrap(err, "query objects", slog.String("type", typ))
		}
		for _, name := range names {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP %s %q", strings.ToUpper(typ), name)); err != nil {
				return errors.Wrap(err, "drop object", slog.String("type", typ), slog.String("name", name))
			}
		}
	}
	return nil
}

// createObjects creates every object of the given types from the target schema.
func (db *Database) createObjects(ctx context.Context, tx *sqlx.Tx, types ...string) error {
	for _, typ := range types {
		var queries []string
		if err := tx.SelectContext(ctx, &queries, `SELECT sql FROM schemaTarget.sqlite_schema
WHERE type = ? AND sql IS NOT NULL AND name NOT LIKE 'sqlite_%'`, typ); err != nil {
			return errors.Wrap(err, "query target objects", slog.String("type", typ))
		}
		for _, query := range queries {
			if _, err := tx.ExecContext(ctx, query); err != nil {
				return errors.Wrap(err, "create object", slog.String("query", query))
			}
		}
	}
	return nil
}
