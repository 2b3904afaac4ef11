// Package sqlite opens the SQLite database backing the viewer sessions and keeps its schema in sync with schema.sql.
package sqlite

import (
	"context"
	_ "embed"
	"fmt"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Enable sqlite3 driver
	"github.com/myrjola/constellation/internal/errors"
	"github.com/myrjola/constellation/internal/random"
	"log/slog"
	"strings"
	"time"
)

//go:embed schema.sql
var schemaDefinition string

const (
	maxReadConns     = 10
	memoryNameLength = 20
	optimizeInterval = time.Hour
)

type Database struct {
	ReadWrite *sqlx.DB
	ReadOnly  *sqlx.DB
	logger    *slog.Logger
}

// Open connects to the database at url and synchronises the schema. url is a file path or ":memory:", in which case
// every call gets its own private in-memory database.
//
// Writes go through a single connection and reads through a pool, see
// https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995.
func Open(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	db, err := connect(url, logger)
	if err != nil {
		return nil, errors.Wrap(err, "connect", slog.String("url", url))
	}
	if err = db.migrateTo(ctx, schemaDefinition); err != nil {
		return nil, errors.Join(errors.Wrap(err, "synchronise schema"), db.Close())
	}
	return db, nil
}

func connect(url string, logger *slog.Logger) (*Database, error) {
	readWriteMode, readMode, cache := "rwc", "ro", "private"
	if strings.Contains(url, ":memory:") {
		name, err := random.Letters(memoryNameLength)
		if err != nil {
			return nil, errors.Wrap(err, "generate database name")
		}
		// Both pools must share the same in-memory database, https://www.sqlite.org/inmemorydb.html.
		url, readWriteMode, readMode, cache = name, "memory", "memory", "shared"
	}
	// Options prefixed with underscore are pragmas, https://www.sqlite.org/pragma.html. The rest are URI parameters,
	// https://www.sqlite.org/uri.html.
	pragmas := strings.Join([]string{
		"_journal_mode=wal",
		"_busy_timeout=5000",
		"_synchronous=normal",
		"_foreign_keys=on",
		"_temp_store=memory",
	}, "&")
	readWriteDSN := fmt.Sprintf("file:%s?mode=%s&cache=%s&_txlock=immediate&%s", url, readWriteMode, cache, pragmas)
	readDSN := fmt.Sprintf("file:%s?mode=%s&cache=%s&_txlock=deferred&_query_only=true&%s", url, readMode, cache, pragmas)

	readWrite, err := sqlx.Open("sqlite3", readWriteDSN)
	if err != nil {
		return nil, errors.Wrap(err, "open read-write database")
	}
	readWrite.SetMaxOpenConns(1)
	readWrite.SetMaxIdleConns(1)
	readWrite.SetConnMaxLifetime(0)
	readWrite.SetConnMaxIdleTime(0)

	// An in-memory database lives as long as one of its connections, the read-write pool keeps it alive.
	if err = readWrite.Ping(); err != nil {
		return nil, errors.Join(errors.Wrap(err, "ping read-write database"), readWrite.Close())
	}

	readOnly, err := sqlx.Open("sqlite3", readDSN)
	if err != nil {
		return nil, errors.Join(errors.Wrap(err, "open read-only database"), readWrite.Close())
	}
	readOnly.SetMaxOpenConns(maxReadConns)
	readOnly.SetMaxIdleConns(maxReadConns)
	readOnly.SetConnMaxLifetime(time.Hour)
	readOnly.SetConnMaxIdleTime(time.Hour)

	return &Database{
		ReadWrite: readWrite,
		ReadOnly:  readOnly,
		logger:    logger,
	}, nil
}

// Close closes both connection pools.
func (db *Database) Close() error {
	return errors.Join(db.ReadOnly.Close(), db.ReadWrite.Close())
}

// Optimize runs PRAGMA optimize once per hour until ctx is done, https://www.sqlite.org/pragma.html#pragma_optimize.
func (db *Database) Optimize(ctx context.Context) error {
	ticker := time.NewTicker(optimizeInterval)
	defer ticker.Stop()
	for {
		start := time.Now()
		if _, err := db.ReadWrite.ExecContext(ctx, "PRAGMA optimize;"); err != nil && ctx.Err() == nil {
			err = errors.Wrap(err, "optimize database")
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to optimize database", errors.SlogError(err))
		} else if err == nil {
			db.logger.LogAttrs(ctx, slog.LevelDebug, "optimized database",
				slog.Duration("duration", time.Since(start)))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
