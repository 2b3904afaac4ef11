package main

import (
	"context"
	"github.com/myrjola/constellation/internal/errors"
	"github.com/myrjola/constellation/internal/sqlite"
	"github.com/myrjola/constellation/internal/testhelpers"
	"log/slog"
	"os"
	"time"
)

// main opens a copy of the production database, which synchronises its schema, and checks that the sessions
// survived the migration.
func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("CONSTELLATION_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "CONSTELLATION_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.Open(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error opening database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	var count int
	if err = db.ReadOnly.GetContext(ctx, &count, `SELECT COUNT(*) FROM sessions WHERE julianday('now') < expiry`); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error fetching session count", errors.SlogError(err))
		os.Exit(1)
	}
	if count == 0 {
		logger.LogAttrs(ctx, slog.LevelError, "no live sessions found, something is likely wrong")
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "session count", slog.Int("count", count))

	if err = db.Close(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error closing database", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}
