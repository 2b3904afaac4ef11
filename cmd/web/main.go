package main

import (
	"context"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/myrjola/constellation/internal/content"
	"github.com/myrjola/constellation/internal/effect"
	"github.com/myrjola/constellation/internal/envstruct"
	"github.com/myrjola/constellation/internal/errors"
	"github.com/myrjola/constellation/internal/hydrate"
	"github.com/myrjola/constellation/internal/interaction"
	"github.com/myrjola/constellation/internal/logging"
	"github.com/myrjola/constellation/internal/metrics"
	"github.com/myrjola/constellation/internal/pprofserver"
	"github.com/myrjola/constellation/internal/schedule"
	"github.com/myrjola/constellation/internal/sqlite"
	"github.com/myrjola/constellation/ui"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	content        *content.Store
	controller     *interaction.Controller
	effects        *effect.Hub
	metrics        *metrics.Collector
	htmx           *htmx.HTMX
	shell          *ui.Shell
	defaults       hydrate.Defaults
}

type config struct {
	// Addr is the address the server listens on, port 0 picks a free one.
	Addr string `env:"CONSTELLATION_ADDR" envDefault:"localhost:4000"`
	// Content is a file path or an http(s) URL of the content document.
	Content string `env:"CONSTELLATION_CONTENT" envDefault:"ui/static/data/content.json"`
	// SqliteURL is the session database, ":memory:" keeps sessions in memory.
	SqliteURL string `env:"CONSTELLATION_SQLITE_URL" envDefault:"./constellation.sqlite"`
	// PprofAddr enables the pprof server when set, use a loopback address.
	PprofAddr string `env:"CONSTELLATION_PPROF_ADDR" envDefault:""`
	// WatchContent reloads a content file when it changes.
	WatchContent bool `env:"CONSTELLATION_WATCH_CONTENT" envDefault:"false"`
}

const (
	sessionLifetime        = 12 * time.Hour
	sessionCleanupInterval = 24 * time.Hour
)

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.Open(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close db", errors.SlogError(closeErr))
		}
	}()

	collector := metrics.New()
	store := content.NewStore(cfg.Content, content.NewLoader(nil), logger)
	// The page renders unhydrated until the content loads, so a failure is not fatal.
	collector.ContentLoad(store.Load(ctx))

	shell, err := ui.ParseShell()
	if err != nil {
		return errors.Wrap(err, "parse shell")
	}
	probe, err := shell.Page("", "")
	if err != nil {
		return errors.Wrap(err, "probe shell")
	}

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, sessionCleanupInterval)
	sessionManager.Lifetime = sessionLifetime
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode

	tasks := schedule.New()
	defer tasks.Stop()
	hub := effect.NewHub(logger, collector.Bursts)

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		content:        store,
		controller: interaction.NewController(tasks, logger, func(a interaction.Action) {
			collector.Interaction(string(a))
		}),
		effects:  hub,
		metrics:  collector,
		htmx:     htmx.New(),
		shell:    shell,
		defaults: hydrate.DefaultsFrom(probe),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Start()
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		hub.Stop()
		return nil
	})
	g.Go(func() error {
		return db.Optimize(ctx)
	})
	if cfg.WatchContent {
		g.Go(func() error {
			return errors.Wrap(store.Watch(ctx), "watch content")
		})
	}
	if cfg.PprofAddr != "" {
		g.Go(func() error {
			return pprofserver.Run(ctx, cfg.PprofAddr, logger)
		})
	}
	g.Go(func() error {
		// The other goroutines follow the server down.
		defer cancel()
		return app.configureAndStartServer(ctx, cfg.Addr)
	})
	if err = g.Wait(); err != nil {
		return errors.Wrap(err, "run")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := logging.NewLogger(os.Stdout, slog.LevelDebug)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failure loading .env file", errors.SlogError(err))
		os.Exit(1) //nolint:revive // main is allowed to exit.
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1) //nolint:revive // main is allowed to exit.
	}
}
