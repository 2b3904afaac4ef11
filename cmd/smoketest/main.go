package main

import (
	"context"
	"github.com/myrjola/constellation/internal/e2etest"
	"github.com/myrjola/constellation/internal/errors"
	"github.com/myrjola/constellation/internal/logging"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// TestInteractions loads the page and presses the wish button like a visitor would.
func TestInteractions(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "get page")
	}
	if doc.Find("[data-stars] .star").Length() == 0 {
		return errors.New("page has no stars, is the content loaded?")
	}
	fragment, err := client.Hx(ctx, http.MethodPost, "/wish")
	if err != nil {
		return errors.Wrap(err, "make a wish")
	}
	if !fragment.Find("[data-wish-button]").HasClass("btn--active") {
		return errors.New("wish button did not activate")
	}
	return nil
}

func main() {
	logger := logging.NewLogger(os.Stdout, slog.LevelDebug)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestInteractions(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing interactions", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
