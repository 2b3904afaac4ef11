package main

import (
	"encoding/json"
	"fmt"
	"github.com/myrjola/constellation/internal/errors"
	"log/slog"
	"net/http"
	"time"
)

// effectStream streams the bursts fired for the viewer as server-sent events named "burst". The data of an event is
// the JSON options object of the burst.
func (app *application) effectStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewerID := app.sessionManager.GetString(ctx, viewerIDSessionKey)
	if viewerID == "" {
		// The stream is opened by the page, which starts the session.
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		app.serverError(w, r, errors.Wrap(err, "clear write deadline"))
		return
	}
	bursts, unsubscribe := app.effects.Subscribe(viewerID)
	defer unsubscribe()
	closed := app.metrics.StreamOpened()
	defer closed()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "failed to open effect stream", errors.SlogError(err))
		return
	}
	app.logger.LogAttrs(ctx, slog.LevelDebug, "effect stream opened", slog.String("viewer_id", viewerID))

	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-bursts:
			if !ok {
				return
			}
			data, err := json.Marshal(b)
			if err != nil {
				app.logger.LogAttrs(ctx, slog.LevelError, "failed to encode burst", errors.SlogError(err))
				continue
			}
			if _, err = fmt.Fprintf(w, "event: burst\ndata: %s\n\n", data); err != nil {
				return
			}
			if err = rc.Flush(); err != nil {
				return
			}
		}
	}
}
