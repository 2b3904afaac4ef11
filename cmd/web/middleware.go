package main

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/justinas/nosurf"
	"github.com/myrjola/constellation/internal/contexthelpers"
	"github.com/myrjola/constellation/internal/errors"
	"github.com/myrjola/constellation/internal/logging"
	"github.com/myrjola/constellation/internal/random"
	"log/slog"
	"net/http"
	"time"
)

const nonceLength = 24

func (app *application) secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce, err := random.Letters(nonceLength)
		if err != nil {
			app.serverError(w, r, errors.Wrap(err, "generate nonce"))
			return
		}
		r = contexthelpers.SetCSPNonce(r, nonce)

		// htmx swaps in style attributes and the confetti canvas is styled inline.
		w.Header().Set("Content-Security-Policy",
			fmt.Sprintf(`default-src 'self'; script-src 'nonce-%s' 'strict-dynamic' https: http:; `+
				`style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; media-src 'self' https:; `+
				`frame-src https://www.youtube.com; object-src 'none'; base-uri 'none';`, nonce))
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-XSS-Protection", "0")

		next.ServeHTTP(w, r)
	})
}

// statusRecorder remembers the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Unwrap lets http.ResponseController reach the flusher of the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// logRequest tags the request context with a request id, logs the request and records its metrics.
func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			start  = time.Now()
			id     = uuid.NewString()
			method = r.Method
			uri    = r.URL.RequestURI()
		)
		r = contexthelpers.SetRequestID(r, id)
		r = r.WithContext(logging.WithAttrs(r.Context(), slog.String("request_id", id)))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		// The pattern is set by the mux once it has routed the request.
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		app.metrics.ObserveRequest(method, route, rec.status, elapsed)
		app.logger.LogAttrs(r.Context(), slog.LevelDebug, "served request",
			slog.String("proto", r.Proto),
			slog.String("method", method),
			slog.String("uri", uri),
			slog.Int("status", rec.status),
			slog.Duration("elapsed", elapsed))
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, r, errors.New("panic", slog.Any("recovered", err)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// viewer tags the request with the viewer id stored in the session.
func (app *application) viewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := app.viewerID(r)
		r = contexthelpers.SetViewerID(r, id)
		r = r.WithContext(logging.WithAttrs(r.Context(), slog.String("viewer_id", id)))
		next.ServeHTTP(w, r)
	})
}

// serverSentEventMiddleware makes scs work with Server Sent Events (SSE).
// Use this instead of app.sessionManager.LoadAndSave, which buffers the response until the handler returns.
// See https://github.com/alexedwards/scs/issues/141#issuecomment-1807075358
func (app *application) serverSentEventMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		cookie, err := r.Cookie(app.sessionManager.Cookie.Name)
		if err == nil {
			token = cookie.Value
		}
		ctx, err := app.sessionManager.Load(r.Context(), token)
		if err != nil {
			app.serverError(w, r, errors.Wrap(err, "load session"))
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func commonContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = contexthelpers.SetCSRFToken(r, nosurf.Token(r))
		next.ServeHTTP(w, r)
	})
}

// noSurf implements CSRF protection using https://github.com/justinas/nosurf
func noSurf(next http.Handler) http.Handler {
	csrfHandler := nosurf.New(next)
	csrfHandler.SetBaseCookie(http.Cookie{
		HttpOnly: true,
		Path:     "/",
		Secure:   true,
	})

	return csrfHandler
}
