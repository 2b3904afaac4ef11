package main

import (
	"github.com/justinas/alice"
	"github.com/myrjola/constellation/ui"
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	static, err := ui.Static()
	if err != nil {
		// The embedded file system always has the static directory.
		panic(err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static", http.FileServerFS(static)))

	session := alice.New(app.timeout, app.sessionManager.LoadAndSave, noSurf, commonContext, app.viewer)
	// Event streams outlive the timeout and must flush before the session is saved.
	stream := alice.New(app.serverSentEventMiddleware)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("POST /memories/{index}/open", session.ThenFunc(app.openMemory))
	mux.Handle("POST /memories/close", session.ThenFunc(app.closeMemory))
	mux.Handle("POST /quiz/{index}/toggle", session.ThenFunc(app.toggleAnswer))
	mux.Handle("POST /playlist/toggle", session.ThenFunc(app.togglePlaylist))
	mux.Handle("POST /wish", session.ThenFunc(app.wish))
	mux.Handle("GET /wish", session.ThenFunc(app.wishButton))
	mux.Handle("POST /finale", session.ThenFunc(app.finale))
	mux.Handle("GET /finale", session.ThenFunc(app.finaleButton))
	mux.Handle("GET /effects", stream.ThenFunc(app.effectStream))

	mux.HandleFunc("GET /api/healthy", app.healthy)
	mux.Handle("GET /metrics", app.metrics.Handler())

	return alice.New(app.recoverPanic, app.secureHeaders, app.logRequest).Then(mux)
}
