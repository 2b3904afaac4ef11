package main

import (
	"github.com/myrjola/constellation/internal/page"
	"net/http"
)

func (app *application) openMemory(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(r)
	if !ok {
		app.notFound(w, r)
		return
	}
	s := app.session(r)
	if !app.controller.OpenMemory(r.Context(), s, index) {
		app.notFound(w, r)
		return
	}
	app.saveState(r, s)
	app.respond(w, r, s, page.HookMemoryPanel, page.HookStars)
}

func (app *application) closeMemory(w http.ResponseWriter, r *http.Request) {
	s := app.session(r)
	app.controller.CloseMemory(r.Context(), s)
	app.saveState(r, s)
	app.respond(w, r, s, page.HookMemoryPanel, page.HookStars)
}
