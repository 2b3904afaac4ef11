package main

import (
	"bytes"
	"github.com/myrjola/constellation/internal/errors"
	"github.com/myrjola/constellation/internal/hydrate"
	"github.com/myrjola/constellation/internal/markup"
	"github.com/myrjola/constellation/internal/page"
	"net/http"
)

func (app *application) toggleAnswer(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(r)
	if !ok {
		app.notFound(w, r)
		return
	}
	s := app.session(r)
	revealed, ok := app.controller.ToggleAnswer(r.Context(), s, index)
	if !ok {
		app.notFound(w, r)
		return
	}
	app.saveState(r, s)
	if !app.isHx(w, r) {
		redirectHome(w, r)
		return
	}
	card := hydrate.QuizCard(index, s.Content.Questions()[index], revealed, hydrate.Labels(s.Content))
	var buf bytes.Buffer
	if err := markup.Render(&buf, card); err != nil {
		app.serverError(w, r, errors.Wrap(err, "render quiz card"))
		return
	}
	app.writeHTML(w, r, &buf)
}

func (app *application) togglePlaylist(w http.ResponseWriter, r *http.Request) {
	s := app.session(r)
	app.controller.TogglePlaylist(r.Context(), s)
	app.saveState(r, s)
	app.respond(w, r, s, page.HookPlaylistButton, page.HookPlaylistPanel)
}

func (app *application) wish(w http.ResponseWriter, r *http.Request) {
	s := app.session(r)
	app.controller.Wish(r.Context(), s)
	app.respond(w, r, s, page.HookWishButton)
}

// wishButton answers the poll of an active wish button with its current look.
func (app *application) wishButton(w http.ResponseWriter, r *http.Request) {
	app.respond(w, r, app.session(r), page.HookWishButton)
}

func (app *application) finale(w http.ResponseWriter, r *http.Request) {
	s := app.session(r)
	app.controller.Finale(r.Context(), s)
	app.respond(w, r, s, page.HookOpenAll)
}

// finaleButton answers the poll of a running finale with the button's current look.
func (app *application) finaleButton(w http.ResponseWriter, r *http.Request) {
	app.respond(w, r, app.session(r), page.HookOpenAll)
}
