package main

import (
	"github.com/myrjola/constellation/internal/hydrate"
	"github.com/myrjola/constellation/internal/interaction"
	"github.com/myrjola/constellation/internal/page"
	"net/http"
)

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	p, err := app.viewPage(r, app.session(r))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.renderPage(w, r, p)
}

// viewPage hydrates the shell with the content and the viewer's current view. Fragment handlers cut their regions
// out of it so that a fragment always matches what a full reload would show.
func (app *application) viewPage(r *http.Request, s *interaction.Session) (*page.Page, error) {
	return app.hydratedPage(r, hydrate.Page(s.Content, app.controller.View(s), app.defaults))
}

// respond answers an interaction. htmx gets the given regions of the updated page and a plain form post is
// redirected back to the page.
func (app *application) respond(w http.ResponseWriter, r *http.Request, s *interaction.Session, hooks ...page.Hook) {
	if !app.isHx(w, r) {
		redirectHome(w, r)
		return
	}
	p, err := app.viewPage(r, s)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.renderRegions(w, r, p, hooks...)
}
