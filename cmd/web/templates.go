package main

import (
	"bytes"
	"github.com/myrjola/constellation/internal/contexthelpers"
	"github.com/myrjola/constellation/internal/errors"
	"github.com/myrjola/constellation/internal/page"
	"log/slog"
	"net/http"
)

// hydratedPage executes the shell for the request and applies the patches.
func (app *application) hydratedPage(r *http.Request, patches []page.Patch) (*page.Page, error) {
	ctx := r.Context()
	p, err := app.shell.Page(contexthelpers.CSPNonce(ctx), contexthelpers.CSRFToken(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "shell page")
	}
	if err = p.Apply(patches...); err != nil {
		return nil, errors.Wrap(err, "apply patches")
	}
	return p, nil
}

// renderPage writes the whole page.
func (app *application) renderPage(w http.ResponseWriter, r *http.Request, p *page.Page) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		app.serverError(w, r, errors.Wrap(err, "render page"))
		return
	}
	app.writeHTML(w, r, &buf)
}

// renderRegions writes the given regions of the page, the first one swapped in place and the rest out of band.
func (app *application) renderRegions(w http.ResponseWriter, r *http.Request, p *page.Page, hooks ...page.Hook) {
	var buf bytes.Buffer
	if err := p.RenderRegions(&buf, hooks...); err != nil {
		app.serverError(w, r, errors.Wrap(err, "render regions"))
		return
	}
	app.writeHTML(w, r, &buf)
}

func (app *application) writeHTML(w http.ResponseWriter, r *http.Request, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "failed to write response", errors.SlogError(err))
	}
}
