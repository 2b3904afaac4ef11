package main

import (
	"encoding/gob"
	"github.com/google/uuid"
	"github.com/myrjola/constellation/internal/contexthelpers"
	"github.com/myrjola/constellation/internal/interaction"
	"net/http"
)

const (
	viewerIDSessionKey = "viewerID"
	stateSessionKey    = "state"
)

func init() {
	// scs encodes session values with gob.
	gob.Register(interaction.State{})
}

// viewerID returns the id of the session's viewer, creating one for a new session.
func (app *application) viewerID(r *http.Request) string {
	ctx := r.Context()
	id := app.sessionManager.GetString(ctx, viewerIDSessionKey)
	if id == "" {
		id = uuid.NewString()
		app.sessionManager.Put(ctx, viewerIDSessionKey, id)
	}
	return id
}

// session builds the interaction session of the request from the viewer's stored state and the current content
// snapshot.
func (app *application) session(r *http.Request) *interaction.Session {
	ctx := r.Context()
	viewerID := contexthelpers.ViewerID(ctx)
	state, _ := app.sessionManager.Get(ctx, stateSessionKey).(interaction.State)
	return &interaction.Session{
		ViewerID: viewerID,
		Content:  app.content.Document(),
		State:    &state,
		Effects:  app.effects.For(viewerID),
	}
}

// saveState stores the state of s for the next request.
func (app *application) saveState(r *http.Request, s *interaction.Session) {
	app.sessionManager.Put(r.Context(), stateSessionKey, *s.State)
}
