// Package contexthelpers stores request scoped values the templates and handlers need.
package contexthelpers

import (
	"context"
	"net/http"
)

type contextKey string

const (
	csrfTokenContextKey = contextKey("csrfToken")
	cspNonceContextKey  = contextKey("cspNonce")
	viewerIDContextKey  = contextKey("viewerID")
	requestIDContextKey = contextKey("requestID")
)

func value(ctx context.Context, key contextKey) string {
	v, ok := ctx.Value(key).(string)
	if !ok {
		return ""
	}
	return v
}

func with(r *http.Request, key contextKey, v string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), key, v))
}

func CSRFToken(ctx context.Context) string {
	return value(ctx, csrfTokenContextKey)
}

func SetCSRFToken(r *http.Request, token string) *http.Request {
	return with(r, csrfTokenContextKey, token)
}

// CSPNonce returns the nonce that inline scripts and styles must carry.
func CSPNonce(ctx context.Context) string {
	return value(ctx, cspNonceContextKey)
}

func SetCSPNonce(r *http.Request, nonce string) *http.Request {
	return with(r, cspNonceContextKey, nonce)
}

// ViewerID returns the id of the browser session making the request.
func ViewerID(ctx context.Context) string {
	return value(ctx, viewerIDContextKey)
}

func SetViewerID(r *http.Request, id string) *http.Request {
	return with(r, viewerIDContextKey, id)
}

func RequestID(ctx context.Context) string {
	return value(ctx, requestIDContextKey)
}

func SetRequestID(r *http.Request, id string) *http.Request {
	return with(r, requestIDContextKey, id)
}
