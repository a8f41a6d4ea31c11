package handlers

import (
	"context"
	"net/http"
)

type contextKey string

const requestInfoKey contextKey = "request-info"

// requestInfo is created once per request by the outermost middleware and
// filled in as the request moves through routing and authentication
type requestInfo struct {
	ID     string
	Method string
	Path   string
	Route  string
	UserID int
}

// HandlerFunc is the signature of every API handler
type HandlerFunc func(ctx context.Context, w http.ResponseWriter, r *http.Request)

func (f HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f(r.Context(), w, r)
}

func withRequestInfo(ctx context.Context, info *requestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey, info)
}

func getRequestInfo(ctx context.Context) *requestInfo {
	if info, ok := ctx.Value(requestInfoKey).(*requestInfo); ok {
		return info
	}
	return &requestInfo{}
}
