package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// requestIDMiddleware attaches the per-request info record, reusing a valid
// X-Request-Id from the client or generating one
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}

		info := &requestInfo{ID: requestID, Method: r.Method, Path: r.URL.Path}
		w.Header().Set("X-Request-Id", requestID)

		next.ServeHTTP(w, r.WithContext(withRequestInfo(r.Context(), info)))
	})
}

// routeNameMiddleware runs inside mux after a route matched
func routeNameMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if route := mux.CurrentRoute(r); route != nil {
			getRequestInfo(r.Context()).Route = route.GetName()
		}
		next.ServeHTTP(w, r)
	})
}

// recoveryMiddleware turns a panic into a 500 JSON error
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				panicRecoveries.Inc()
				var errMsg string
				switch v := rec.(type) {
				case error:
					errMsg = v.Error()
				default:
					errMsg = fmt.Sprintf("%v", v)
				}
				logRequest(r.Context(), "error", "panic recovered", zap.String("error", errMsg))
				writeError(w, http.StatusInternalServerError, errMsg)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs every completed request
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		info := getRequestInfo(r.Context())
		logger.Debug("request completed",
			zap.String("request_id", info.ID),
			zap.String("route", info.Route),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rw.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// rateLimitMiddleware rejects requests over the configured rate with 429.
// A nil limiter disables limiting.
func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				rateLimitRejects.Inc()
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// trimSlashMiddleware makes /recipes/ and /recipes equivalent
func trimSlashMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.Path) > 1 && strings.HasSuffix(r.URL.Path, "/") {
			r.URL.Path = strings.TrimRight(r.URL.Path, "/")
			r.URL.RawPath = ""
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
		}
		next.ServeHTTP(w, r)
	})
}
