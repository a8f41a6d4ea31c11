package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable
type Pinger func(ctx context.Context) error

// HealthCheck handles GET /health
func HealthCheck(ping Pinger) HandlerFunc {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(ctx); err != nil {
				logRequest(ctx, "error", "Database ping failed", zap.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status":  "unhealthy",
					"service": "recipe-service",
					"error":   err.Error(),
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "recipe-service",
		})
	}
}
