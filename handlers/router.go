package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// RouterConfig controls route mounting and request policies
type RouterConfig struct {
	// BasePath prefixes every API route, e.g. "/index.php"
	BasePath string

	// RatingRequiresAuth puts POST /recipes/{id}/rating behind the bearer check
	RatingRequiresAuth bool

	// RateLimit in requests per second; 0 disables limiting
	RateLimit      float64
	RateLimitBurst int

	Ping Pinger
}

// NewRouter wires every route and the middleware chain
func NewRouter(cfg RouterConfig, recipes *RecipeHandler, auth *AuthHandler) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = HandlerFunc(endpointNotFound)
	r.MethodNotAllowedHandler = HandlerFunc(methodNotAllowed)
	r.Use(routeNameMiddleware)

	register := func(name, path string, handler http.Handler, methods ...string) {
		r.Handle(cfg.BasePath+path, handler).Methods(methods...).Name(name)
	}

	rateRecipe := HandlerFunc(recipes.RateRecipe)
	if cfg.RatingRequiresAuth {
		rateRecipe = auth.Require(recipes.RateRecipe)
	}

	register("ListRecipes", "/recipes", HandlerFunc(recipes.ListRecipes), http.MethodGet)
	register("CreateRecipe", "/recipes", auth.Require(recipes.CreateRecipe), http.MethodPost)
	register("MissingRecipeID", "/recipes", HandlerFunc(MissingRecipeID),
		http.MethodPut, http.MethodPatch, http.MethodDelete)
	register("GetRecipe", "/recipes/{id}", HandlerFunc(recipes.GetRecipe), http.MethodGet)
	register("UpdateRecipe", "/recipes/{id}", auth.Require(recipes.UpdateRecipe),
		http.MethodPut, http.MethodPatch)
	register("DeleteRecipe", "/recipes/{id}", auth.Require(recipes.DeleteRecipe), http.MethodDelete)
	register("RateRecipe", "/recipes/{id}/rating", rateRecipe, http.MethodPost)
	register("ListRatings", "/recipes/{id}/rating", HandlerFunc(recipes.ListRatings), http.MethodGet)
	register("Login", "/login", HandlerFunc(auth.Login), http.MethodPost)

	r.Handle("/health", HealthCheck(cfg.Ping)).Methods(http.MethodGet).Name("HealthCheck")
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("Metrics")

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)
	}

	var handler http.Handler = r
	handler = trimSlashMiddleware(handler)
	handler = rateLimitMiddleware(limiter)(handler)
	handler = recoveryMiddleware(handler)
	handler = loggingMiddleware(handler)
	handler = metricsMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func endpointNotFound(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	logRequest(ctx, "info", "Endpoint not found")
	writeError(w, http.StatusNotFound, "Endpoint not found")
}

func methodNotAllowed(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	logRequest(ctx, "info", "Method not allowed")
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
