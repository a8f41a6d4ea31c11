package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"recipe-service/config"
	"recipe-service/database"
	"recipe-service/handlers"
	"recipe-service/services"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

// InitLogger sets up the process-wide logger
func InitLogger() {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})
}

// NewHandler builds the full HTTP handler on top of an open database
func NewHandler(cfg *config.Config, dbConn *sqlx.DB) (http.Handler, error) {
	tokens, err := services.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, err
	}

	creds, err := handlers.NewCredentials(cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, cfg.Auth.AdminUserID, bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return handlers.NewRouter(handlers.RouterConfig{
		BasePath:           cfg.BasePath,
		RatingRequiresAuth: cfg.Auth.RatingRequiresAuth,
		RateLimit:          cfg.RateLimit,
		RateLimitBurst:     cfg.RateLimitBurst,
		Ping:               dbConn.PingContext,
	},
		handlers.NewRecipeHandler(services.NewRecipeService(dbConn)),
		handlers.NewAuthHandler(tokens, creds),
	), nil
}

// StartServer serves the API until ctx is cancelled or SIGINT/SIGTERM arrives
func StartServer(ctx context.Context, cfg *config.Config) error {
	logger.Info("Starting Recipe Service...")

	dbConn, err := database.InitializeDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	handler, err := NewHandler(cfg, dbConn)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Recipe Service started", zap.String("address", srv.Addr), zap.String("base_path", cfg.BasePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening on %s: %w", srv.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// SetupTables creates the schema and applies migrations, then exits
func SetupTables(ctx context.Context, cfg config.DatabaseConfig) error {
	dbConn, err := database.InitializeDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	logger.Info("Tables ready", zap.String("driver", cfg.Driver))
	return nil
}
