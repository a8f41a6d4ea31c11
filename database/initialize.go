package database

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"recipe-service/config"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/umakantv/go-utils/db"
	"github.com/umakantv/go-utils/db/migrations"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeDatabase connects to the configured store, creates the tables
// when missing and applies operator migrations if a directory is configured.
func InitializeDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dbConn, err := Connect(cfg)
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, dbConn); err != nil {
		dbConn.Close()
		return nil, err
	}

	if cfg.MigrationsDir != "" {
		if err := migrations.Migrate(dbConn, cfg.MigrationsDir); err != nil {
			logger.Error("Error while running migration", zap.Error(err), zap.String("dir", cfg.MigrationsDir))
			dbConn.Close()
			return nil, fmt.Errorf("running migrations from %s: %w", cfg.MigrationsDir, err)
		}
	}

	logger.Info("Database initialized successfully", zap.String("driver", cfg.Driver))
	return dbConn, nil
}

// openSQLite wraps db.GetDBConnection, which panics when the file cannot be
// opened or pinged
func openSQLite(dsn, path string) (dbConn *sqlx.DB, err error) {
	defer func() {
		if r := recover(); r != nil {
			dbConn = nil
			err = fmt.Errorf("opening sqlite database %s: %v", path, r)
		}
	}()

	return db.GetDBConnection(db.DatabaseConfig{
		DRIVER: config.DriverSQLite,
		DB:     dsn,
	}), nil
}

// Connect opens a connection pool for the configured driver
func Connect(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		return openSQLite(dsn, cfg.Path)
	default:
		dbConn, err := sqlx.Connect(cfg.Driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("connecting to %s at %s:%d: %w", cfg.Driver, cfg.Host, cfg.Port, err)
		}
		return dbConn, nil
	}
}

// DSN builds the driver-specific data source name
func DSN(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		// foreign keys are off by default in SQLite; cascade depends on them
		sep := "?"
		if strings.Contains(cfg.Path, "?") {
			sep = "&"
		}
		return cfg.Path + sep + "_foreign_keys=on", nil
	case config.DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		mc.DBName = cfg.Name
		mc.ParseTime = true
		return mc.FormatDSN(), nil
	default:
		return "", fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

// OpenMemory opens a private in-memory SQLite database. The pool is pinned
// to a single connection so every query sees the same data.
func OpenMemory(ctx context.Context, name string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	dbConn, err := sqlx.Open(config.DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	dbConn.SetMaxOpenConns(1)

	if err := EnsureSchema(ctx, dbConn); err != nil {
		dbConn.Close()
		return nil, err
	}
	return dbConn, nil
}
