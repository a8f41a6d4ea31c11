package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Supported database drivers
const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

// ErrMissingSecret is returned when JWT_SECRET is not configured.
// Tokens can be neither signed nor validated without it.
var ErrMissingSecret = errors.New("JWT_SECRET is not set")

// Config holds the process-wide settings, loaded once at startup
type Config struct {
	// HTTP
	Port            int
	BasePath        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RateLimit       float64 // requests per second, 0 disables limiting
	RateLimitBurst  int

	Database DatabaseConfig
	Auth     AuthConfig
}

// DatabaseConfig describes how to reach the relational store
type DatabaseConfig struct {
	Driver        string
	Path          string // sqlite file
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	MigrationsDir string
}

// AuthConfig carries token signing settings and the single login credential
type AuthConfig struct {
	Secret             string
	Issuer             string
	Audience           string
	TokenTTL           time.Duration
	AdminEmail         string
	AdminPassword      string
	AdminUserID        int
	RatingRequiresAuth bool
}

// Default returns a Config with the built-in defaults and no secret
func Default() *Config {
	return &Config{
		Port:            8080,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		RateLimitBurst:  20,
		Database: DatabaseConfig{
			Driver:   DriverSQLite,
			Path:     "./recipes.db",
			Host:     "mysql",
			Port:     3306,
			User:     "user",
			Password: "password",
			Name:     "recipes_db",
		},
		Auth: AuthConfig{
			Issuer:        "localhost",
			Audience:      "localhost",
			TokenTTL:      time.Hour,
			AdminEmail:    "admin@example.com",
			AdminPassword: "admin123",
			AdminUserID:   1,
		},
	}
}

// Load parses the configuration and validates it for serving requests.
// A missing JWT_SECRET is a fatal configuration error.
func Load() (*Config, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse reads an optional .env file and then the environment, without
// checking that the result is complete
func Parse() (*Config, error) {
	// .env is optional; real environment variables always win
	_ = godotenv.Load()

	cfg := Default()

	var err error
	setInt(&cfg.Port, "PORT", &err)
	setString(&cfg.BasePath, "BASE_PATH")
	setDuration(&cfg.ReadTimeout, "READ_TIMEOUT", &err)
	setDuration(&cfg.WriteTimeout, "WRITE_TIMEOUT", &err)
	setDuration(&cfg.ShutdownTimeout, "SHUTDOWN_TIMEOUT", &err)
	setFloat(&cfg.RateLimit, "RATE_LIMIT", &err)
	setInt(&cfg.RateLimitBurst, "RATE_LIMIT_BURST", &err)

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Path, "DB_PATH")
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT", &err)
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.MigrationsDir, "MIGRATIONS_DIR")

	setString(&cfg.Auth.Secret, "JWT_SECRET")
	setString(&cfg.Auth.Issuer, "JWT_ISSUER")
	setString(&cfg.Auth.Audience, "JWT_AUDIENCE")
	setDuration(&cfg.Auth.TokenTTL, "JWT_TTL", &err)
	setString(&cfg.Auth.AdminEmail, "ADMIN_EMAIL")
	setString(&cfg.Auth.AdminPassword, "ADMIN_PASSWORD")
	setInt(&cfg.Auth.AdminUserID, "ADMIN_USER_ID", &err)
	setBool(&cfg.Auth.RatingRequiresAuth, "RATING_REQUIRES_AUTH", &err)

	if err != nil {
		return nil, err
	}

	cfg.BasePath = normalizeBasePath(cfg.BasePath)
	return cfg, nil
}

// Validate checks settings that cannot be defaulted
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return ErrMissingSecret
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	return c.Database.Validate()
}

// Validate checks the driver is one we can talk to
func (d DatabaseConfig) Validate() error {
	switch d.Driver {
	case DriverSQLite, DriverMySQL:
		return nil
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", d.Driver)
	}
}

// Address returns the listen address for the HTTP server
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

func normalizeBasePath(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string, errp *error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		*errp = errors.Join(*errp, fmt.Errorf("invalid %s %q: %w", key, v, err))
		return
	}
	*dst = n
}

func setFloat(dst *float64, key string, errp *error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		*errp = errors.Join(*errp, fmt.Errorf("invalid %s %q: %w", key, v, err))
		return
	}
	*dst = f
}

func setBool(dst *bool, key string, errp *error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		*errp = errors.Join(*errp, fmt.Errorf("invalid %s %q: %w", key, v, err))
		return
	}
	*dst = b
}

func setDuration(dst *time.Duration, key string, errp *error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := cast.ToDurationE(v)
	if err != nil {
		*errp = errors.Join(*errp, fmt.Errorf("invalid %s %q: %w", key, v, err))
		return
	}
	*dst = d
}
