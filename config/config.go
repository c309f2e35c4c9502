package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSQLiteDSN = "inventory.db"
	defaultHTTPAddr  = ":3001"
)

// Config holds every runtime setting of the inventory service.
type Config struct {
	AppEnv   string
	HTTPAddr string

	DBDriver          string
	DatabaseDSN       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	SeedOnStart       bool

	CORSOrigins          []string
	MaxBodyBytes         int64
	ExposeInternalErrors bool

	LogLevel  string
	LogFormat string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// Load reads the optional .env file, then the process environment.
// Values already present in the environment win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	p := &parser{}
	cfg := &Config{
		AppEnv:   strings.ToLower(getEnv("APP_ENV", "local")),
		HTTPAddr: httpAddr(),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DatabaseDSN: getEnv("DATABASE_DSN", ""),
		SeedOnStart: p.boolValue("SEED_ON_START", true),

		CORSOrigins:          splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MaxBodyBytes:         p.int64Value("MAX_BODY_BYTES", 1<<20),
		ExposeInternalErrors: p.boolValue("EXPOSE_INTERNAL_ERRORS", true),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "")),

		ReadTimeout:     p.durationValue("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    p.durationValue("WRITE_TIMEOUT", 15*time.Second),
		ShutdownTimeout: p.durationValue("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.DatabaseDSN == "" {
			cfg.DatabaseDSN = defaultSQLiteDSN
		}
		// sqlite serializes writers; a single connection avoids SQLITE_BUSY churn.
		cfg.DBMaxOpenConns = p.intValue("DB_MAX_OPEN_CONNS", 1)
	case DriverPostgres:
		if cfg.DatabaseDSN == "" {
			p.errs = append(p.errs, errors.New("DATABASE_DSN is required when DB_DRIVER=postgres"))
		}
		cfg.DBMaxOpenConns = p.intValue("DB_MAX_OPEN_CONNS", 25)
	default:
		p.errs = append(p.errs, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres)", cfg.DBDriver))
	}
	cfg.DBMaxIdleConns = p.intValue("DB_MAX_IDLE_CONNS", cfg.DBMaxOpenConns)
	cfg.DBConnMaxLifetime = p.durationValue("DB_CONN_MAX_LIFETIME", 5*time.Minute)

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
		if cfg.IsProduction() {
			cfg.LogFormat = "json"
		}
	}

	if err := errors.Join(p.errs...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Warnings lists settings that are acceptable locally but risky in production.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.ExposeInternalErrors {
		warnings = append(warnings, "EXPOSE_INTERNAL_ERRORS is on: 500 responses carry raw datastore errors")
	}
	for _, o := range c.CORSOrigins {
		if o == "*" {
			warnings = append(warnings, "CORS_ALLOWED_ORIGINS allows every origin")
			break
		}
	}
	return warnings
}

// httpAddr prefers HTTP_ADDR and falls back to a bare PORT.
func httpAddr() string {
	if addr := getEnv("HTTP_ADDR", ""); addr != "" {
		return addr
	}
	if port := getEnv("PORT", ""); port != "" {
		return ":" + strings.TrimPrefix(port, ":")
	}
	return defaultHTTPAddr
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parser collects conversion errors so Load can report all of them at once.
type parser struct {
	errs []error
}

func (p *parser) intValue(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid non-negative integer %q", key, raw))
		return def
	}
	return v
}

func (p *parser) int64Value(key string, def int64) int64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid positive integer %q", key, raw))
		return def
	}
	return v
}

func (p *parser) boolValue(key string, def bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid boolean %q", key, raw))
		return def
	}
	return v
}

func (p *parser) durationValue(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return def
	}
	return v
}
