package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/nobih83-prog/Nashwa01/pkg/config"
	"github.com/nobih83-prog/Nashwa01/pkg/database"
	"github.com/nobih83-prog/Nashwa01/pkg/tracing"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"

	OrderBackendKV       = "kv"
	OrderBackendPostgres = "postgres"
)

const defaultJWTSecret = "nashwa-dev-secret-change-me"

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"storefront"`

	// HTTP server
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	CatalogMaxAge   int           `env:"CATALOG_CACHE_MAX_AGE" envDefault:"300"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	PprofEnabled    bool          `env:"PPROF_ENABLED" envDefault:"false"`
	PprofCIDRs      []string      `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32,::1/128" envSeparator:","`

	// Session and shared key-value state
	StoreBackend string        `env:"STORE_BACKEND" envDefault:"memory"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Orders and inventory
	OrderBackend      string `env:"ORDER_BACKEND" envDefault:"kv"`
	StrictTransitions bool   `env:"ORDER_STRICT_TRANSITIONS" envDefault:"false"`

	// PostgreSQL
	PostgresHost       string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort       int           `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser       string        `env:"POSTGRES_USER" envDefault:"nashwa"`
	PostgresPass       string        `env:"POSTGRES_PASSWORD" envDefault:"nashwa"`
	PostgresDB         string        `env:"POSTGRES_DB" envDefault:"nashwa"`
	PostgresSSL        string        `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	PostgresMaxConns   int32         `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	SlowQueryThreshold time.Duration `env:"SLOW_QUERY_THRESHOLD" envDefault:"200ms"`

	// Kafka; an empty list disables event publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	// Checkout
	CheckoutLatency time.Duration `env:"CHECKOUT_LATENCY" envDefault:"1500ms"`

	// Admin authentication
	AdminEmail        string        `env:"ADMIN_EMAIL" envDefault:""`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH" envDefault:""`
	JWTSecret         string        `env:"JWT_SECRET" envDefault:"nashwa-dev-secret-change-me"`
	JWTExpiry         time.Duration `env:"JWT_EXPIRY" envDefault:"8h"`

	// Rate limiting of checkout and login
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"2"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	switch c.StoreBackend {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreMemory, StoreRedis, c.StoreBackend)
	}
	switch c.OrderBackend {
	case OrderBackendKV, OrderBackendPostgres:
	default:
		return fmt.Errorf("ORDER_BACKEND must be %q or %q, got %q", OrderBackendKV, OrderBackendPostgres, c.OrderBackend)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative")
	}
	if c.CheckoutLatency < 0 {
		return fmt.Errorf("CHECKOUT_LATENCY must not be negative")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %v", c.OTELSampleRate)
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}
	if c.Environment != "development" && c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be changed from default value in %s environment", c.Environment)
	}
	if c.AdminEmail != "" && c.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required when ADMIN_EMAIL is set")
	}
	return nil
}

// Postgres returns the connection settings for the order database.
func (c *Config) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPass
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSL
	if c.PostgresMaxConns > 0 {
		pg.MaxConns = c.PostgresMaxConns
	}
	return pg
}

// Redis returns the connection settings for the key-value store.
func (c *Config) Redis() database.RedisConfig {
	r := database.DefaultRedisConfig()
	r.Addr = c.RedisAddr
	r.Password = c.RedisPass
	r.DB = c.RedisDB
	return r
}

// Tracing returns the OpenTelemetry settings.
func (c *Config) Tracing() tracing.Config {
	t := tracing.DefaultConfig(c.ServiceName)
	t.Environment = c.Environment
	t.OTLPEndpoint = c.OTELEndpoint
	t.SampleRate = c.OTELSampleRate
	t.Enabled = c.OTELEnabled
	return t
}
