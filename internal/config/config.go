// Package config loads the process-wide settings once at startup.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting of the service. It is built once by Load and
// passed by value to the components that need it.
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Postgres  PostgresConfig
	JWT       JWTConfig
	Reset     ResetConfig
	Mail      MailConfig
	Kafka     KafkaConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	ErrorLog  ErrorLogConfig
}

type AppConfig struct {
	Host     string
	Port     string
	Env      string
	LogLevel string
}

// IsProduction reports whether internal details must be hidden from clients.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// Addr returns host:port for the HTTP listener.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// HTTPConfig controls how the router treats its peers.
type HTTPConfig struct {
	// TrustedProxies are the peers whose X-Forwarded-For and X-Real-IP
	// headers are believed. Everyone else is identified by the socket address.
	TrustedProxies []netip.Prefix
	// CORSOrigins are the browser origins allowed to call the API.
	CORSOrigins []string
}

type PostgresConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DB           string
	MaxOpenConns int
	MaxIdleConns int
}

// DSN returns the pgx connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.DB)
}

type JWTConfig struct {
	SecretKey string
	Exp       time.Duration
}

type ResetConfig struct {
	TokenTTL    time.Duration
	FrontendURL string
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether at least one broker is configured.
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

type RedisConfig struct {
	Host         string
	Port         int
	DB           int
	Password     string
	PoolSize     int
	MinIdleConns int
}

// Addr returns host:port of the Redis server.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RateLimitConfig struct {
	Enabled bool
	Max     int
	Window  time.Duration
}

type ErrorLogConfig struct {
	Enabled bool
}

const defaultJWTSecret = "my_super_secret_key"

// Load reads environment variables from the file at path (a missing file is
// not an error) and returns the resulting configuration. Variables already set
// in the environment win over the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var (
		cfg Config
		err error
	)

	// Application config
	cfg.App.Host = getEnv("APP_HOST", "localhost")
	cfg.App.Port = getEnv("APP_PORT", "8080")
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.Postgres.Host = getEnv("POSTGRES_HOST", "localhost")
	cfg.Postgres.User = getEnv("POSTGRES_USER", "user")
	cfg.Postgres.Password = getEnv("POSTGRES_PASSWORD", "password")
	cfg.Postgres.DB = getEnv("POSTGRES_DB", "database")
	if cfg.Postgres.Port, err = atoi("POSTGRES_PORT", getEnv("POSTGRES_PORT", "5432")); err != nil {
		return nil, err
	}
	if cfg.Postgres.MaxOpenConns, err = atoi("POSTGRES_MAX_OPEN_CONNS", getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return nil, err
	}
	if cfg.Postgres.MaxIdleConns, err = atoi("POSTGRES_MAX_IDLE_CONNS", getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return nil, err
	}

	// JWT config
	// a well known secret lets anyone mint tokens, production must set its own
	cfg.JWT.SecretKey = getEnv("JWT_SECRET_KEY", "")
	if cfg.JWT.SecretKey == "" {
		if cfg.App.IsProduction() {
			return nil, errors.New("JWT_SECRET_KEY: must be set when APP_ENV=production")
		}
		cfg.JWT.SecretKey = defaultJWTSecret
	}
	if cfg.JWT.Exp, err = duration("JWT_EXP", getEnv("JWT_EXP", "168h")); err != nil {
		return nil, err
	}

	// Password reset config
	if cfg.Reset.TokenTTL, err = duration("RESET_TOKEN_TTL", getEnv("RESET_TOKEN_TTL", "10m")); err != nil {
		return nil, err
	}
	cfg.Reset.FrontendURL = strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/")

	// HTTP config
	if cfg.HTTP.TrustedProxies, err = prefixes("TRUSTED_PROXIES", getEnv("TRUSTED_PROXIES", "")); err != nil {
		return nil, err
	}
	for _, origin := range splitList(getEnv("CORS_TRUSTED_ORIGINS", cfg.Reset.FrontendURL)) {
		cfg.HTTP.CORSOrigins = append(cfg.HTTP.CORSOrigins, strings.TrimRight(origin, "/"))
	}

	// SMTP config
	cfg.Mail.Host = getEnv("EMAIL_HOST", "localhost")
	if cfg.Mail.Port, err = atoi("EMAIL_PORT", getEnv("EMAIL_PORT", "587")); err != nil {
		return nil, err
	}
	cfg.Mail.User = getEnv("EMAIL_USER", "")
	cfg.Mail.Password = getEnv("EMAIL_PASSWORD", "")
	cfg.Mail.From = getEnv("EMAIL_FROM", fmt.Sprintf("Todo App <%s>", cfg.Mail.User))

	// Kafka config
	cfg.Kafka.Brokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.Kafka.Topic = getEnv("KAFKA_TOPIC", "todo-events")

	// Redis config
	cfg.Redis.Host = getEnv("REDIS_HOST", "localhost")
	if cfg.Redis.Port, err = atoi("REDIS_PORT", getEnv("REDIS_PORT", "6379")); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = atoi("REDIS_DB", getEnv("REDIS_DB", "0")); err != nil {
		return nil, err
	}
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	if cfg.Redis.PoolSize, err = atoi("REDIS_POOL_SIZE", getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return nil, err
	}
	if cfg.Redis.MinIdleConns, err = atoi("REDIS_MIN_IDLE_CONNS", getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return nil, err
	}

	// Rate limit config
	if cfg.RateLimit.Enabled, err = parseBool("RATE_LIMIT_ENABLED", getEnv("RATE_LIMIT_ENABLED", "false")); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Max, err = atoi("RATE_LIMIT_MAX", getEnv("RATE_LIMIT_MAX", "10")); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Window, err = duration("RATE_LIMIT_WINDOW", getEnv("RATE_LIMIT_WINDOW", "1m")); err != nil {
		return nil, err
	}

	// Error log config
	if cfg.ErrorLog.Enabled, err = parseBool("ERROR_LOG_ENABLED", getEnv("ERROR_LOG_ENABLED", "true")); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func atoi(key, val string) (int, error) {
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func duration(key, val string) (time.Duration, error) {
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func parseBool(key, val string) (bool, error) {
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// splitList splits a comma separated value, dropping blank items.
func splitList(val string) []string {
	var items []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// prefixes parses a comma separated list of IP addresses and CIDR ranges.
func prefixes(key, val string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, item := range splitList(val) {
		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}
