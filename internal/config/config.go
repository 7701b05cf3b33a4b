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

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Aggregator AggregatorConfig
	Auth       AuthConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	// SeedDevData inserts sample listings into an empty database on boot.
	SeedDevData bool
}

type DatabaseConfig struct {
	DBHost         string
	DBPort         string
	DBName         string
	DBUser         string
	DBPassword     string
	DBSSLMode      string
	ConnectTimeout time.Duration
	PoolMaxConns   int32
	PoolMinConns   int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type AggregatorConfig struct {
	// IntervalHours is the cadence of the recurring aggregation run.
	IntervalHours int
	// StaleAfter is the window after which an unreported listing expires.
	StaleAfter time.Duration
	// HTTPTimeout bounds each outbound provider request.
	HTTPTimeout time.Duration
}

type AuthConfig struct {
	// AdminSecret verifies bearer tokens on the manual trigger route.
	AdminSecret string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		SeedDevData: optBool("SEED_DEV_DATA"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         opt("DB_PORT"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      opt("DB_SSL_MODE"),
		ConnectTimeout: optDuration("DB_CONNECT_TIMEOUT_SECONDS", 5*time.Second),
		PoolMaxConns:   int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:   int32(optInt("DB_POOL_MIN_CONNS", 0)),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optDuration("REDIS_TTL_SECONDS", 600*time.Second),
	}

	cfg.Aggregator = AggregatorConfig{
		IntervalHours: optInt("AGGREGATE_INTERVAL_HOURS", 6),
		StaleAfter:    time.Duration(optInt("LISTING_STALE_HOURS", 48)) * time.Hour,
		HTTPTimeout:   optDuration("AGGREGATE_HTTP_TIMEOUT_SECONDS", 15*time.Second),
	}

	cfg.Auth = AuthConfig{
		AdminSecret: opt("ADMIN_JWT_SECRET"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}

func optInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func optDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}
