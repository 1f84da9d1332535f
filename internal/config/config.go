package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Env            string
	Port           int
	StoreDriver    string
	DBURL          string
	MigrateOnStart bool

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CardsCacheTTL time.Duration

	OTelEndpoint   string
	AllowedOrigins []string
	MaxBodyBytes   int64
}

// Load reads the process configuration from the environment. The signing
// secret has no default; outside dev the database address has none either.
func Load() (Config, error) {
	var errs []error

	env := getEnv("APP_ENV", "dev")
	driver := getEnv("STORE_DRIVER", StorePostgres)

	cfg := Config{
		Env:            env,
		Port:           getEnvInt("PORT", 3001, &errs),
		StoreDriver:    driver,
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", env == "dev", &errs),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTTTL:         time.Duration(getEnvInt("JWT_TTL_HOURS", 24*7, &errs)) * time.Hour,
		BcryptCost:     getEnvInt("BCRYPT_COST", 10, &errs),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0, &errs),
		CardsCacheTTL:  time.Duration(getEnvInt("CARDS_CACHE_TTL_SECONDS", 5, &errs)) * time.Second,
		OTelEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 1<<20, &errs)),
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	switch driver {
	case StorePostgres:
		dbURL, err := DatabaseURL(env)
		if err != nil {
			errs = append(errs, err)
		}
		cfg.DBURL = dbURL
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StorePostgres, StoreMemory, driver))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DatabaseURL prefers DATABASE_URL. In dev it falls back to a local
// connection assembled from the DB_* variables.
func DatabaseURL(env string) (string, error) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v, nil
	}

	if env != "dev" && os.Getenv("DB_HOST") == "" {
		return "", errors.New("DATABASE_URL or DB_HOST is required outside dev")
	}

	return buildDBURL(), nil
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "mesto")
	pass := getEnv("DB_PASSWORD", "mesto")
	name := getEnv("DB_NAME", "mestodb")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool, errs *[]error) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)

		if err != nil {
			*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
			return fallback
		}

		return b
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
