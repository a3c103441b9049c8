package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centralises runtime configuration. It is read once at process start
// and never mutated afterwards.
type Config struct {
	HTTPPort         string
	DatabaseURL      string
	JWTSecret        string
	JWTIssuer        string
	JWTExpiry        time.Duration
	ProductKeySecret string
	AllowedOrigins   []string
	ReadTimeoutSec   int
	WriteTimeoutSec  int
	IdleTimeoutSec   int
	LogLevel         string
	Environment      string
}

// Load reads configuration from environment variables providing sane defaults.
func Load() (Config, error) {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:         getEnv("HTTP_PORT", getEnv("PORT", "8080")),
		DatabaseURL:      resolveDatabaseURL(),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTIssuer:        getEnv("JWT_ISSUER", "realty"),
		JWTExpiry:        getDurationEnv("JWT_EXPIRY", 12*time.Hour),
		ProductKeySecret: getEnv("PRODUCT_KEY_SECRET", ""),
		AllowedOrigins:   splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeoutSec:   getIntEnv("HTTP_READ_TIMEOUT", 15),
		WriteTimeoutSec:  getIntEnv("HTTP_WRITE_TIMEOUT", 15),
		IdleTimeoutSec:   getIntEnv("HTTP_IDLE_TIMEOUT", 60),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Environment:      getEnv("APP_ENV", "development"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database configuration missing: provide DATABASE_URL or PG* env vars")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ProductKeySecret == "" {
		return Config{}, fmt.Errorf("PRODUCT_KEY_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := []string{}
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return []string{"*"}
	}
	return parts
}

// resolveDatabaseURL prefers a full DATABASE_URL and otherwise assembles a
// DSN from the conventional PG* variables.
func resolveDatabaseURL() string {
	for _, key := range []string{"DATABASE_URL", "POSTGRES_URL", "PGURL"} {
		if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
			if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
				return normalisePostgresScheme(raw)
			}
		}
	}

	host := firstNonEmpty(os.Getenv("PGHOST"), os.Getenv("POSTGRES_HOST"))
	user := firstNonEmpty(os.Getenv("PGUSER"), os.Getenv("POSTGRES_USER"))
	if host == "" || user == "" {
		return ""
	}
	password := firstNonEmpty(os.Getenv("PGPASSWORD"), os.Getenv("POSTGRES_PASSWORD"))
	database := firstNonEmpty(os.Getenv("PGDATABASE"), os.Getenv("POSTGRES_DB"), user)
	port := firstNonEmpty(os.Getenv("PGPORT"), os.Getenv("POSTGRES_PORT"), "5432")
	sslMode := firstNonEmpty(os.Getenv("PGSSLMODE"), os.Getenv("POSTGRES_SSL_MODE"), "require")

	dsn := &neturl.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + database,
	}
	dsn.User = neturl.User(user)
	if password != "" {
		dsn.User = neturl.UserPassword(user, password)
	}

	query := dsn.Query()
	query.Set("sslmode", sslMode)
	dsn.RawQuery = query.Encode()

	return dsn.String()
}

func normalisePostgresScheme(url string) string {
	if strings.HasPrefix(url, "postgresql://") {
		return "postgres://" + strings.TrimPrefix(url, "postgresql://")
	}
	return url
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
