package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration read from the environment once at
// startup. Handlers never touch os.Getenv directly.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins []string

	RedisAddr  string
	AdminEmail string
}

// Load reads configuration from the environment. JWT_SECRET, JWT_TTL_HOURS,
// and DATABASE_URL are mandatory: a missing signing key or token lifetime
// must stop the process instead of silently falling back to a baked-in
// value.
func Load() (Config, error) {
	cfg := Config{
		Port:        fallback(os.Getenv("PORT"), "3001"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		CORSOrigins: parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "http://localhost:5173")),
		RedisAddr:   fallback(os.Getenv("REDIS_ADDR"), "localhost:6379"),
		AdminEmail:  fallback(os.Getenv("ADMIN_EMAIL"), "admin@bloghub.local"),
	}

	if cfg.DatabaseURL == "" {
		// Assemble from discrete vars as a fallback for docker-compose style envs
		if os.Getenv("DB_HOST") != "" {
			cfg.DatabaseURL = fmt.Sprintf(
				"postgres://%s:%s@%s:%s/%s",
				os.Getenv("DB_USER"),
				os.Getenv("DB_PASSWORD"),
				os.Getenv("DB_HOST"),
				fallback(os.Getenv("DB_PORT"), "5432"),
				os.Getenv("DB_NAME"),
			)
		}
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	ttlStr := strings.TrimSpace(os.Getenv("JWT_TTL_HOURS"))
	if ttlStr == "" {
		return Config{}, errors.New("JWT_TTL_HOURS is required")
	}
	ttl, err := parseTTL(ttlStr)
	if err != nil {
		return Config{}, err
	}
	cfg.JWTTTL = ttl

	return cfg, nil
}

// HTTPAddress returns the listen address for the HTTP server.
func (c Config) HTTPAddress() string {
	return ":" + c.Port
}

func parseTTL(hours string) (time.Duration, error) {
	n, err := strconv.Atoi(hours)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid JWT_TTL_HOURS value: %q", hours)
	}
	return time.Duration(n) * time.Hour, nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
