package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// Hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often PgBouncer/pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	DB DBConfig

	// SessionSecret signs the HS256 session tokens issued at login.
	SessionSecret string

	// SessionTTLHours bounds how long a session token stays valid.
	SessionTTLHours int

	// UploadDir is where identity documents and event posters are stored.
	UploadDir string

	// MaxUploadBytes caps a single document upload.
	MaxUploadBytes int64

	// AllowedOrigins is a comma-separated allowlist of origins allowed to call
	// the portal API from a browser. Example:
	//   https://portal.centrodomi.it,http://localhost:5173
	AllowedOrigins []string

	LogLevel string
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "bookingportal"),
			User:     env("DB_USER", "bookingportal"),
			Password: env("DB_PASSWORD", "bookingportal"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionTTLHours: envInt("SESSION_TTL_HOURS", 24),
		UploadDir:       env("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:  int64(envInt("MAX_UPLOAD_MB", 5)) * 1024 * 1024,
		AllowedOrigins:  envList("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173"),
		LogLevel:        env("LOG_LEVEL", "info"),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return fallback
		}
		n = n*10 + int(v[i]-'0')
	}
	return n
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	start := 0
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == ',' {
			s := v[start:i]
			start = i + 1
			// trim spaces
			for len(s) > 0 && (s[0] == ' ' || s[0] == '\t' || s[0] == '\n' || s[0] == '\r') {
				s = s[1:]
			}
			for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t' || s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
				s = s[:len(s)-1]
			}
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
