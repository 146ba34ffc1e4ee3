package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	AppEnv             string
	LogLevel           string
	JWTSecret          string
	AdminEmail         string
	AdminPasswordHash  string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	AllowedEmails      []string
	DashboardURL       string
	ImageBucket        string
	ImagePublicURL     string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", "file:db.sqlite"),
		AppEnv:             getEnv("APP_ENV", "local"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		AdminEmail:         getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/google/callback"),
		AllowedEmails:      splitList(getEnv("ALLOWED_EMAILS", "")),
		DashboardURL:       getEnv("DASHBOARD_URL", "/dashboard"),
		ImageBucket:        getEnv("IMAGE_BUCKET", "places"),
		ImagePublicURL:     getEnv("IMAGE_PUBLIC_URL", "http://localhost:9000"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
