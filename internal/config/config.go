package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	CORSOrigin  string
	// Shared directory password; every account signs in with it.
	LoginPassword  string
	MeiliURL       string
	MeiliMasterKey string
	// SMTP Configuration
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	// Redis Configuration
	RedisURL string
}

func Load() Config {
	return Config{
		Addr:          getenv("API_ADDR", ":8686"),
		DatabaseURL:   getenv("DATABASE_URL", ""),
		JWTSecret:     getenv("TALKSPOT_JWT_SECRET", "talkspot-dev-secret"),
		AccessTTL:     time.Duration(getenvInt("TALKSPOT_ACCESS_TTL_SECONDS", 900)) * time.Second,
		RefreshTTL:    time.Duration(getenvInt("TALKSPOT_REFRESH_TTL_SECONDS", 2592000)) * time.Second,
		CORSOrigin:    getenv("TALKSPOT_CORS_ORIGIN", "*"),
		LoginPassword: getenv("TALKSPOT_LOGIN_PASSWORD", "password"),
		// Meilisearch - empty by default, search falls back to the in-memory scanner
		MeiliURL:       getenv("MEILI_URL", ""),
		MeiliMasterKey: getenv("MEILI_MASTER_KEY", ""),
		// SMTP - empty by default, reminder digests disabled if not configured
		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		SMTPFrom:     getenv("SMTP_FROM", ""),
		SMTPFromName: getenv("SMTP_FROM_NAME", "TalkSpot"),
		// Redis - optional; refresh tokens fall back to in-process storage
		RedisURL: getenv("REDIS_URL", ""),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
