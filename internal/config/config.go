package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session tokens. Tokens carry no expiry, so rotating the secret is the
	// only way to invalidate them.
	JWTSecret string

	// Credentials
	BcryptCost    int
	AdminUsername string
	AdminPassword string

	// Server
	Port           string
	CORSOrigins    string
	BodyLimitMB    int
	LoginRateLimit int

	// Observability
	LogRetention time.Duration
	SentryDSN    string
	AppEnv       string
}

func Load() *Config {
	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DB_PATH", "./db.sqlite3"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "pickup_ledger"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		BcryptCost:    parseInt(getEnv("BCRYPT_COST", "10"), 10),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "adminpass"),

		Port:           getEnv("PORT", "5000"),
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
		BodyLimitMB:    parseInt(getEnv("BODY_LIMIT_MB", "10"), 10),
		LoginRateLimit: parseInt(getEnv("LOGIN_RATE_LIMIT", "10"), 10),

		LogRetention: time.Duration(parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30)) * 24 * time.Hour,
		SentryDSN:    getEnv("SENTRY_DSN", ""),
		AppEnv:       getEnv("APP_ENV", "development"),
	}
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return "host=" + c.DBHost +
			" user=" + c.DBUser +
			" password=" + c.DBPassword +
			" dbname=" + c.DBName +
			" port=" + c.DBPort +
			" sslmode=" + c.DBSSLMode +
			" TimeZone=UTC"
	}
	return c.DBPath
}

// BodyLimit is the maximum request body size in bytes. Signature images
// travel inline, so this needs to stay in the megabyte range.
func (c *Config) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
