package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Database
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SQLitePath  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Default admin account, created on first start
	AdminUsername string
	AdminPassword string

	// Club branding used on invoices
	ClubName       string
	ClubTagline    string
	CurrencySymbol string

	// Storage
	UploadDir string

	// Logs
	LogLevel         string
	LogRetentionDays int

	// Server
	Port        string
	CORSOrigins string

	// Error tracking
	SentryDSN string
	AppEnv    string
}

func Load() *Config {
	return &Config{
		DatabaseURL: normalizeDatabaseURL(getEnv("DATABASE_URL", "")),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "academy_db"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		SQLitePath:  getEnv("SQLITE_PATH", "academy.db"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "8h")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin122"),

		ClubName:       getEnv("CLUB_NAME", "Boshkash Academy"),
		ClubTagline:    getEnv("CLUB_TAGLINE", "Professional Football Training"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),

		UploadDir: getEnv("UPLOAD_DIR", "static/uploads"),

		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),

		Port:        getEnv("PORT", "5000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", "development"),
	}
}

// Driver reports which GORM dialect the configuration selects.
func (c *Config) Driver() string {
	if c.DatabaseURL != "" || c.DBPassword != "" {
		return "postgres"
	}
	return "sqlite"
}

func (c *Config) DSN() string {
	switch {
	case c.DatabaseURL != "":
		return c.DatabaseURL
	case c.DBPassword != "":
		return "host=" + c.DBHost +
			" user=" + c.DBUser +
			" password=" + c.DBPassword +
			" dbname=" + c.DBName +
			" port=" + c.DBPort +
			" sslmode=" + c.DBSSLMode +
			" TimeZone=UTC"
	default:
		return c.SQLitePath
	}
}

// Heroku-style URLs use the postgres:// scheme.
func normalizeDatabaseURL(url string) string {
	if strings.HasPrefix(url, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(url, "postgres://")
	}
	return url
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
