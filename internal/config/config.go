package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type MySQL struct {
	DSN                    string
	User                   string
	Password               string
	Host                   string
	Port                   string
	Database               string
	Params                 string
	InstanceConnectionName string
}

type Config struct {
	Port    string
	GinMode string

	MySQL    MySQL
	MongoURI string
	MongoDB  string

	AdminEmails EmailSet

	SessionSecret string
	SessionTTL    time.Duration
	SessionStore  string
	CookieSecure  bool

	FirebaseProjectID string

	TranslateAPIKey   string
	TranslateEndpoint string
	TranslateTimeout  time.Duration

	AuditWebhookURL string
	AuditTimeout    time.Duration

	CORSOrigins    []string
	TrustedProxies []string
	LogLevel       string
	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() Config {
	return Config{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
		MySQL: MySQL{
			DSN:                    getEnvOrDefault("MYSQL_DSN", ""),
			User:                   getEnvOrDefault("MYSQL_USER", getEnvOrDefault("DB_USER", "restaurant")),
			Password:               getEnvOrDefault("MYSQL_PASSWORD", getEnvOrDefault("DB_PASS", "")),
			Host:                   getEnvOrDefault("MYSQL_HOST", "127.0.0.1"),
			Port:                   getEnvOrDefault("MYSQL_PORT", "3306"),
			Database:               getEnvOrDefault("MYSQL_DATABASE", getEnvOrDefault("DB_NAME", "restaurant")),
			Params:                 getEnvOrDefault("MYSQL_PARAMS", "charset=utf8mb4&parseTime=True&loc=UTC"),
			InstanceConnectionName: getEnvOrDefault("INSTANCE_CONNECTION_NAME", ""),
		},
		MongoURI:          getEnvOrDefault("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:           getEnvOrDefault("MONGO_DB", "restaurant_app"),
		AdminEmails:       ParseEmailSet(getEnvOrDefault("ADMIN_EMAILS", getEnvOrDefault("ADMIN_EMAIL", ""))),
		SessionSecret:     getEnvOrDefault("SESSION_SECRET", getEnvOrDefault("FLASK_SECRET_KEY", "")),
		SessionTTL:        getDurationEnv("SESSION_TTL_HOURS", 24, time.Hour),
		SessionStore:      strings.ToLower(getEnvOrDefault("SESSION_STORE", "mongo")),
		CookieSecure:      getBoolEnv("COOKIE_SECURE", true),
		FirebaseProjectID: getEnvOrDefault("FIREBASE_PROJECT_ID", getEnvOrDefault("GOOGLE_CLOUD_PROJECT", "")),
		TranslateAPIKey:   getEnvOrDefault("TRANSLATE_API_KEY", ""),
		TranslateEndpoint: getEnvOrDefault("TRANSLATE_ENDPOINT", "https://translation.googleapis.com/language/translate/v2"),
		TranslateTimeout:  getDurationEnv("TRANSLATE_TIMEOUT_SECONDS", 10, time.Second),
		AuditWebhookURL:   getEnvOrDefault("AUDIT_WEBHOOK_URL", ""),
		AuditTimeout:      getDurationEnv("AUDIT_TIMEOUT_SECONDS", 3, time.Second),
		CORSOrigins:       splitList(getEnvOrDefault("CORS_ORIGINS", "")),
		TrustedProxies:    splitList(getEnvOrDefault("TRUSTED_PROXIES", "")),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		RateLimitRPS:      getFloatEnv("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getIntEnv("RATE_LIMIT_BURST", 10),
	}
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if c.FirebaseProjectID == "" {
		errs = append(errs, errors.New("FIREBASE_PROJECT_ID is required"))
	}
	if c.SessionStore != "mongo" && c.SessionStore != "memory" {
		errs = append(errs, errors.New("SESSION_STORE must be mongo or memory"))
	}
	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
