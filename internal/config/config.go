package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Env string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Database
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBSQLitePath   string
	MigrationsPath string

	// Credentials
	JWTSecret          string
	TokenTTL           time.Duration // zero means tokens never expire
	AcceptRawToken     bool
	AdminAPIKey        string
	MaxFailedLogins    int
	LoginLockoutPeriod time.Duration

	// Uniqueness policies
	AccountUniqueness     string
	SubCategoryUniqueness string
}

const devJWTSecret = "fallback-secret-key-for-dev-only"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env: getEnv("ENV", "development"),

		// Server
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),

		// Database
		DBDriver:       getEnv("DB_DRIVER", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "haybank"),
		DBPassword:     getEnv("DB_PASSWORD", "haybank"),
		DBName:         getEnv("DB_NAME", "money"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		DBSQLitePath:   getEnv("DB_SQLITE_PATH", "haybank.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		// Credentials
		JWTSecret:          getEnv("JWT_SECRET", devJWTSecret),
		TokenTTL:           getDuration("TOKEN_TTL", 24*time.Hour),
		AcceptRawToken:     getBool("AUTH_ACCEPT_RAW_TOKEN", false),
		AdminAPIKey:        getEnv("ADMIN_API_KEY", ""),
		MaxFailedLogins:    getInt("MAX_FAILED_LOGINS", 5),
		LoginLockoutPeriod: getDuration("LOGIN_LOCKOUT_PERIOD", 15*time.Minute),

		// Uniqueness policies
		AccountUniqueness:     getEnv("ACCOUNT_UNIQUENESS", "description_bank"),
		SubCategoryUniqueness: getEnv("SUBCATEGORY_UNIQUENESS", "global"),
	}

	return config, nil
}

// ValidateServer checks the settings the API server cannot run without.
// In production the token signing secret must be set explicitly.
func (c *Config) ValidateServer() error {
	if c.Env == "production" && (c.JWTSecret == "" || c.JWTSecret == devJWTSecret) {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if raw == "0" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %t\n", key, raw, defaultValue)
		return defaultValue
	}
	return b
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}
