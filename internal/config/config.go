package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage drivers understood by kv.Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Storage
	StorageDriver string
	SQLitePath    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	RedisURL      string
	KeyPrefix     string

	// Inventory rules
	TransactionLogCap int
	DefaultMinStock   int

	// QR rendering defaults
	QRSize       int
	QRForeground string
	QRBackground string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		StorageDriver: getEnv("STORAGE_DRIVER", DriverSQLite),
		SQLitePath:    getEnv("SQLITE_PATH", "stockqr.db"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "stockqr"),
		DBPassword:    getEnv("DB_PASSWORD", "stockqr"),
		DBName:        getEnv("DB_NAME", "stockqr"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		KeyPrefix:     getEnv("KEY_PREFIX", "stock_qr_"),

		TransactionLogCap: getEnvInt("TRANSACTION_LOG_CAP", 1000),
		DefaultMinStock:   getEnvInt("DEFAULT_MIN_STOCK", 10),

		QRSize:       getEnvInt("QR_SIZE", 250),
		QRForeground: getEnv("QR_FOREGROUND", "#000000"),
		QRBackground: getEnv("QR_BACKGROUND", "#ffffff"),
	}

	appConfig = config
	return config, nil
}

// Default returns the configuration used when nothing is set in the
// environment. Tests build on it instead of reading the process env.
func Default() *Config {
	return &Config{
		Env:               "development",
		Port:              "8080",
		StorageDriver:     DriverMemory,
		KeyPrefix:         "stock_qr_",
		TransactionLogCap: 1000,
		DefaultMinStock:   10,
		QRSize:            250,
		QRForeground:      "#000000",
		QRBackground:      "#ffffff",
	}
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses a positive integer variable, falling back to the default
// when it is unset or malformed.
func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}
