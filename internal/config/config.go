package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For session lifetime

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	DBDriver       string        // Database driver: mysql or sqlite
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	DBPath         string        // SQLite file path
	DBMaxOpenConns int           // Connection pool size
	RedisAddr      string        // Redis server address
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	SessionSecret  string        // HMAC key for the session cookie
	SessionTTL     time.Duration // Session lifetime
	IsProd         bool          // Is production environment
	StaticDir      string        // Directory holding the HTML shells
	AdminUsername  string        // Bootstrap admin username
	AdminEmail     string        // Bootstrap admin email
	AdminPassword  string        // Bootstrap admin password
	Currency       string        // Currency label printed on statements
	LogLevel       string        // Logrus level
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		DBDriver:       getEnv("DB_DRIVER", "mysql"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBHost:         getEnv("DB_HOST", "127.0.0.1"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBName:         getEnv("DB_NAME", "debt_ledger"),
		DBPath:         getEnv("DB_PATH", "./data/ledger.db"),
		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 10),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:      os.Getenv("REDIS_PASS"),
		RedisDB:        getInt("REDIS_DB", 0),
		SessionSecret:  getEnv("SESSION_SECRET", "change-me"),
		SessionTTL:     getDuration("SESSION_TTL", 24*time.Hour),
		IsProd:         os.Getenv("IS_PROD") == "true",
		StaticDir:      getEnv("STATIC_DIR", "./web"),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@ledger.local"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
		Currency:       os.Getenv("STATEMENT_CURRENCY"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

// MySQLDSN builds the Data Source Name for the MySQL driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}
