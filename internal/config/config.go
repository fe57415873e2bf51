package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the recommendation service.
type Config struct {
	DB       DBConfig
	Redis    RedisConfig
	Provider ProviderConfig
	Engine   EngineConfig
	Port     string
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLRootCert string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ProviderConfig holds upstream content provider configuration.
type ProviderConfig struct {
	BaseURL string
	Token   string
}

// EngineConfig holds recommendation engine tuning. Values are passed down
// explicitly so tests can run with their own configuration in parallel.
type EngineConfig struct {
	HalfLife        time.Duration
	RecencyWindow   time.Duration
	RefreshInterval time.Duration
	MaxAbsWeight    float64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	maxWeight, _ := strconv.ParseFloat(getEnv("ENGINE_MAX_ABS_WEIGHT", "10"), 64)

	cfg := &Config{
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "video_recommendation"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Provider: ProviderConfig{
			BaseURL: getEnv("API_BASE_URL", ""),
			Token:   getEnv("FLIC_TOKEN", ""),
		},
		Engine: EngineConfig{
			HalfLife:        getDuration("ENGINE_HALF_LIFE", 72*time.Hour),
			RecencyWindow:   getDuration("ENGINE_RECENCY_WINDOW", 720*time.Hour),
			RefreshInterval: getDuration("ENGINE_REFRESH_INTERVAL", 5*time.Minute),
			MaxAbsWeight:    maxWeight,
		},
		Port: getEnv("SERVER_PORT", "8080"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
