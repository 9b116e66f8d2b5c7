package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	Environment string `validate:"required"`
	ServiceName string `validate:"required"`
	Version     string

	APIKey         string
	TrustedProxies []string

	Storage    string `validate:"oneof=memory postgres sqlite"`
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int `validate:"min=1"`
	DBMaxIdle  time.Duration
	DBMaxLife  time.Duration
	SQLitePath string `validate:"required_if=Storage sqlite"`

	// Timezone decides the calendar day used by daily/weekly totals
	Timezone      string `validate:"required"`
	QuestPoolPath string

	CacheSize int           `validate:"min=1"`
	CacheTTL  time.Duration `validate:"min=0"`

	ActivityRetentionDays int           `validate:"min=0"`
	EventRetentionDays    int           `validate:"min=0"`
	CleanupInterval       time.Duration `validate:"min=0"`
	WorkerCount           int           `validate:"min=1"`

	EventMaxRetries     int           `validate:"min=0"`
	EventRetryDelay     time.Duration `validate:"min=0"`
	EventDeadLetterPath string        `validate:"required"`

	MealXP          int64 `validate:"min=0"`
	WorkoutXP       int64 `validate:"min=0"`
	WaterXPPerGlass int64 `validate:"min=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvAsInt("PORT", DefaultPort),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "fitquest"),
		Version:     getEnv("VERSION", "dev"),

		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		Storage:    strings.ToLower(getEnv("STORAGE", StorageMemory)),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "fitquest"),
		DBMaxConns: getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxIdle:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxLife:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		SQLitePath: getEnv("SQLITE_PATH", DefaultSQLitePath),

		Timezone:      getEnv("TIMEZONE", "Local"),
		QuestPoolPath: getEnv("QUEST_POOL_PATH", ConfigPathQuestPool),

		CacheSize: getEnvAsInt("CACHE_SIZE", DefaultCacheSize),
		CacheTTL:  getEnvAsDuration("CACHE_TTL", 5*time.Minute),

		ActivityRetentionDays: getEnvAsInt("ACTIVITY_RETENTION_DAYS", DefaultActivityRetentionDays),
		EventRetentionDays:    getEnvAsInt("EVENT_RETENTION_DAYS", DefaultEventRetentionDays),
		CleanupInterval:       getEnvAsDuration("CLEANUP_INTERVAL", 24*time.Hour),
		WorkerCount:           getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", 2*time.Second),
		EventDeadLetterPath: getEnv("EVENT_DEAD_LETTER_PATH", DefaultDeadLetterPath),

		MealXP:          int64(getEnvAsInt("MEAL_XP", DefaultMealXP)),
		WorkoutXP:       int64(getEnvAsInt("WORKOUT_XP", DefaultWorkoutXP)),
		WaterXPPerGlass: int64(getEnvAsInt("WATER_XP_PER_GLASS", DefaultWaterXPPerGlass)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints and that the timezone resolves
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return parsed
}
