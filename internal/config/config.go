package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	BotToken     string
	GeminiAPIKey string
	AdminChatID  int64

	GeminiModel       string
	GeminiVisionModel string

	MaxMessageLength int
	VoiceLanguage    string
	DefaultLanguage  string
	BroadcastDelay   time.Duration

	Port        int
	Environment string
	LogLevel    string

	StorageDriver string
	UsersFile     string
	Database      DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:          os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiVisionModel: getEnv("GEMINI_VISION_MODEL", "gemini-2.0-flash"),
		VoiceLanguage:     getEnv("VOICE_LANGUAGE", "ar"),
		DefaultLanguage:   getEnv("DEFAULT_LANGUAGE", "ar"),
		Environment:       getEnv("ENVIRONMENT", "production"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageFile)),
		UsersFile:         getEnv("USERS_FILE", "data/users.json"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "aibot"),
			User:     getEnv("DB_USER", "aibot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	var err error
	if cfg.AdminChatID, err = getEnvInt64("ADMIN_CHAT_ID", 0); err != nil {
		return nil, err
	}
	if cfg.MaxMessageLength, err = getEnvInt("MAX_MESSAGE_LENGTH", 4000); err != nil {
		return nil, err
	}
	if cfg.Port, err = getEnvInt("PORT", 8000); err != nil {
		return nil, err
	}
	if cfg.BroadcastDelay, err = getEnvDuration("BROADCAST_DELAY", 100*time.Millisecond); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every missing required value in a single error
func (c *Config) Validate() error {
	var missing []string
	if c.BotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.AdminChatID == 0 {
		missing = append(missing, "ADMIN_CHAT_ID")
	}
	if c.StorageDriver == StoragePostgres && c.Database.Password == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	switch c.StorageDriver {
	case StorageFile, StoragePostgres:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.MaxMessageLength <= 0 {
		return fmt.Errorf("MAX_MESSAGE_LENGTH must be positive, got %d", c.MaxMessageLength)
	}
	if c.BroadcastDelay < 0 {
		return fmt.Errorf("BROADCAST_DELAY must not be negative, got %s", c.BroadcastDelay)
	}
	return nil
}

// IsAdmin reports whether userID is the configured administrator
func (c *Config) IsAdmin(userID int64) bool {
	return c.AdminChatID != 0 && userID == c.AdminChatID
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// MetricsAddr returns the listen address for the health/metrics server
func (c *Config) MetricsAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
