package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Channel  ChannelConfig
	YouTube  YouTubeConfig
	Sheets   SheetsConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
	Report   ReportConfig
	Logging  LoggingConfig
}

type ChannelConfig struct {
	ID         string
	MaxResults int64
}

type YouTubeConfig struct {
	APIKey          string
	CredentialsFile string
	TokenFile       string
}

type SheetsConfig struct {
	SpreadsheetID string
	DailySheet    string
	VideoSheet    string
	GoalSheet     string
}

type RedisConfig struct {
	Enable   bool
	Host     string
	Port     int
	Password string
	DB       int
}

type PostgresConfig struct {
	Enable   bool
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type ReportConfig struct {
	// DisplayOffset shifts stored UTC timestamps for display in the
	// operator's local time. Hours, default 9 (JST).
	DisplayOffset time.Duration
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Channel: ChannelConfig{
			ID:         getEnv("CHANNEL_ID", ""),
			MaxResults: int64(getEnvInt("CHANNEL_MAX_RESULTS", 50)),
		},
		YouTube: YouTubeConfig{
			APIKey:          getEnv("YOUTUBE_API_KEY", ""),
			CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
			TokenFile:       getEnv("GOOGLE_TOKEN_FILE", "token.json"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID: getEnv("SPREADSHEET_ID", ""),
			DailySheet:    getEnv("SHEET_DAILY", "日次データ"),
			VideoSheet:    getEnv("SHEET_VIDEOS", "動画別データ"),
			GoalSheet:     getEnv("SHEET_GOALS", "目標設定"),
		},
		Redis: RedisConfig{
			Enable:   getEnvBool("REDIS_ENABLE", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Postgres: PostgresConfig{
			Enable:   getEnvBool("POSTGRES_ENABLE", false),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "dashboard"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "dashboard"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		Report: ReportConfig{
			DisplayOffset: time.Duration(getEnvInt("REPORT_DISPLAY_OFFSET_HOURS", 9)) * time.Hour,
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Channel.ID == "" {
		return fmt.Errorf("CHANNEL_ID is required")
	}
	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("SPREADSHEET_ID is required")
	}
	if c.YouTube.APIKey == "" && c.YouTube.CredentialsFile == "" {
		return fmt.Errorf("either YOUTUBE_API_KEY or GOOGLE_CREDENTIALS_FILE is required")
	}
	if c.Channel.MaxResults <= 0 || c.Channel.MaxResults > 50 {
		return fmt.Errorf("CHANNEL_MAX_RESULTS must be between 1 and 50")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
