package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/delphi-research/survey-backend/internal/entity"
	pkgRetry "github.com/delphi-research/survey-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string               `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int                  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int                  `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration        `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration        `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration        `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBConnectRetry      pkgRetry.RetryConfig `envPrefix:"DB_CONNECT_RETRY_"`

	// Generative backend configuration
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`

	// Interview session configuration
	InterviewCfg InterviewConfig `envPrefix:"INTERVIEW_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Quick-start templates (loaded from JSON file)
	Templates []entity.Template

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS,notEmpty"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// LLMConnectorConfig points at the generative-AI service. There is no retry
// section on purpose: generation and chat turns are single-attempt, every
// retry is a fresh user action.
type LLMConnectorConfig struct {
	HTTPClientConfig
	GenerateEndpoint string `env:"GENERATE_ENDPOINT,notEmpty"`
	ChatEndpoint     string `env:"CHAT_ENDPOINT,notEmpty"`
}

// InterviewConfig bounds the in-memory interview store.
type InterviewConfig struct {
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN,notEmpty"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT,notEmpty"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE,notEmpty"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT,notEmpty"` // seconds
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT,notEmpty"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT,notEmpty"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE,notEmpty"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT,notEmpty"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT,notEmpty"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

// templatesFile represents the structure of templates.json
type templatesFile struct {
	Templates []entity.Template `json:"templates"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Load quick-start templates from JSON file
	if err := loadTemplates(cfg); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Validate Telegram configuration
	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	// Validate interview session configuration
	if cfg.InterviewCfg.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("INTERVIEW_SESSION_TTL must be at least 1m, got %s", cfg.InterviewCfg.SessionTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", errors[0])
	}

	return nil
}

var defaultTemplates = []entity.Template{
	{
		Label:  "Feedback Form",
		Prompt: "Create a customer feedback survey for a mobile application, focusing on usability, features, and net promoter score.",
	},
	{
		Label:  "Event Registration",
		Prompt: "Create an event registration survey for a tech conference, asking for dietary restrictions, workshop preferences, and travel details.",
	},
	{
		Label:  "Public Health",
		Prompt: "Create a public health survey to assess malaria awareness, prevention habits (bed nets), and recent symptoms in a rural community.",
	},
}

func loadTemplates(cfg *Config) error {
	configPath := filepath.Join("internal", "config", "templates.json")

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Warning: templates file not found at %s, using default templates\n", configPath)
		cfg.Templates = defaultTemplates
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read templates file: %w", err)
	}

	if len(data) == 0 {
		return fmt.Errorf("templates file is empty: %s", configPath)
	}

	var parsed templatesFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse templates JSON: %w", err)
	}

	if len(parsed.Templates) == 0 {
		return fmt.Errorf("templates file contains no templates: %s", configPath)
	}

	cfg.Templates = parsed.Templates

	fmt.Printf("Loaded %d templates from %s\n", len(cfg.Templates), configPath)
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
