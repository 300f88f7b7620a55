// Package config loads service configuration from defaults, an optional
// YAML file, and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// AWS configuration
	AWSRegion     string `yaml:"aws_region"`
	DynamoDBTable string `yaml:"dynamodb_table"`
	EventBusName  string `yaml:"event_bus_name"`

	// Journal mirror
	JournalName   string `yaml:"journal_name"`
	MirrorEnabled bool   `yaml:"mirror_enabled"`

	// Event publishing
	EventsEnabled bool `yaml:"events_enabled"`

	// Lambda configuration
	IsLambda bool `yaml:"-"`

	// Notification mail
	SMTPHost          string `yaml:"smtp_host"`
	SMTPPort          int    `yaml:"smtp_port"`
	SenderEmail       string `yaml:"sender_email"`
	SenderPassword    string `yaml:"-"`
	ReminderRecipient string `yaml:"reminder_recipient"`
	DailyReminderTime string `yaml:"daily_reminder_time"`
	SchedulerEnabled  bool   `yaml:"scheduler_enabled"`

	// Insights cache
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`

	// Logging and features
	LogLevel      string `yaml:"log_level"`
	EnableMetrics bool   `yaml:"enable_metrics"`
	EnableCORS    bool   `yaml:"enable_cors"`
}

// LoadConfig loads configuration from defaults, then the YAML file named by
// CONFIG_FILE when present, then environment variables
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadYAMLFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnvironment(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig for backwards compatibility
func Load() (*Config, error) {
	return LoadConfig()
}

func defaultConfig() *Config {
	return &Config{
		ServerAddress:     ":8080",
		Environment:       "development",
		AWSRegion:         "us-west-2",
		DynamoDBTable:     "moodlog",
		EventBusName:      "moodlog-events",
		JournalName:       "default",
		MirrorEnabled:     false,
		EventsEnabled:     false,
		SMTPPort:          587,
		DailyReminderTime: "20:00",
		SchedulerEnabled:  false,
		CacheTTLSeconds:   60,
		LogLevel:          "info",
		EnableMetrics:     true,
		EnableCORS:        true,
	}
}

func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnvironment overlays environment variables, the highest priority
// configuration source
func applyEnvironment(cfg *Config) {
	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.AWSRegion = getEnv("AWS_REGION", cfg.AWSRegion)
	cfg.DynamoDBTable = getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", cfg.DynamoDBTable))
	cfg.EventBusName = getEnv("EVENT_BUS_NAME", cfg.EventBusName)
	cfg.JournalName = getEnv("JOURNAL_NAME", cfg.JournalName)
	cfg.MirrorEnabled = getEnvBool("MIRROR_ENABLED", cfg.MirrorEnabled)
	cfg.EventsEnabled = getEnvBool("EVENTS_ENABLED", cfg.EventsEnabled)
	cfg.IsLambda = os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
	cfg.SMTPHost = getEnv("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = getEnvInt("SMTP_PORT", cfg.SMTPPort)
	cfg.SenderEmail = getEnv("SENDER_EMAIL", cfg.SenderEmail)
	cfg.SenderPassword = getEnv("SENDER_PASSWORD", cfg.SenderPassword)
	cfg.ReminderRecipient = getEnv("REMINDER_RECIPIENT", cfg.ReminderRecipient)
	cfg.DailyReminderTime = getEnv("DAILY_REMINDER_TIME", cfg.DailyReminderTime)
	cfg.SchedulerEnabled = getEnvBool("SCHEDULER_ENABLED", cfg.SchedulerEnabled)
	cfg.CacheTTLSeconds = getEnvInt("CACHE_TTL_SECONDS", cfg.CacheTTLSeconds)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.EnableMetrics = getEnvBool("ENABLE_METRICS", cfg.EnableMetrics)
	cfg.EnableCORS = getEnvBool("ENABLE_CORS", cfg.EnableCORS)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.MirrorEnabled && c.DynamoDBTable == "" {
		return fmt.Errorf("DYNAMODB_TABLE is required when the mirror is enabled")
	}
	if c.EventsEnabled && c.EventBusName == "" {
		return fmt.Errorf("EVENT_BUS_NAME is required when event publishing is enabled")
	}
	if c.SchedulerEnabled && c.ReminderRecipient == "" {
		return fmt.Errorf("REMINDER_RECIPIENT is required when the scheduler is enabled")
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be non-negative")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
