package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"
	AppEnv        string `mapstructure:"APP_ENV"`        // "production" switches gin to release mode

	// AI Configuration
	OpenAIKey         string        `mapstructure:"OPENAI_API_KEY"`     // Empty disables AI generation
	OpenAIModel       string        `mapstructure:"OPENAI_MODEL"`       // e.g., "gpt-4o"
	OpenAIBaseURL     string        `mapstructure:"OPENAI_BASE_URL"`    // For OpenAI compatible endpoints
	GenerationTimeout time.Duration `mapstructure:"GENERATION_TIMEOUT"` // Upper bound for one AI call

	// Storage Configuration
	DatabasePath string `mapstructure:"DATABASE_PATH"` // SQLite file for drafts and saved wireframes
	ExportDir    string `mapstructure:"EXPORT_DIR"`    // Root directory for exported HTML

	// Sessions
	SessionTTL   time.Duration `mapstructure:"SESSION_TTL"`   // Idle sessions older than this are evicted
	RecentsLimit int           `mapstructure:"RECENTS_LIMIT"` // Size of the recently saved list
}

var defaults = map[string]any{
	"SERVER_ADDRESS":     ":8080",
	"APP_ENV":            "development",
	"OPENAI_API_KEY":     "",
	"OPENAI_MODEL":       "gpt-4o",
	"OPENAI_BASE_URL":    "",
	"GENERATION_TIMEOUT": 90 * time.Second,
	"DATABASE_PATH":      "data/wireframes.db",
	"EXPORT_DIR":         "exports",
	"SESSION_TTL":        2 * time.Hour,
	"RECENTS_LIMIT":      10,
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Every key needs a default, otherwise AutomaticEnv values never reach Unmarshal.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", v.ConfigFileUsed())
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if config.OpenAIKey == "" {
		log.Println("WARN: OPENAI_API_KEY is not set. AI generation is disabled; new pages get placeholders.")
	}
	if config.GenerationTimeout < 0 {
		return Config{}, fmt.Errorf("GENERATION_TIMEOUT must not be negative, got %s", config.GenerationTimeout)
	}
	if config.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", config.SessionTTL)
	}

	return
}
