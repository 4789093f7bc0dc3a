// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"
	"kharcha/expense-nlp/internal/parsererror"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by the application.
const EnvPrefix = "KHARCHA"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Parser struct {
		Strategy       string `mapstructure:"strategy" yaml:"strategy"`
		CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
	} `mapstructure:"parser" yaml:"parser"`

	AI struct {
		Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
		Model             string `mapstructure:"model" yaml:"model"`
		RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		MaxAttempts       int    `mapstructure:"max_attempts" yaml:"max_attempts"`
		APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Data struct {
		CategoriesFile string `mapstructure:"categories_file" yaml:"categories_file"`
		SlangFile      string `mapstructure:"slang_file" yaml:"slang_file"`
	} `mapstructure:"data" yaml:"data"`

	Server struct {
		Addr           string   `mapstructure:"addr" yaml:"addr"`
		AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.kharcha")
	v.AddConfigPath(".kharcha")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logging.GetLogger().WithError(err).Warn("Error reading config file, continuing with defaults",
				logging.Field{Key: "config_file", Value: v.ConfigFileUsed()})
		}
	}

	// 5. The API key is read from the provider's own variable, not prefixed
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		logging.GetLogger().WithError(err).Warn("Failed to bind GEMINI_API_KEY environment variable")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("parser.strategy", string(models.StrategyAuto))
	v.SetDefault("parser.currency_symbol", "Rs.")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.requests_per_minute", 10)
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.max_attempts", 2)

	v.SetDefault("data.categories_file", "")
	v.SetDefault("data.slang_file", "")

	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return &parsererror.ValidationError{Key: "log.level", Reason: fmt.Sprintf("unknown level '%s'", config.Log.Level)}
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return &parsererror.ValidationError{Key: "log.format", Reason: fmt.Sprintf("'%s' (must be 'text' or 'json')", config.Log.Format)}
	}

	if _, err := models.ParseStrategy(config.Parser.Strategy); err != nil {
		return &parsererror.ValidationError{Key: "parser.strategy", Reason: err.Error()}
	}

	if strings.TrimSpace(config.Parser.CurrencySymbol) == "" {
		return &parsererror.ValidationError{Key: "parser.currency_symbol", Reason: "must not be empty"}
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return &parsererror.ValidationError{Key: "ai.api_key", Reason: "GEMINI_API_KEY required when AI is enabled"}
		}

		if config.AI.RequestsPerMinute < 1 || config.AI.RequestsPerMinute > 1000 {
			return &parsererror.ValidationError{Key: "ai.requests_per_minute", Reason: fmt.Sprintf("must be between 1 and 1000, got: %d", config.AI.RequestsPerMinute)}
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return &parsererror.ValidationError{Key: "ai.timeout_seconds", Reason: fmt.Sprintf("must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)}
		}

		if config.AI.MaxAttempts < 1 || config.AI.MaxAttempts > 5 {
			return &parsererror.ValidationError{Key: "ai.max_attempts", Reason: fmt.Sprintf("must be between 1 and 5, got: %d", config.AI.MaxAttempts)}
		}
	}

	return nil
}

// NewLogger builds the application logger described by the configuration
func NewLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
