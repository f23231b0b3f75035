// Package config provides configuration loading, validation, and management
// for the ECHO assistant. It handles reading from YAML files, overlaying
// ECHO_* environment variables, setting default values, and validating
// configuration parameters.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrConfiguration indicates a problem loading or validating configuration.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration parameters for all components
// of the ECHO assistant: logging, the HTTP front end, persistence, the AI
// conversation backend, and the external collaborators.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	AI        AIConfig        `mapstructure:"ai"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Weather   WeatherConfig   `mapstructure:"weather"`
	Rates     RatesConfig     `mapstructure:"rates"`
	ImageGen  ImageGenConfig  `mapstructure:"imagegen"`
}

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// ServerConfig configures the HTTP front end that forwards commands to the
// engine.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"             validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"min=1s"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"min=1s"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=1s"`
}

// StoreConfig locates the JSON documents that back the persisted collections.
type StoreConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// AIConfig configures the chat-completion backend used by the conversational
// fallback. APIKey may be empty: the assistant then answers conversational
// input with an explicit configuration-error message instead of failing.
type AIConfig struct {
	Backend     string        `mapstructure:"backend"     validate:"oneof=openai gemini"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"    validate:"url"`
	Model       string        `mapstructure:"model"       validate:"required"`
	Temperature float64       `mapstructure:"temperature" validate:"min=0,max=2"`
	MaxTokens   int           `mapstructure:"max_tokens"  validate:"min=1"`
	Instruction string        `mapstructure:"instruction" validate:"required"`
	Timeout     time.Duration `mapstructure:"timeout"     validate:"min=1s,max=10m"`
	MaxHistory  int           `mapstructure:"max_history" validate:"min=0,max=100"`
}

// AssistantConfig holds engine-level settings shared by several handlers.
type AssistantConfig struct {
	FilesDir       string `mapstructure:"files_dir"        validate:"required"`
	CapturesDir    string `mapstructure:"captures_dir"     validate:"required"`
	CountryCode    string `mapstructure:"country_code"     validate:"required,startswith=+"`
	NotesListLimit int    `mapstructure:"notes_list_limit" validate:"min=1"`
}

// WeatherConfig configures the OpenWeatherMap collaborator.
type WeatherConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	City    string        `mapstructure:"city"    validate:"required"`
	BaseURL string        `mapstructure:"base_url" validate:"url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1s"`
}

// RatesConfig configures the exchange-rate collaborator. RedisAddr is
// optional; when set, fetched rate tables are cached in redis with CacheTTL.
type RatesConfig struct {
	BaseURL   string        `mapstructure:"base_url"  validate:"url"`
	Timeout   time.Duration `mapstructure:"timeout"   validate:"min=1s"`
	RedisAddr string        `mapstructure:"redis_addr"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl" validate:"min=1m"`
}

// ImageGenConfig configures the image-generation collaborator.
type ImageGenConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"url"`
	Width   int           `mapstructure:"width"    validate:"min=64,max=2048"`
	Height  int           `mapstructure:"height"   validate:"min=64,max=2048"`
	Timeout time.Duration `mapstructure:"timeout"  validate:"min=1s"`
}

// Validate checks the complete configuration against the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
