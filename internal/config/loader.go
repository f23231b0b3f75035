package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load loads and validates configuration from:
// 1. Default values
// 2. the YAML file at path (optional)
// 3. ECHO_* environment variables
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("ECHO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Allow a missing config file; defaults plus environment are enough.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !isNotExist(err) {
				return nil, fmt.Errorf("%w: failed to read config file %s: %v", ErrConfiguration, path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// isNotExist reports whether err looks like a missing-file error. Viper
// returns ConfigFileNotFoundError only when searching config paths, not when
// an explicit file is set, so the underlying os error is checked by message.
func isNotExist(err error) bool {
	return strings.Contains(err.Error(), "no such file") ||
		strings.Contains(err.Error(), "cannot find the file")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", DefaultLogJSON)

	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.read_timeout", DefaultServerReadTimeout)
	v.SetDefault("server.write_timeout", DefaultServerWriteTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultServerShutdownTimeout)

	v.SetDefault("store.dir", DefaultStoreDir)

	v.SetDefault("ai.backend", DefaultAIBackend)
	v.SetDefault("ai.base_url", DefaultAIBaseURL)
	v.SetDefault("ai.model", DefaultAIModel)
	v.SetDefault("ai.temperature", DefaultAITemperature)
	v.SetDefault("ai.max_tokens", DefaultAIMaxTokens)
	v.SetDefault("ai.instruction", DefaultAIInstruction)
	v.SetDefault("ai.timeout", DefaultAITimeout)
	v.SetDefault("ai.max_history", DefaultAIMaxHistory)

	v.SetDefault("assistant.files_dir", filepath.Join(homeDir(), DefaultFilesDirName))
	v.SetDefault("assistant.captures_dir", DefaultCapturesDir)
	v.SetDefault("assistant.country_code", DefaultCountryCode)
	v.SetDefault("assistant.notes_list_limit", DefaultNotesListLimit)

	v.SetDefault("weather.city", DefaultWeatherCity)
	v.SetDefault("weather.base_url", DefaultWeatherBaseURL)
	v.SetDefault("weather.timeout", DefaultWeatherTimeout)

	v.SetDefault("rates.base_url", DefaultRatesBaseURL)
	v.SetDefault("rates.timeout", DefaultRatesTimeout)
	v.SetDefault("rates.cache_ttl", DefaultRatesCacheTTL)

	v.SetDefault("imagegen.base_url", DefaultImageGenBaseURL)
	v.SetDefault("imagegen.width", DefaultImageGenWidth)
	v.SetDefault("imagegen.height", DefaultImageGenHeight)
	v.SetDefault("imagegen.timeout", DefaultImageGenTimeout)
}
