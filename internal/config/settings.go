// internal/config/settings.go
package config

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// ConfigFileName is looked up in the directory passed to Load.
const ConfigFileName = "airplane.cfg.json"

// Load sets defaults and merges ConfigFileName from configDir when present.
// A missing file is not an error; a malformed one is.
func Load(configDir string) error {
	viper.SetDefault("seed", 0)
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")
	viper.SetDefault("logConsole", true)

	viper.SetDefault("results.path", "flights.db")
	viper.SetDefault("plot.output", "")
	viper.SetDefault("window.scale", 1)

	viper.SetDefault("loop.maxLoops", 16)
	viper.SetDefault("loop.maxConditionLoops", 50)
	viper.SetDefault("loop.throwDelay", 0.5)
	viper.SetDefault("loop.resultDelay", 2.0)

	viper.SetDefault("zones.path", "")

	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func Validate() error {
	var result *multierror.Error

	switch viper.GetString("logLevel") {
	case "debug", "info", "warn", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("logLevel: unknown level %q", viper.GetString("logLevel")))
	}
	if s := viper.GetInt("window.scale"); s < 1 || s > 4 {
		result = multierror.Append(result, fmt.Errorf("window.scale: %d out of range [1, 4]", s))
	}
	if n := viper.GetInt("loop.maxLoops"); n < 1 {
		result = multierror.Append(result, fmt.Errorf("loop.maxLoops: must be positive, got %d", n))
	}
	if n := viper.GetInt("loop.maxConditionLoops"); n < 1 {
		result = multierror.Append(result, fmt.Errorf("loop.maxConditionLoops: must be positive, got %d", n))
	}
	if d := viper.GetFloat64("loop.throwDelay"); d < 0 {
		result = multierror.Append(result, fmt.Errorf("loop.throwDelay: negative delay %v", d))
	}
	if d := viper.GetFloat64("loop.resultDelay"); d < 0 {
		result = multierror.Append(result, fmt.Errorf("loop.resultDelay: negative delay %v", d))
	}

	return result.ErrorOrNil()
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetInt64 returns an int64 config value.
func GetInt64(key string) int64 {
	return viper.GetInt64(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
