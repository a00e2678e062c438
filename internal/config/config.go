// Package config loads pyforge settings from file, environment and
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/pyforge/pyforge/internal/arduino"
)

// configName is the config file name without extension.
const configName = ".pyforge"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for pyforge settings.
const envPrefix = "PYFORGE"

// Config holds the tool-wide settings.
type Config struct {
	// FQBN is the default fully qualified board name for compile and
	// upload.
	FQBN string `mapstructure:"fqbn"`

	// CLIPath locates the arduino-cli binary.
	CLIPath string `mapstructure:"cli_path"`

	// AutoLoop populates a synthesized loop with calls to the other
	// translated procedures.
	AutoLoop bool `mapstructure:"auto_loop"`

	// HeuristicConstruction treats any bare-name call on the right of
	// an assignment as object construction.
	HeuristicConstruction bool `mapstructure:"heuristic_construction"`
}

// Load reads configuration from file, env vars, and defaults. If
// configPath is non-empty it is used as the explicit config file path;
// otherwise the config file is searched in CWD and $HOME. A missing
// config file is not an error; defaults are used.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	viperCfg.SetDefault("fqbn", arduino.DefaultFQBN)
	viperCfg.SetDefault("cli_path", "arduino-cli")
	viperCfg.SetDefault("auto_loop", false)
	viperCfg.SetDefault("heuristic_construction", false)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	return &cfg, nil
}
