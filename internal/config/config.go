package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the app-level configuration: where the database lives and how
// to reach the optional shared endpoint. Per-profile preferences (goal,
// timer durations, theme) live inside each profile record, not here.
type Config struct {
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Remote struct {
		Endpoint       string `mapstructure:"endpoint"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"remote"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// Load reads an optional ~/.sidequest.yaml (or ./.sidequest.yaml) and
// SIDEQUEST_* environment overrides. A missing config file is fine; every
// key has a default. Database.Path defaults to empty, which the CLI
// resolves to the standard location in the home directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".sidequest")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SIDEQUEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.path", "")
	v.SetDefault("remote.endpoint", "")
	v.SetDefault("remote.timeout_seconds", 5)
	v.SetDefault("log.level", "warn")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Remote.TimeoutSeconds <= 0 {
		cfg.Remote.TimeoutSeconds = 5
	}
	return &cfg, nil
}
