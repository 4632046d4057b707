// Package config manages application configuration from files and environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	// DefaultSources are the files converted when no sources are given on
	// the command line.
	DefaultSources []string `mapstructure:"default_sources"`
	Delimiter      string   `mapstructure:"delimiter"`
	DateFormat     string   `mapstructure:"date_format"`
	Widths         struct {
		Min     int `mapstructure:"min"`
		Max     int `mapstructure:"max"`
		Padding int `mapstructure:"padding"`
	} `mapstructure:"widths"`
	Output struct {
		Color bool `mapstructure:"color"`
	} `mapstructure:"output"`
}

// Load reads the configuration from ~/.csvbook/config.yaml and environment
// variables. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir())

	// Defaults
	v.SetDefault("default_sources", []string{"Speed_Limits.csv", "Traffic_Volumes.csv"})
	v.SetDefault("delimiter", ",")
	v.SetDefault("date_format", "yyyy-mm-dd")
	v.SetDefault("widths.min", 10)
	v.SetDefault("widths.max", 50)
	v.SetDefault("widths.padding", 2)
	v.SetDefault("output.color", true)

	// Environment variable overrides
	v.SetEnvPrefix("CSVBOOK")
	v.AutomaticEnv()

	// Read config file (non-fatal if missing)
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".csvbook"
	}
	return filepath.Join(home, ".csvbook")
}
