package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the settings that can come from the environment or a .env file.
// Command-line flags take precedence over every field.
type Config struct {
	JPEGQuality int    `env:"JPEG_QUALITY" envDefault:"95"`
	Backend     string `env:"BACKEND" envDefault:"lanczos"`
	LogFile     string `env:"LOG_FILE" envDefault:"printsize.log"`
	Debug       bool   `env:"DEBUG" envDefault:"false"`
	Exiftool    bool   `env:"EXIFTOOL" envDefault:"false"`
}

// EnvPrefix is prepended to every variable name
const EnvPrefix = "PRINTSIZE_"

// Load reads an optional .env file from the working directory, then the environment
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := ReadEnvConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadEnvConfig fills cfg from PRINTSIZE_* environment variables
func ReadEnvConfig(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return cfg.Validate()
}

// Validate checks ranges that env parsing cannot express
func (c Config) Validate() error {
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("%sJPEG_QUALITY must be between 1 and 100, got %d", EnvPrefix, c.JPEGQuality)
	}
	return nil
}
