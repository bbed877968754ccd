// Package config loads runtime settings from an optional YAML file and
// TETRIS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// LevelOff disables logging.
const LevelOff = "off"

var ErrInvalidLogLevel = errors.New("invalid log level")

type Config struct {
	LogLevel  string `yaml:"log-level" env:"TETRIS_LOG_LEVEL" env-default:"info" env-description:"debug, info, warn, error or off"`
	LogFile   string `yaml:"log-file" env:"TETRIS_LOG_FILE" env-description:"log file path"`
	ScoreFile string `yaml:"score-file" env:"TETRIS_SCORE_FILE" env-description:"high score file path"`
	Redis     Redis  `yaml:"redis" env-prefix:"TETRIS_REDIS_"`
}

// Redis selects the Redis score store when Addr is set.
type Redis struct {
	Addr string `yaml:"addr" env:"ADDR" env-description:"host:port of the score server"`
	Key  string `yaml:"key" env:"KEY" env-default:"tetris:scores" env-description:"list key holding the scores"`
}

// Load reads path when it exists and then applies the environment. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path != "" && fileExists(path) {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the fields that cleanenv cannot.
func (c *Config) Validate() error {
	if c.LogLevel == LevelOff {
		return nil
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Logging reports whether logs should be written at all.
func (c *Config) Logging() bool {
	return c.LogLevel != LevelOff
}

func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
}

// Dir is the per-user directory holding scores and logs.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "go-tetris"), nil
}

// DefaultPath is the config file read when none is given.
func DefaultPath() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yml")
}

// LogPath returns LogFile or tetris.log in Dir.
func (c *Config) LogPath() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tetris.log"), nil
}

// Usage prints the environment variables Load understands.
func Usage() string {
	text, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return text
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
