package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const DefaultTimezone = "Europe/Madrid"

type Config struct {
	DBPath      string `toml:"db_path"`
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	LogToStderr bool   `toml:"log_to_stderr"`
	LogJSON     bool   `toml:"log_json"`
	Timezone    string `toml:"timezone"`
	DefaultMode string `toml:"default_mode"`
}

func defaultConfig() *Config {
	return &Config{
		LogLevel:    "warn",
		Timezone:    DefaultTimezone,
		DefaultMode: "replace",
	}
}

// LoadConfig layers defaults, the optional TOML file at path, a .env file in
// the working directory and environment variables, in that order. A missing
// file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if strings.TrimSpace(path) != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("decode config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if v := os.Getenv("MACROPLAN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("MACROPLAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MACROPLAN_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("APP_DEFAULT_TZ"); v != "" {
		cfg.Timezone = v
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// Today is the current date in the configured zone. Only the CLI layer calls
// it; the planner and stores always receive explicit dates.
func (c *Config) Today(now time.Time) (string, error) {
	loc, err := c.Location()
	if err != nil {
		return "", err
	}
	return now.In(loc).Format("2006-01-02"), nil
}
