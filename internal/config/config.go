package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.yaml.in/yaml/v4"
)

const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"

	defaultConfigPath = "config.yaml"
)

type Config struct {
	UserName         string        `yaml:"user_name" env:"HABITS_USER_NAME"`
	JoinedAt         time.Time     `yaml:"joined_at" env:"HABITS_JOINED_AT"`
	Backend          string        `yaml:"backend" env:"HABITS_BACKEND"`
	DataPath         string        `yaml:"data_path" env:"HABITS_DATA_PATH"`
	LogLevel         string        `yaml:"log_level" env:"HABITS_LOG_LEVEL"`
	LogFormat        string        `yaml:"log_format" env:"HABITS_LOG_FORMAT"`
	ReminderInterval time.Duration `yaml:"reminder_interval" env:"HABITS_REMINDER_INTERVAL"`
	MetricsTextfile  string        `yaml:"metrics_textfile" env:"HABITS_METRICS_TEXTFILE"`
	Nudge            NudgeConfig   `yaml:"nudge"`
}

type NudgeConfig struct {
	ResendAPIKey string `yaml:"resend_api_key" env:"HABITS_RESEND_API_KEY"`
	Email        string `yaml:"email" env:"HABITS_NOTIFY_EMAIL"`
	From         string `yaml:"from" env:"HABITS_NOTIFY_FROM"`
}

func Default() Config {
	return Config{
		UserName:         "me",
		Backend:          BackendFile,
		DataPath:         "habits-data.json",
		LogLevel:         "warn",
		LogFormat:        "text",
		ReminderInterval: 10 * time.Second,
		Nudge: NudgeConfig{
			From: "onboarding@resend.dev",
		},
	}
}

// Load reads the file named by HABITS_CONFIG, falling back to config.yaml in
// the working directory. Only an explicitly named file has to exist.
func Load() (*Config, error) {
	if path := os.Getenv("HABITS_CONFIG"); path != "" {
		return LoadFile(path, true)
	}
	return LoadFile(defaultConfigPath, false)
}

func LoadFile(path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !required:
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendBolt, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q: want %s, %s or %s", c.Backend, BackendFile, BackendBolt, BackendSQLite)
	}
	if strings.TrimSpace(c.DataPath) == "" {
		return fmt.Errorf("data_path is required")
	}
	if c.ReminderInterval < 0 {
		return fmt.Errorf("reminder_interval must not be negative")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q: want text or json", c.LogFormat)
	}
	return nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("bad log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
