// Package config loads settings from an optional YAML file, an optional .env
// file and SNAPDEV_* environment variables, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"snapdev-task/internal/pomodoro"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given
const DefaultPath = "snapdev-task.yaml"

// ErrInvalid is returned when a loaded value is out of range
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Pomodoro PomodoroConfig `yaml:"pomodoro"`
	Sound    SoundConfig    `yaml:"sound"`
	Log      LogConfig      `yaml:"log"`
}

type DatabaseConfig struct {
	Path   string `yaml:"path"`
	LogSQL bool   `yaml:"log_sql"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type PomodoroConfig struct {
	pomodoro.Settings `yaml:",inline"`
	AutoStart         bool `yaml:"auto_start"`
}

type SoundConfig struct {
	Enabled bool `yaml:"enabled"`
	// Command plays the alarm, e.g. "paplay alarme.wav". Empty rings the terminal bell.
	Command string `yaml:"command"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "snapdev-task.db"},
		Server:   ServerConfig{Addr: "127.0.0.1:5000"},
		Pomodoro: PomodoroConfig{Settings: pomodoro.DefaultSettings()},
		Sound:    SoundConfig{Enabled: true},
		Log:      LogConfig{Level: "info", File: "snapdev-task.log"},
	}
}

// Load builds the configuration. A missing file at path is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.WithField("path", path).Debug("no config file, using defaults")
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not found")
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("SNAPDEV_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("SNAPDEV_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SNAPDEV_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		c.Log.Level = "debug"
	}
	if v, ok := os.LookupEnv("SNAPDEV_SOUND_COMMAND"); ok {
		c.Sound.Command = v
	}

	minutes := []struct {
		key string
		dst *int
	}{
		{"SNAPDEV_WORK_MINUTES", &c.Pomodoro.WorkMinutes},
		{"SNAPDEV_SHORT_BREAK_MINUTES", &c.Pomodoro.ShortBreakMinutes},
		{"SNAPDEV_LONG_BREAK_MINUTES", &c.Pomodoro.LongBreakMinutes},
	}
	for _, m := range minutes {
		v := os.Getenv(m.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, m.key, err)
		}
		*m.dst = n
	}
	return nil
}

// Validate checks ranges: work and long break 1-60 minutes, short break 1-30
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("%w: database.path is empty", ErrInvalid)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}

	if err := c.Pomodoro.Settings.Validate(); err != nil {
		return fmt.Errorf("%w: pomodoro: %w", ErrInvalid, err)
	}
	return nil
}

// LogLevel returns the parsed log level; Validate guarantees it parses
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
