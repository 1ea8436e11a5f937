// Package config handles the XDG configuration directory and settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"todo/internal/service"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// SettingsFile is the optional YAML settings filename.
	SettingsFile = "config.yaml"

	// DefaultAPIURL is used when neither the environment nor the settings
	// file select a base URL.
	DefaultAPIURL = "http://localhost:3001"

	// EnvAPIURL is the environment variable selecting the API base URL.
	EnvAPIURL = "TODO_API_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the task API, without a trailing slash.
	APIURL string

	// Timeout bounds each API request. Zero means no timeout.
	Timeout time.Duration

	// DefaultColor is preselected for new tasks.
	DefaultColor service.Color

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileSettings mirrors config.yaml.
type fileSettings struct {
	APIURL       string        `yaml:"api_url"`
	Timeout      time.Duration `yaml:"timeout"`
	DefaultColor string        `yaml:"default_color"`
}

// New creates a Config for the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
// Settings are resolved as: TODO_API_URL, then config.yaml, then defaults.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		Dir:          dir,
		APIURL:       DefaultAPIURL,
		DefaultColor: service.DefaultColor,
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if env := strings.TrimSpace(os.Getenv(EnvAPIURL)); env != "" {
		cfg.APIURL = env
	}
	cfg.APIURL = NormalizeURL(cfg.APIURL)

	return cfg, nil
}

// loadFile applies config.yaml if it exists.
func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.SettingsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", c.SettingsPath(), err)
	}

	var s fileSettings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parse %s: %w", c.SettingsPath(), err)
	}

	if s.APIURL != "" {
		c.APIURL = s.APIURL
	}
	if s.Timeout < 0 {
		return fmt.Errorf("parse %s: negative timeout", c.SettingsPath())
	}
	c.Timeout = s.Timeout
	if s.DefaultColor != "" {
		color, err := service.ParseColor(s.DefaultColor)
		if err != nil {
			return fmt.Errorf("parse %s: %w", c.SettingsPath(), err)
		}
		c.DefaultColor = color
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// NormalizeURL trims whitespace and trailing slashes from a base URL.
func NormalizeURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}
