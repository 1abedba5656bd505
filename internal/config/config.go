// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file ($XDG_CONFIG_HOME/todo/todo.toml or the OS equivalent)
// 3. Project config file (todo.toml or .todo.toml in the working directory)
// 4. Extra config files passed by the caller (the -config flag)
// 5. Environment variables (TODO_*)
// 6. CLI flags, applied by the caller
//
// Each level overrides the previous one.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
)

const (
	DefaultTheme    = "classic"
	DefaultColor    = "auto"
	DefaultLogLevel = "warn"
)

// Config holds every tunable of the todo CLI.
type Config struct {
	DataFile string `toml:"data_file"`
	Title    string `toml:"title"`
	Theme    string `toml:"theme"`
	Color    string `toml:"color"`
	LogLevel string `toml:"log_level"`
	Group    bool   `toml:"group"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataFile: jsonstore.DefaultFileName,
		Title:    model.DefaultTitle,
		Theme:    DefaultTheme,
		Color:    DefaultColor,
		LogLevel: DefaultLogLevel,
	}
}

// Load layers defaults, config files and the environment. Each path in
// extra is decoded after the project file and must exist.
func Load(extra ...string) (*Config, error) {
	cfg := Default()

	if p := userConfigFile(); p != "" {
		if err := LoadFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if p := projectConfigFile(); p != "" {
		if err := LoadFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", p, err)
		}
	}
	for _, p := range extra {
		if p == "" {
			continue
		}
		if err := LoadFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", p, err)
		}
	}
	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TODO_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("TODO_TITLE"); v != "" {
		cfg.Title = v
	}
	if v := os.Getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TODO_COLOR"); v != "" {
		cfg.Color = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_GROUP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TODO_GROUP: %w", err)
		}
		cfg.Group = b
	}
	return nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DataFile) == "" {
		errs = append(errs, errors.New("data_file: must not be empty"))
	}
	switch strings.ToLower(c.Theme) {
	case "classic", "neon", "mono":
	default:
		errs = append(errs, fmt.Errorf("theme: unknown %q (want classic, neon or mono)", c.Theme))
	}
	switch strings.ToLower(c.Color) {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("color: unknown %q (want auto, always or never)", c.Color))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return existing(filepath.Join(dir, "todo", "todo.toml"))
}

func projectConfigFile() string {
	for _, name := range []string{"todo.toml", ".todo.toml"} {
		if p := existing(name); p != "" {
			return p
		}
	}
	return ""
}

func existing(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}
