// Package config resolves runtime configuration from defaults, an optional
// TOML file and TASKER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	AppName = "tasker"

	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	DefaultTasksFile    = "tasks.json"
	DefaultSettingsFile = "settings.json"
	DefaultDBFile       = "tasks.db"
	ConfigFileName      = "config.toml"
)

type RuntimeConfig struct {
	DataDir      string `toml:"data_dir"`
	Backend      string `toml:"backend"`
	TasksFile    string `toml:"tasks_file"`
	SettingsFile string `toml:"settings_file"`
	DBFile       string `toml:"db_file"`
	LogLevel     string `toml:"log_level"`
	LogFormat    string `toml:"log_format"`

	// Theme forces "dark" or "light" for one run; empty follows the settings file.
	Theme         string `toml:"theme"`
	ProgressWidth int    `toml:"progress_width"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DataDir:       DefaultDataDir(),
		Backend:       BackendJSON,
		TasksFile:     DefaultTasksFile,
		SettingsFile:  DefaultSettingsFile,
		DBFile:        DefaultDBFile,
		LogLevel:      "info",
		LogFormat:     "text",
		ProgressWidth: 40,
	}
}

// DefaultDataDir uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// DefaultConfigPath uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, ConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ConfigFileName
	}
	return filepath.Join(home, ".config", AppName, ConfigFileName)
}

// Load layers the TOML file at path (if it exists) and the environment over
// the defaults. An explicitly requested path must exist.
func Load(path string, explicit bool) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if strings.TrimSpace(path) != "" {
		if err := loadConfigFile(&cfg, path); err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				return RuntimeConfigFromEnv(cfg).normalized()
			}
			return RuntimeConfig{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	return RuntimeConfigFromEnv(cfg).normalized()
}

func loadConfigFile(cfg *RuntimeConfig, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TASKER_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := getEnvString("TASKER_BACKEND"); ok {
		cfg.Backend = strings.ToLower(v)
	}
	if v, ok := getEnvString("TASKER_TASKS_FILE"); ok {
		cfg.TasksFile = v
	}
	if v, ok := getEnvString("TASKER_SETTINGS_FILE"); ok {
		cfg.SettingsFile = v
	}
	if v, ok := getEnvString("TASKER_DB_FILE"); ok {
		cfg.DBFile = v
	}
	if v, ok := getEnvString("TASKER_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvString("TASKER_LOG_FORMAT"); ok {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := getEnvString("TASKER_THEME"); ok {
		cfg.Theme = strings.ToLower(v)
	}
	if v, ok := getEnvInt("TASKER_PROGRESS_WIDTH"); ok && v > 0 {
		cfg.ProgressWidth = v
	}
	return cfg
}

func (c RuntimeConfig) normalized() (RuntimeConfig, error) {
	switch c.Backend {
	case "":
		c.Backend = BackendJSON
	case BackendJSON, BackendSQLite:
	default:
		return RuntimeConfig{}, fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	switch c.Theme {
	case "", "dark", "light":
	default:
		return RuntimeConfig{}, fmt.Errorf("config: unknown theme %q", c.Theme)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = DefaultDataDir()
	}
	if c.ProgressWidth <= 0 {
		c.ProgressWidth = 40
	}
	return c, nil
}

// Validate re-checks the config after flag overrides.
func (c RuntimeConfig) Validate() (RuntimeConfig, error) {
	return c.normalized()
}

func (c RuntimeConfig) TasksPath() string {
	return c.resolve(c.TasksFile)
}

func (c RuntimeConfig) SettingsPath() string {
	return c.resolve(c.SettingsFile)
}

func (c RuntimeConfig) DBPath() string {
	return c.resolve(c.DBFile)
}

func (c RuntimeConfig) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
