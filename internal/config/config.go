// Package config resolves where cli-todo keeps its data and which editor,
// log level and colors it uses.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the per-user config and data directories.
	AppName = "cli-todo"

	// DataFileName is the task list file inside the data directory.
	DataFileName = "data.json"

	// DefaultEditor is used when neither the config nor the environment names one.
	DefaultEditor = "vi"

	// DefaultLogLevel keeps normal runs quiet.
	DefaultLogLevel = "warn"
)

// configFileNames are tried in order inside the config directory.
var configFileNames = []string{"config.yaml", "config.yml", "config.toml"}

// Config is the resolved runtime configuration.
type Config struct {
	DataDir  string `yaml:"data_dir" toml:"data_dir"`
	Editor   string `yaml:"editor" toml:"editor"`
	LogLevel string `yaml:"log_level" toml:"log_level"`
	Color    *bool  `yaml:"color" toml:"color"`

	// Path is the config file that was read, empty when none exists.
	Path string `yaml:"-" toml:"-"`
}

// Load reads the user config file (if any), applies environment overrides
// and makes sure the data directory exists.
func Load() (*Config, error) {
	path := os.Getenv("TODO_CONFIG")
	if path == "" {
		path = findConfigFile(osUserConfigDir())
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit config file path. An empty path means
// defaults only.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		found, err := decodeFile(cfg, path)
		if err != nil {
			return nil, err
		}
		if found {
			cfg.Path = path
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()

	dir, err := ensureDataDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.DataDir = dir
	return cfg, nil
}

// DataFile returns the task list path.
func (c *Config) DataFile() string {
	return filepath.Join(c.DataDir, DataFileName)
}

// ColorEnabled reports whether list markers may be colored.
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

func findConfigFile(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range configFileNames {
		p := filepath.Join(dir, AppName, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// decodeFile reads path into cfg by extension. A missing file is not an error.
func decodeFile(cfg *Config, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return false, fmt.Errorf("parse config TOML %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return false, fmt.Errorf("parse config YAML %s: %w", path, err)
		}
	}
	return true, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("TODO_DATA_DIR")); v != "" {
		c.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if c.Editor == "" {
		if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
			c.Editor = v
		} else if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
			c.Editor = v
		}
	}
	if os.Getenv("NO_COLOR") != "" {
		off := false
		c.Color = &off
	}
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Editor) == "" {
		c.Editor = DefaultEditor
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
}
