package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultPageSize    = 10
	defaultShuffleSeed = 1337
	defaultLogLevel    = "warn"
)

type Config struct {
	DataDir  string `koanf:"data_dir"`  // empty means $XDG_DATA_HOME/trackshelf
	Icons    string `koanf:"icons"`     // "nerd", "unicode", or "none"
	PageSize int    `koanf:"page_size"` // upcoming tracks per page
	Debug    bool   `koanf:"debug"`     // audit index and queue after every mutation

	Queue QueueConfig `koanf:"queue"`
	Log   LogConfig   `koanf:"log"`
}

// QueueConfig holds playback queue settings.
type QueueConfig struct {
	ShuffleSeed  uint32 `koanf:"shuffle_seed"`  // default: 1337
	HistoryLimit int    `koanf:"history_limit"` // 0 = unbounded
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error (default: warn)
	File  string `koanf:"file"`  // empty means stderr
}

// Default returns the configuration used when no file sets a key.
func Default() *Config {
	return &Config{
		Icons:    "unicode",
		PageSize: defaultPageSize,
		Queue:    QueueConfig{ShuffleSeed: defaultShuffleSeed},
		Log:      LogConfig{Level: defaultLogLevel},
	}
}

// Load reads ~/.config/trackshelf/config.toml then ./config.toml.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files in order (last wins). Missing files are
// skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.DataDir != "" {
		c.DataDir = expandPath(c.DataDir)
	}
	if c.Log.File != "" {
		c.Log.File = expandPath(c.Log.File)
	}
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
	if c.Queue.HistoryLimit < 0 {
		c.Queue.HistoryLimit = 0
	}
	c.Icons = strings.ToLower(strings.TrimSpace(c.Icons))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/trackshelf/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "trackshelf", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
