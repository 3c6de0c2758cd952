// Package config loads the lv configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/nikbrunner/linkvault/internal/logger"
	"github.com/nikbrunner/linkvault/internal/model"
	"github.com/nikbrunner/linkvault/internal/storage"
)

// Config is the root of config.yaml.
type Config struct {
	Storage StorageConfig  `yaml:"storage"`
	IDs     model.IDScheme `yaml:"ids"`
	Log     LogConfig      `yaml:"log"`
	UI      UIConfig       `yaml:"ui"`
	HTTP    HTTPConfig     `yaml:"http"`
	Check   CheckConfig    `yaml:"check"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.IDs, validation.Required, validation.In(model.IDSchemeShort, model.IDSchemeUUID)),
	); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.UI.Validate(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if err := c.Check.Validate(); err != nil {
		return fmt.Errorf("check: %w", err)
	}
	return nil
}

// StorageConfig selects where the collection is persisted.
type StorageConfig struct {
	Backend    storage.Backend `yaml:"backend"`
	Key        string          `yaml:"key"`
	DataDir    string          `yaml:"data_dir"`
	SQLitePath string          `yaml:"sqlite_path"`
	Redis      RedisConfig     `yaml:"redis"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	backends := make([]interface{}, len(storage.Backends))
	for i, b := range storage.Backends {
		backends[i] = b
	}

	if err := validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(backends...)),
		validation.Field(&c.Key, validation.Required),
		validation.Field(&c.DataDir, validation.When(c.Backend == storage.BackendFile, validation.Required)),
		validation.Field(&c.SQLitePath, validation.When(c.Backend == storage.BackendSQLite, validation.Required)),
	); err != nil {
		return err
	}
	if c.Backend == storage.BackendRedis {
		return c.Redis.Validate()
	}
	return nil
}

// Options converts the configuration into storage.Options with ~ expanded.
func (c StorageConfig) Options() storage.Options {
	return storage.Options{
		Backend:    c.Backend,
		DataDir:    storage.ExpandHome(c.DataDir),
		SQLitePath: storage.ExpandHome(c.SQLitePath),
		Redis: storage.RedisOptions{
			Addr:           c.Redis.Addr,
			Username:       c.Redis.Username,
			Password:       c.Redis.Password,
			DB:             c.Redis.DB,
			Prefix:         c.Redis.Prefix,
			ConnectTimeout: c.Redis.ConnectTimeout,
		},
	}
}

// RedisConfig holds the Redis backend settings.
type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	Prefix         string        `yaml:"prefix"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// Validate validates the Redis configuration.
func (c *RedisConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.DB, validation.Min(0), validation.Max(15)),
	)
}

// LogConfig controls logging. File is used while the terminal UI owns stderr.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Validate validates the log configuration.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.In(logger.ValidLevels...)),
	)
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	RecentLimit   int           `yaml:"recent_limit"`
	ToastDuration time.Duration `yaml:"toast_duration"`
	Categories    []string      `yaml:"categories"`
}

// Validate validates the UI configuration.
func (c *UIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RecentLimit, validation.Min(1)),
		validation.Field(&c.ToastDuration, validation.Min(100*time.Millisecond)),
	)
}

// HTTPConfig holds the local API server settings.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
	)
}

// CheckConfig holds dead-link check settings.
type CheckConfig struct {
	Concurrency    int           `yaml:"concurrency"`
	Timeout        time.Duration `yaml:"timeout"`
	ExcludeDomains []string      `yaml:"exclude_domains"`
}

// Validate validates the check configuration.
func (c *CheckConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Concurrency, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Second)),
	)
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	dataDir, err := storage.DefaultDataDir()
	if err != nil {
		dataDir = "."
	}

	return &Config{
		Storage: StorageConfig{
			Backend:    storage.BackendFile,
			Key:        storage.DefaultKey,
			DataDir:    dataDir,
			SQLitePath: filepath.Join(dataDir, "linkvault.db"),
			Redis: RedisConfig{
				Addr:           "localhost:6379",
				Prefix:         "linkvault:",
				ConnectTimeout: 10 * time.Second,
			},
		},
		IDs: model.IDSchemeShort,
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dataDir, "lv.log"),
		},
		UI: UIConfig{
			RecentLimit:   10,
			ToastDuration: 3 * time.Second,
			Categories:    model.DefaultCategories(),
		},
		HTTP: HTTPConfig{
			Addr: "127.0.0.1:7345",
		},
		Check: CheckConfig{
			Concurrency:    10,
			Timeout:        10 * time.Second,
			ExcludeDomains: []string{"github.com", "gitlab.com"},
		},
	}
}

// DefaultPath returns the default config path: ~/.config/linkvault/config.yaml
func DefaultPath() (string, error) {
	dataDir, err := storage.DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "config.yaml"), nil
}

// LoadFile loads path over the defaults. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if err := Load(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
