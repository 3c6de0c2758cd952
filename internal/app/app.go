// Package app wires configuration, logging, storage and the record store.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikbrunner/linkvault/internal/config"
	"github.com/nikbrunner/linkvault/internal/logger"
	"github.com/nikbrunner/linkvault/internal/storage"
	"github.com/nikbrunner/linkvault/internal/vault"
)

// Options holds the command-line overrides applied on top of the config file.
type Options struct {
	ConfigPath string // empty uses config.DefaultPath
	Backend    string // overrides storage.backend when set
	LogLevel   string // overrides log.level when set

	// LogToFile sends logs to log.file. Used while the terminal UI owns the
	// screen.
	LogToFile bool
}

// App holds the wired dependencies of one lv invocation.
type App struct {
	Config *config.Config
	Log    logger.Logger
	KV     storage.KV
	Vault  *vault.Vault
}

// LoadConfig reads the config file and applies overrides.
func LoadConfig(opts Options) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, fmt.Errorf("default config path: %w", err)
		}
	}

	cfg, err := config.LoadFile(storage.ExpandHome(path))
	if err != nil {
		return nil, err
	}

	if opts.Backend != "" {
		cfg.Storage.Backend = storage.Backend(strings.ToLower(opts.Backend))
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(opts.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// New loads configuration, builds the logger, opens the backend and loads
// the collection.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	var log logger.Logger
	if opts.LogToFile {
		log, err = logger.NewFile(storage.ExpandHome(cfg.Log.File), cfg.Log.Level)
	} else {
		log, err = logger.New(cfg.Log.Level, false)
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	kv, err := storage.Open(ctx, cfg.Storage.Options(), log)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}

	v := vault.New(kv,
		vault.WithLogger(log),
		vault.WithKey(cfg.Storage.Key),
		vault.WithIDGenerator(cfg.IDs.Generator()),
		vault.WithRecentLimit(cfg.UI.RecentLimit),
	)

	log.Debug("collection loaded",
		logger.String("backend", string(cfg.Storage.Backend)),
		logger.Int("records", v.Len()),
	)

	return &App{Config: cfg, Log: log, KV: kv, Vault: v}, nil
}

// DataFile returns the file the collection is stored in, or "" when the
// backend is not file based.
func (a *App) DataFile() string {
	if fkv, ok := a.KV.(*storage.FileKV); ok {
		return fkv.Path(a.Config.Storage.Key)
	}
	return ""
}

// Close closes the backend and flushes the logger. Sync errors are ignored
// since zap reports them for terminals.
func (a *App) Close() error {
	err := a.KV.Close()
	_ = a.Log.Sync()
	return err
}
