package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikbrunner/linkvault/internal/logger"
)

// DefaultKey is the entry that holds the serialized bookmark collection.
const DefaultKey = "linkVaultWebsites"

// FirstRunKey marks that the store has been opened before.
const FirstRunKey = "linkVaultFirstRun"

// ErrKeyNotFound is returned by Get when no value is stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// KV defines a key-value backend for persisting the collection.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names a KV implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// Backends lists every supported backend name.
var Backends = []Backend{BackendFile, BackendSQLite, BackendRedis, BackendMemory}

// Options selects and configures a backend.
type Options struct {
	Backend    Backend
	DataDir    string
	SQLitePath string
	Redis      RedisOptions
}

// Open opens the backend named by opts.Backend.
func Open(ctx context.Context, opts Options, log logger.Logger) (KV, error) {
	switch opts.Backend {
	case BackendFile, "":
		return NewFileKV(opts.DataDir), nil
	case BackendSQLite:
		return NewSQLiteKV(ctx, opts.SQLitePath)
	case BackendRedis:
		return NewRedisKV(ctx, opts.Redis, log)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

// DefaultDataDir returns the default data directory: ~/.config/linkvault
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "linkvault"), nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
