package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/linkvault/internal/model"
	"github.com/nikbrunner/linkvault/internal/storage"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: file\nlog:\n  level: info\n")

	cfg, err := LoadConfig(Options{ConfigPath: path, Backend: "MEMORY", LogLevel: "debug"})
	assert.NilError(t, err)
	assert.Equal(t, cfg.Storage.Backend, storage.BackendMemory)
	assert.Equal(t, cfg.Log.Level, "debug")
}

func TestLoadConfig_InvalidOverride(t *testing.T) {
	path := writeConfig(t, "")

	_, err := LoadConfig(Options{ConfigPath: path, Backend: "floppy"})
	assert.ErrorContains(t, err, "config validation failed")
}

func TestNew_FileBackend(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, "storage:\n  backend: file\n  data_dir: "+dir+"\n  key: testKey\nids: uuid\nlog:\n  level: error\n")

	a, err := New(context.Background(), Options{ConfigPath: path})
	assert.NilError(t, err)
	defer a.Close()

	assert.Equal(t, a.DataFile(), filepath.Join(dir, "testKey.json"))

	b := a.Vault.Add(context.Background(), model.BookmarkInput{Name: "Example", URL: "example.com"})
	assert.Equal(t, len(b.ID), 36, "uuid ids expected")

	_, err = os.Stat(a.DataFile())
	assert.NilError(t, err)

	// a second instance sees the persisted record
	b2, err := New(context.Background(), Options{ConfigPath: path})
	assert.NilError(t, err)
	defer b2.Close()
	got, ok := b2.Vault.GetByID(b.ID)
	assert.Assert(t, ok)
	assert.Equal(t, got.URL, "https://example.com")
}

func TestNew_MemoryBackendHasNoDataFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: error\n")

	a, err := New(context.Background(), Options{ConfigPath: path, Backend: "memory"})
	assert.NilError(t, err)
	defer a.Close()

	assert.Equal(t, a.DataFile(), "")
	assert.Equal(t, a.Vault.Len(), 0)
}

func TestNew_LogToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "lv.log")
	path := writeConfig(t, "log:\n  level: debug\n  file: "+logPath+"\n")

	a, err := New(context.Background(), Options{ConfigPath: path, Backend: "memory", LogToFile: true})
	assert.NilError(t, err)
	a.Log.Info("hello")
	assert.NilError(t, a.Close())

	data, err := os.ReadFile(logPath)
	assert.NilError(t, err)
	assert.Assert(t, len(data) > 0)
}
