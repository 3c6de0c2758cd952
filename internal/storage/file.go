package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileKV implements KV with one JSON file per key inside a directory.
type FileKV struct {
	dir string
}

// NewFileKV creates a new FileKV rooted at dir.
func NewFileKV(dir string) *FileKV {
	return &FileKV{dir: dir}
}

// Path returns the file that stores key.
func (s *FileKV) Path(key string) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(key)
	return filepath.Join(s.dir, name+".json")
}

// Get reads the value for key.
// Returns ErrKeyNotFound if the file doesn't exist.
func (s *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set writes the value for key.
// The value goes to a temp file in the same directory which is then renamed
// over the target, so readers never see a half-written file.
func (s *FileKV) Set(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	path := s.Path(key)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Close is a no-op for FileKV.
func (s *FileKV) Close() error {
	return nil
}
