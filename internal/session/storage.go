package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned by Storage.Get when the key holds no value.
var ErrNotFound = errors.New("storage key not found")

// ErrInvalidKey is returned for keys that cannot be mapped to a file name.
var ErrInvalidKey = errors.New("invalid storage key")

// Storage is a synchronous key-value persistence layer scoped to this client.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// FileStorage keeps one file per key in a private directory.
type FileStorage struct {
	baseDir string
}

// NewFileStorage creates a file backed storage.
// If baseDir is empty, uses ~/.inventario/
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".inventario")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("session storage initialized")

	return &FileStorage{baseDir: baseDir}, nil
}

// Dir returns the directory holding the stored keys.
func (f *FileStorage) Dir() string {
	return f.baseDir
}

func (f *FileStorage) Get(key string) ([]byte, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return data, nil
}

// Set writes the value atomically via a temp file and rename.
func (f *FileStorage) Set(key string, value []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, value, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	return nil
}

func (f *FileStorage) Delete(key string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}

	return nil
}

func (f *FileStorage) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(f.baseDir, key+".json"), nil
}

// MemoryStorage is an in-process Storage, used for ephemeral sessions and tests.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStorage) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
