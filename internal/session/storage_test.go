package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileStorage(t *testing.T) {
	t.Run("creates directory with correct permissions", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "inventario")

		storage, err := NewFileStorage(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, storage.Dir())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})

	t.Run("uses default directory when baseDir is empty", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		storage, err := NewFileStorage("")
		require.NoError(t, err)
		assert.Equal(t, ".inventario", filepath.Base(storage.Dir()))
	})
}

func TestFileStorage(t *testing.T) {
	t.Run("get on absent key", func(t *testing.T) {
		storage, err := NewFileStorage(t.TempDir())
		require.NoError(t, err)

		_, err = storage.Get("user")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set writes private file without leftovers", func(t *testing.T) {
		dir := t.TempDir()
		storage, err := NewFileStorage(dir)
		require.NoError(t, err)

		require.NoError(t, storage.Set("user", []byte(`{"token":"x"}`)))

		info, err := os.Stat(filepath.Join(dir, "user.json"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		_, err = os.Stat(filepath.Join(dir, "user.json.tmp"))
		assert.True(t, os.IsNotExist(err))

		data, err := storage.Get("user")
		require.NoError(t, err)
		assert.Equal(t, `{"token":"x"}`, string(data))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		storage, err := NewFileStorage(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, storage.Set("user", []byte("{}")))
		require.NoError(t, storage.Delete("user"))
		require.NoError(t, storage.Delete("user"))

		_, err = storage.Get("user")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects keys escaping the directory", func(t *testing.T) {
		storage, err := NewFileStorage(t.TempDir())
		require.NoError(t, err)

		for _, key := range []string{"", "../user", "a/b", "user.json"} {
			assert.ErrorIs(t, storage.Set(key, nil), ErrInvalidKey, key)
		}
	})
}

func TestMemoryStorage(t *testing.T) {
	storage := NewMemoryStorage()

	value := []byte("abc")
	require.NoError(t, storage.Set("user", value))
	value[0] = 'x'

	got, err := storage.Get("user")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	require.NoError(t, storage.Delete("user"))
	_, err = storage.Get("user")
	assert.ErrorIs(t, err, ErrNotFound)
}
