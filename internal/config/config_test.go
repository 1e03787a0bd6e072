package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreate(t *testing.T) {
	t.Run("creates default file when missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", DefaultConfigFileName)

		cfg, err := LoadOrCreate(path)
		require.NoError(t, err)
		assert.Equal(t, "all", cfg.DefaultFilter)
		assert.Equal(t, "newest", cfg.DefaultSort)
		assert.Equal(t, 30, cfg.AutoSaveInterval)
		assert.Equal(t, "q", cfg.Keys.Quit)

		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("reads existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFileName)
		content := `
db_path = "custom.db"
default_filter = "pending"
auto_save_interval_seconds = 5

[keys]
quit = "Q"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadOrCreate(path)
		require.NoError(t, err)
		assert.Equal(t, "custom.db", cfg.DBPath)
		assert.Equal(t, "pending", cfg.DefaultFilter)
		assert.Equal(t, 5, cfg.AutoSaveInterval)
		assert.Equal(t, "Q", cfg.Keys.Quit)
	})

	t.Run("fills defaults for missing fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte(`default_filter = "completed"`), 0o644))

		cfg, err := LoadOrCreate(path)
		require.NoError(t, err)
		assert.Equal(t, "completed", cfg.DefaultFilter)
		assert.NotEmpty(t, cfg.DBPath)
		assert.Equal(t, "newest", cfg.DefaultSort)
		assert.Equal(t, 30, cfg.AutoSaveInterval)
		assert.Equal(t, 300, cfg.SearchDebounceMS)
	})

	t.Run("rejects malformed toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte(`db_path = [`), 0o644))

		_, err := LoadOrCreate(path)
		assert.Error(t, err)
	})
}
