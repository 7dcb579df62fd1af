package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lk2023060901/xdooria/app/game/internal/repository"
	"github.com/lk2023060901/xdooria/pkg/compress"
	"github.com/lk2023060901/xdooria/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
inventory:
  slots: 8
crafting:
  consume_input: true
notify:
  popup_duration: 500ms
save:
  backend: sqlite
  compression: zstd
  sqlite:
    path: /tmp/inventory.db
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Inventory.Slots)
	assert.True(t, cfg.Crafting.ConsumeInput)
	assert.Equal(t, 500*time.Millisecond, cfg.Notify.PopupDuration)
	assert.Equal(t, repository.BackendSQLite, cfg.Save.Backend)
	assert.Equal(t, compress.TypeZstd, cfg.Save.Compression)
	assert.Equal(t, "/tmp/inventory.db", cfg.Save.SQLite.Path)

	// 未出现在文件中的字段保留默认值
	assert.True(t, cfg.Crafting.UseSourceIcon)
	assert.Equal(t, float32(0.6), cfg.Drag.DragAlpha)
	assert.Equal(t, 5, cfg.Notify.MaxPopups)
	assert.Equal(t, "WAL", cfg.Save.SQLite.JournalMode)
	assert.Equal(t, "inventory", cfg.Metrics.Namespace)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("save:\n  backend: file\n"), 0o644))
	t.Setenv("XDOORIA_SAVE_BACKEND", "redis")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, repository.BackendRedis, cfg.Save.Backend)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("drag:\n  drag_alpha: 2\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, config.ErrValidationFailed)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, config.ErrConfigFileNotFound)
}
