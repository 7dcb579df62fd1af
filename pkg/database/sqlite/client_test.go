package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	ctx := context.Background()
	c, err := New(&Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Migrate(ctx,
		`CREATE TABLE IF NOT EXISTS kv (k TEXT PRIMARY KEY, v BLOB NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS kv (k TEXT PRIMARY KEY, v BLOB NOT NULL)`,
	))

	n, err := c.Exec(ctx, `INSERT INTO kv (k, v) VALUES (?, ?)`, "a", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var v []byte
	require.NoError(t, c.QueryRow(ctx, `SELECT v FROM kv WHERE k = ?`, []any{"a"}, &v))
	assert.Equal(t, []byte{1, 2, 3}, v)

	err = c.QueryRow(ctx, `SELECT v FROM kv WHERE k = ?`, []any{"missing"}, &v)
	assert.ErrorIs(t, err, ErrNoRows)

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Ping(ctx), ErrClientClosed)
}

func TestMemoryDSN(t *testing.T) {
	cfg := &Config{Path: ":memory:", JournalMode: "WAL"}
	assert.Equal(t, "file::memory:?_pragma=busy_timeout(0)", cfg.dsn())

	cfg = &Config{Path: "/tmp/x.db", BusyTimeout: 1500 * time.Millisecond, JournalMode: "DELETE"}
	assert.Equal(t, "file:/tmp/x.db?_pragma=busy_timeout(1500)&_pragma=journal_mode(DELETE)", cfg.dsn())

	c, err := New(&Config{Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, c.Close())
}
