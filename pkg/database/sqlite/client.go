package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/pkg/config"
	_ "modernc.org/sqlite"
)

// Client SQLite 客户端（纯 Go 驱动，无 cgo）
type Client struct {
	db     *sql.DB
	cfg    *Config
	closed atomic.Bool
}

// New 打开数据库并检查连通性
func New(cfg *Config) (*Client, error) {
	merged, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge sqlite config")
	}
	if err := config.NewValidator().Validate(merged); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}

	db, err := sql.Open("sqlite", merged.dsn())
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}
	if merged.MaxOpenConns > 0 {
		db.SetMaxOpenConns(merged.MaxOpenConns)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite db")
	}
	return &Client{db: db, cfg: merged}, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.QueryTimeout > 0 {
		return context.WithTimeout(ctx, c.cfg.QueryTimeout)
	}
	return ctx, func() {}
}

// Exec 执行写语句
func (c *Client) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if c.closed.Load() {
		return 0, ErrClientClosed
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "sqlite exec")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// QueryRow 查询单行并扫描，无数据返回 ErrNoRows
func (c *Client) QueryRow(ctx context.Context, query string, args []any, dest ...any) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	err := c.db.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	if err != nil {
		return errors.Wrap(err, "sqlite query row")
	}
	return nil
}

// Migrate 按顺序执行建表语句，语句需自行保证幂等（IF NOT EXISTS）
func (c *Client) Migrate(ctx context.Context, stmts ...string) error {
	for i, stmt := range stmts {
		if _, err := c.Exec(ctx, stmt); err != nil {
			return errors.Wrapf(err, "migration %d", i)
		}
	}
	return nil
}

// Ping 检查连接
func (c *Client) Ping(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	return c.db.PingContext(ctx)
}

// Close 关闭数据库，重复调用安全
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.db.Close()
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
