package sqlite

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("sqlite: invalid config")

	// ErrClientClosed 客户端已关闭
	ErrClientClosed = errors.New("sqlite: client is closed")

	// ErrNoRows 没有查询到数据
	ErrNoRows = errors.New("sqlite: no rows in result set")
)
