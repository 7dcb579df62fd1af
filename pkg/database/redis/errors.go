package redis

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("redis: invalid config")

	// ErrNil 键不存在
	ErrNil = errors.New("redis: nil")
)
