package redis

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/pkg/config"
	"github.com/redis/go-redis/v9"
)

// Client Redis 客户端（隐藏 go-redis 类型）
type Client struct {
	rdb redis.UniversalClient
	cfg *Config
}

// NewClient 创建 Redis 客户端，不主动建立连接
func NewClient(cfg *Config) (*Client, error) {
	merged, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge redis config")
	}
	if err := config.NewValidator().Validate(merged); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}

	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        merged.Addrs,
		Password:     merged.Password,
		DB:           merged.DB,
		PoolSize:     merged.PoolSize,
		DialTimeout:  merged.DialTimeout,
		ReadTimeout:  merged.ReadTimeout,
		WriteTimeout: merged.WriteTimeout,
	})
	return &Client{rdb: rdb, cfg: merged}, nil
}

// Key 加上配置的前缀
func (c *Client) Key(parts ...string) string {
	key := c.cfg.KeyPrefix
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += p
	}
	return key
}

// HSet 写入哈希字段
func (c *Client) HSet(ctx context.Context, key string, fields map[string]any) error {
	if err := c.rdb.HSet(ctx, key, fields).Err(); err != nil {
		return errors.Wrapf(err, "hset %s", key)
	}
	return nil
}

// HGetAll 读取整个哈希，键不存在返回 ErrNil
func (c *Client) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	m, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "hgetall %s", key)
	}
	if len(m) == 0 {
		return nil, ErrNil
	}
	return m, nil
}

// Del 删除键，返回删除数量
func (c *Client) Del(ctx context.Context, keys ...string) (int64, error) {
	n, err := c.rdb.Del(ctx, keys...).Result()
	if err != nil {
		return 0, errors.Wrap(err, "del")
	}
	return n, nil
}

// Ping 检查连接
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "ping")
	}
	return nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
