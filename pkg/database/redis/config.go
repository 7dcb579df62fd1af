package redis

import "time"

// Config Redis 配置
// Addrs 只有一个地址时为单机模式，多个地址时为集群模式
type Config struct {
	Addrs    []string `mapstructure:"addrs" validate:"required,min=1,dive,hostname_port"`
	Password string   `mapstructure:"password"`
	DB       int      `mapstructure:"db" validate:"gte=0,lte=15"`

	// KeyPrefix 所有键的前缀，用于多个环境共用一个实例
	KeyPrefix string `mapstructure:"key_prefix"`

	PoolSize     int           `mapstructure:"pool_size" validate:"gte=0"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DefaultConfig 返回默认配置（本机单机模式）
func DefaultConfig() *Config {
	return &Config{
		Addrs:        []string{"127.0.0.1:6379"},
		KeyPrefix:    "xdooria:",
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
