package repository

import (
	"github.com/lk2023060901/xdooria/pkg/checksum"
	"github.com/lk2023060901/xdooria/pkg/compress"
	"github.com/lk2023060901/xdooria/pkg/database/redis"
	"github.com/lk2023060901/xdooria/pkg/database/sqlite"
)

// 存档后端
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config 存档仓储配置
type Config struct {
	// Backend 存档后端：file（默认，明文 saveData.json）/ sqlite / redis
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite redis"`
	// DataDir 文件后端的数据目录
	DataDir string `mapstructure:"data_dir" validate:"required"`
	// Slot 存档位
	Slot string `mapstructure:"slot" validate:"required"`

	// 以下仅作用于数据库后端，文件后端固定为不压缩、不校验的 JSON
	Codec       string        `mapstructure:"codec" validate:"omitempty,oneof=json msgpack"`
	Compression compress.Type `mapstructure:"compression" validate:"omitempty,oneof=none snappy zstd lz4"`
	Checksum    checksum.Type `mapstructure:"checksum" validate:"omitempty,oneof=xxhash crc32c"`

	SQLite *sqlite.Config `mapstructure:"sqlite"`
	Redis  *redis.Config  `mapstructure:"redis"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Backend:     BackendFile,
		DataDir:     ".",
		Slot:        "default",
		Codec:       "msgpack",
		Compression: compress.TypeSnappy,
		Checksum:    checksum.TypeXXHash,
		SQLite:      sqlite.DefaultConfig(),
		Redis:       redis.DefaultConfig(),
	}
}
