package sqlite

import (
	"time"
)

// Config SQLite 配置
type Config struct {
	// Path 数据库文件路径，":memory:" 为内存库
	Path string `mapstructure:"path" validate:"required"`
	// BusyTimeout 写锁等待时间
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
	// JournalMode 日志模式，如 WAL、DELETE（内存库忽略）
	JournalMode string `mapstructure:"journal_mode" validate:"omitempty,oneof=WAL DELETE TRUNCATE MEMORY"`
	// MaxOpenConns 最大连接数，SQLite 单写者，默认 1
	MaxOpenConns int `mapstructure:"max_open_conns" validate:"gte=0"`
	// QueryTimeout 单条语句超时，0 表示不限
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Path:         "saveData.db",
		BusyTimeout:  5 * time.Second,
		JournalMode:  "WAL",
		MaxOpenConns: 1,
		QueryTimeout: 3 * time.Second,
	}
}

func (c *Config) dsn() string {
	dsn := "file:" + c.Path + "?_pragma=busy_timeout(" + itoa(c.BusyTimeout.Milliseconds()) + ")"
	if c.JournalMode != "" && c.Path != ":memory:" {
		dsn += "&_pragma=journal_mode(" + c.JournalMode + ")"
	}
	return dsn
}
