// Package gameconfig 从数据目录加载 JSON 配置表，每张表一个 <table>.json 数组文件
package gameconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

var (
	// ErrInvalidTable 表文件无法解析
	ErrInvalidTable = errors.New("gameconfig: invalid table")
	// ErrNotSingleton 单例表的行数不为 1
	ErrNotSingleton = errors.New("gameconfig: singleton table must have exactly one row")
)

// Loader 按表名返回 JSON 数组原文
type Loader func(table string) ([]byte, error)

// NewFileLoader 创建本地文件加载器；表文件不存在时告警并按空表处理
func NewFileLoader(dataDir string, l logger.Logger) (Loader, error) {
	if dataDir == "" {
		return nil, errors.New("gameconfig: data dir is required")
	}
	log := logger.OrNoop(l).Named("gameconfig")

	return func(table string) ([]byte, error) {
		// 表名统一小写
		path := filepath.Join(dataDir, strings.ToLower(table)+".json")

		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Warn("optional config file not found, initializing as empty",
					"table", table,
					"path", path)
				return []byte("[]"), nil
			}
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		return data, nil
	}, nil
}

// LoadTable 加载列表表
func LoadTable[T any](load Loader, table string) ([]T, error) {
	data, err := load(table)
	if err != nil {
		return nil, err
	}

	rows := []T{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.Join(ErrInvalidTable, errors.Wrapf(err, "table %s", table))
	}
	return rows, nil
}

// LoadOne 加载单例表；空表返回零值
func LoadOne[T any](load Loader, table string) (T, error) {
	var zero T
	rows, err := LoadTable[T](load, table)
	if err != nil {
		return zero, err
	}
	switch len(rows) {
	case 0:
		return zero, nil
	case 1:
		return rows[0], nil
	default:
		return zero, errors.Wrapf(ErrNotSingleton, "table %s has %d rows", table, len(rows))
	}
}
