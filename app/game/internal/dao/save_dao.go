package dao

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNotFound 存档不存在
	ErrNotFound = errors.New("dao: save record not found")
	// ErrMalformedRecord 后端中的存档元数据无法解析
	ErrMalformedRecord = errors.New("dao: malformed save record")
	// ErrInvalidSlot 存档位名不可用
	ErrInvalidSlot = errors.New("dao: invalid save slot")
)

// StoredRecord 持久化的一条存档
type StoredRecord struct {
	Slot         string
	Payload      []byte
	Checksum     uint64
	ChecksumType string // 为空表示未校验（明文文件）
	Codec        string
	Compression  string
	UpdatedAt    time.Time
}

// SaveDAO 存档存储后端
type SaveDAO interface {
	// Load 读取存档，不存在返回 ErrNotFound
	Load(ctx context.Context, slot string) (*StoredRecord, error)
	// Store 写入（覆盖）存档
	Store(ctx context.Context, rec *StoredRecord) error
	Delete(ctx context.Context, slot string) error
	// Backend 后端名，用于日志与指标
	Backend() string
	Close() error
}
