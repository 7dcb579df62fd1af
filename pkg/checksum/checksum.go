// Package checksum 存档负载的完整性校验
package checksum

import (
	"sync"

	"github.com/cockroachdb/errors"
)

var (
	// ErrUnsupported 未注册的校验算法
	ErrUnsupported = errors.New("checksum: unsupported algorithm")
	// ErrMismatch 校验和不一致，数据已损坏
	ErrMismatch = errors.New("checksum: mismatch")
)

// Type 校验算法类型，会随存档记录一起落库
type Type string

const (
	TypeXXHash Type = "xxhash"
	TypeCRC32C Type = "crc32c"
)

// Hasher 校验和计算器
type Hasher interface {
	Sum(data []byte) uint64
	Type() Type
}

var (
	mu      sync.RWMutex
	hashers = map[Type]Hasher{
		TypeXXHash: xxhashHasher{},
		TypeCRC32C: newCRC32CHasher(),
	}
)

// Register 注册自定义校验器，同名覆盖
func Register(h Hasher) {
	mu.Lock()
	defer mu.Unlock()
	hashers[h.Type()] = h
}

// New 按类型取校验器；空类型返回默认的 xxhash
func New(t Type) (Hasher, error) {
	if t == "" {
		t = TypeXXHash
	}

	mu.RLock()
	h, ok := hashers[t]
	mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnsupported, "type %q", t)
	}
	return h, nil
}

// Verify 重新计算 data 的校验和并与 expected 比较
func Verify(h Hasher, data []byte, expected uint64) error {
	if got := h.Sum(data); got != expected {
		return errors.Wrapf(ErrMismatch, "%s: want %x got %x", h.Type(), expected, got)
	}
	return nil
}
