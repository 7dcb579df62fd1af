// Package compress 存档负载压缩
package compress

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrUnsupported 未注册的压缩算法
var ErrUnsupported = errors.New("compress: unsupported algorithm")

// Type 压缩算法类型，会随存档记录一起落库
type Type string

const (
	TypeNone   Type = "none"
	TypeSnappy Type = "snappy"
	TypeZstd   Type = "zstd"
	TypeLZ4    Type = "lz4"
)

// Compressor 压缩器
type Compressor interface {
	Compress(src []byte) ([]byte, error)
	Decompress(src []byte) ([]byte, error)
	Type() Type
}

// Factory 压缩器工厂
type Factory func() (Compressor, error)

var (
	mu        sync.RWMutex
	factories = map[Type]Factory{
		TypeNone:   func() (Compressor, error) { return noneCompressor{}, nil },
		TypeSnappy: func() (Compressor, error) { return snappyCompressor{}, nil },
		TypeZstd:   newZstdCompressor,
		TypeLZ4:    func() (Compressor, error) { return lz4Compressor{}, nil },
	}
)

// Register 注册压缩器工厂，同名覆盖
func Register(t Type, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[t] = f
}

// New 按类型创建压缩器；空类型等同 TypeNone
func New(t Type) (Compressor, error) {
	if t == "" {
		t = TypeNone
	}

	mu.RLock()
	f, ok := factories[t]
	mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnsupported, "type %q", t)
	}

	c, err := f()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s compressor", t)
	}
	return c, nil
}

type noneCompressor struct{}

func (noneCompressor) Compress(src []byte) ([]byte, error)   { return src, nil }
func (noneCompressor) Decompress(src []byte) ([]byte, error) { return src, nil }
func (noneCompressor) Type() Type                            { return TypeNone }
