package compress

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
)

// zstd 的 Encoder/Decoder 创建开销大且 EncodeAll/DecodeAll 并发安全，进程内共享一份
var (
	zstdOnce    sync.Once
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
	zstdErr     error
)

type zstdCompressor struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newZstdCompressor() (Compressor, error) {
	zstdOnce.Do(func() {
		zstdEncoder, zstdErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if zstdErr != nil {
			return
		}
		zstdDecoder, zstdErr = zstd.NewReader(nil)
	})
	if zstdErr != nil {
		return nil, zstdErr
	}
	return &zstdCompressor{enc: zstdEncoder, dec: zstdDecoder}, nil
}

func (c *zstdCompressor) Compress(src []byte) ([]byte, error) {
	return c.enc.EncodeAll(src, nil), nil
}

func (c *zstdCompressor) Decompress(src []byte) ([]byte, error) {
	out, err := c.dec.DecodeAll(src, nil)
	if err != nil {
		return nil, errors.Wrap(err, "zstd decode")
	}
	return out, nil
}

func (c *zstdCompressor) Type() Type { return TypeZstd }
