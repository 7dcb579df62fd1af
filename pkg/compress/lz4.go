package compress

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/pierrec/lz4/v4"
	"github.com/valyala/bytebufferpool"
)

// lz4Compressor 使用 lz4 帧格式，帧头自带原始长度与校验，无需自己加前缀
type lz4Compressor struct{}

func (lz4Compressor) Compress(src []byte) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := lz4.NewWriter(buf)
	if _, err := w.Write(src); err != nil {
		return nil, errors.Wrap(err, "lz4 write")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "lz4 close")
	}
	return bytes.Clone(buf.B), nil
}

func (lz4Compressor) Decompress(src []byte) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(lz4.NewReader(bytes.NewReader(src))); err != nil {
		return nil, errors.Wrap(err, "lz4 read")
	}
	return bytes.Clone(buf.B), nil
}

func (lz4Compressor) Type() Type { return TypeLZ4 }
