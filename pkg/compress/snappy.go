package compress

import (
	"github.com/cockroachdb/errors"
	"github.com/golang/snappy"
)

type snappyCompressor struct{}

func (snappyCompressor) Compress(src []byte) ([]byte, error) {
	return snappy.Encode(nil, src), nil
}

func (snappyCompressor) Decompress(src []byte) ([]byte, error) {
	out, err := snappy.Decode(nil, src)
	if err != nil {
		return nil, errors.Wrap(err, "snappy decode")
	}
	return out, nil
}

func (snappyCompressor) Type() Type { return TypeSnappy }
