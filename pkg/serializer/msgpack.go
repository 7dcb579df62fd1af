package serializer

import (
	"bytes"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-msgpack/v2/codec"
	"github.com/valyala/bytebufferpool"
)

var msgpackHandle = &codec.MsgpackHandle{}

func init() {
	msgpackHandle.MapType = reflect.TypeOf(map[string]any{})
	msgpackHandle.RawToString = true
}

// Msgpack 二进制编码，用于 sqlite/redis 后端
type Msgpack struct{}

func (Msgpack) Marshal(v any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := codec.NewEncoder(buf, msgpackHandle).Encode(v); err != nil {
		return nil, errors.Wrap(err, "msgpack encode")
	}
	// buf 会被回收，返回副本
	return bytes.Clone(buf.B), nil
}

func (Msgpack) Unmarshal(data []byte, v any) error {
	if err := codec.NewDecoder(bytes.NewReader(data), msgpackHandle).Decode(v); err != nil {
		return errors.Wrap(err, "msgpack decode")
	}
	return nil
}

func (Msgpack) Name() string { return NameMsgpack }
