// Package serializer 存档负载的编解码
package serializer

import (
	"github.com/cockroachdb/errors"
)

// ErrUnsupported 未知编码名
var ErrUnsupported = errors.New("serializer: unsupported codec")

// Codec 编解码器
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Name 编码名，随存档记录落库，读取时据此选择解码器
	Name() string
}

const (
	NameJSON    = "json"
	NameMsgpack = "msgpack"
)

// Lookup 按名称取编解码器，空名称返回 JSON
func Lookup(name string) (Codec, error) {
	switch name {
	case "", NameJSON:
		return JSON{}, nil
	case NameMsgpack:
		return Msgpack{}, nil
	default:
		return nil, errors.Wrapf(ErrUnsupported, "name %q", name)
	}
}
