package serializer

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// JSON 紧凑 JSON，字段名由结构体 json tag 决定
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "json marshal")
	}
	return data, nil
}

func (JSON) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "json unmarshal")
	}
	return nil
}

func (JSON) Name() string { return NameJSON }
