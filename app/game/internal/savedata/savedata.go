// Package savedata 存档记录的结构与编解码
package savedata

import (
	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/app/game/internal/model"
	"github.com/lk2023060901/xdooria/pkg/serializer"
)

// FileName 存档文件名
const FileName = "saveData.json"

// Format 存档编码格式
type Format string

const (
	FormatJSON    Format = serializer.NameJSON
	FormatMsgpack Format = serializer.NameMsgpack
)

// ErrMalformed 存档内容无法解码
var ErrMalformed = errors.New("savedata: malformed record")

// Record 存档记录
// 字段名与落盘格式一致：{"playerPosition":{...},"inventorySaveData":[...]}
type Record struct {
	PlayerPosition    model.Vector3         `json:"playerPosition" codec:"playerPosition"`
	InventorySaveData []model.ItemDescriptor `json:"inventorySaveData" codec:"inventorySaveData"`
}

// Capture 从容器和玩家位置构建存档记录
func Capture(c model.Container, pos model.Vector3) *Record {
	snap := c.ExportSnapshot()
	if snap == nil {
		snap = model.Snapshot{}
	}
	return &Record{PlayerPosition: pos, InventorySaveData: snap}
}

// Snapshot 记录中的背包快照
func (r *Record) Snapshot() model.Snapshot {
	return model.Snapshot(r.InventorySaveData)
}

// Encode 按格式编码
func Encode(r *Record, f Format) ([]byte, error) {
	codec, err := serializer.Lookup(string(f))
	if err != nil {
		return nil, err
	}
	return codec.Marshal(r)
}

// Decode 按格式解码；内容损坏返回 ErrMalformed
func Decode(data []byte, f Format) (*Record, error) {
	codec, err := serializer.Lookup(string(f))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.Wrap(ErrMalformed, "empty record")
	}

	var r Record
	if err := codec.Unmarshal(data, &r); err != nil {
		return nil, errors.Join(ErrMalformed, errors.Wrap(err, "decode save record"))
	}
	if r.InventorySaveData == nil {
		r.InventorySaveData = []model.ItemDescriptor{}
	}
	return &r, nil
}
