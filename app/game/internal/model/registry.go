package model

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/text/cases"
)

// FoldName 名称归一化，用于大小写无关的精确比较
// cases.Caser 有内部状态，不能跨调用共享
func FoldName(name string) string {
	return cases.Fold().String(name)
}

// Registry 物品配置表
type Registry struct {
	records []ItemRecord
	byID    map[ItemID]int
	byName  map[string]int
}

// NewRegistry 由配置记录构建注册表，ID 重复返回 ErrDuplicateItem
// 名称重复时先出现的记录优先
func NewRegistry(records ...ItemRecord) (*Registry, error) {
	r := &Registry{
		records: make([]ItemRecord, 0, len(records)),
		byID:    make(map[ItemID]int, len(records)),
		byName:  make(map[string]int, len(records)),
	}
	for _, rec := range records {
		if _, ok := r.byID[rec.ID]; ok {
			return nil, errors.Wrapf(ErrDuplicateItem, "id %d", rec.ID)
		}
		idx := len(r.records)
		r.records = append(r.records, rec)
		r.byID[rec.ID] = idx

		key := FoldName(rec.Name)
		if _, ok := r.byName[key]; !ok {
			r.byName[key] = idx
		}
	}
	return r, nil
}

// Lookup 按ID查找
func (r *Registry) Lookup(id ItemID) (*ItemRecord, bool) {
	if r == nil {
		return nil, false
	}
	idx, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return &r.records[idx], true
}

// LookupName 按名称查找（大小写无关）
func (r *Registry) LookupName(name string) (*ItemRecord, bool) {
	if r == nil {
		return nil, false
	}
	idx, ok := r.byName[FoldName(name)]
	if !ok {
		return nil, false
	}
	return &r.records[idx], true
}

// NewItem 按ID创建物品实例
func (r *Registry) NewItem(id ItemID) (*Item, error) {
	rec, ok := r.Lookup(id)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownItem, "id %d", id)
	}
	return rec.NewItem(), nil
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.records)
}
