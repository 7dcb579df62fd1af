package model

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// NoSlot 列表式背包的描述没有槽位
const NoSlot = -1

// ItemDescriptor 物品的可序列化描述
type ItemDescriptor struct {
	SlotIndex int    `json:"slotIndex" codec:"slotIndex"`
	ID        ItemID `json:"id" codec:"id"`
	Name      string `json:"name" codec:"name"`
	Value     int32  `json:"value" codec:"value"`
	// 合成产物的图标/预制体可能不同于配置表，随存档保存
	Icon        AssetRef `json:"icon,omitempty" codec:"icon,omitempty"`
	WorldPrefab AssetRef `json:"worldPrefab,omitempty" codec:"worldPrefab,omitempty"`
}

// Snapshot 背包快照，列表顺序即导出顺序
type Snapshot []ItemDescriptor

func describe(it *Item, slot int) ItemDescriptor {
	return ItemDescriptor{
		SlotIndex:   slot,
		ID:          it.ID,
		Name:        it.Name,
		Value:       it.Value,
		Icon:        it.Icon,
		WorldPrefab: it.WorldPrefab,
	}
}

// restore 按描述重建实例；存档中的图标与预制体优先，缺省时取配置表
// reg 为 nil 或 ID 为 NoID（合成出的未登记物品）时不查表
func (d ItemDescriptor) restore(reg *Registry) (*Item, error) {
	it := &Item{
		InstanceID:  uuid.New(),
		ID:          d.ID,
		Name:        d.Name,
		Value:       d.Value,
		Icon:        d.Icon,
		WorldPrefab: d.WorldPrefab,
		View:        DefaultView(),
	}
	if reg != nil && d.ID != ItemID(NoID) {
		rec, ok := reg.Lookup(d.ID)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidSnapshot, "unknown item id %d", d.ID)
		}
		if it.Icon == "" {
			it.Icon = rec.Icon
		}
		if it.WorldPrefab == "" {
			it.WorldPrefab = rec.WorldPrefab
		}
	}
	return it, nil
}
