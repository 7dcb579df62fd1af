package model

import (
	"slices"

	"github.com/cockroachdb/errors"
)

var _ Container = (*ListInventory)(nil)

// ListInventory 列表式背包，按加入顺序保存，没有槽位概念
type ListInventory struct {
	observers
	items    []*Item
	capacity int
}

// NewListInventory 创建列表背包，capacity 为 0 表示不限容量
func NewListInventory(capacity int) *ListInventory {
	return &ListInventory{capacity: capacity}
}

// AddItem 已放在槽位中的物品不能同时进入列表
func (l *ListInventory) AddItem(item *Item) bool {
	if item == nil || item.slot != nil || l.Contains(item) {
		return false
	}
	if l.capacity > 0 && len(l.items) >= l.capacity {
		return false
	}
	l.items = append(l.items, item)
	l.notify()
	return true
}

func (l *ListInventory) RemoveItem(item *Item) bool {
	idx := slices.Index(l.items, item)
	if idx < 0 {
		return false
	}
	l.items = slices.Delete(l.items, idx, idx+1)
	l.notify()
	return true
}

func (l *ListInventory) Items() []*Item {
	return slices.Clone(l.items)
}

func (l *ListInventory) Len() int { return len(l.items) }

func (l *ListInventory) Capacity() int { return l.capacity }

func (l *ListInventory) Contains(item *Item) bool {
	return item != nil && slices.Contains(l.items, item)
}

func (l *ListInventory) ExportSnapshot() Snapshot {
	snap := make(Snapshot, 0, len(l.items))
	for _, it := range l.items {
		snap = append(snap, describe(it, NoSlot))
	}
	return snap
}

func (l *ListInventory) ImportSnapshot(snap Snapshot, reg *Registry) error {
	if l.capacity > 0 && len(snap) > l.capacity {
		return errors.Wrapf(ErrInvalidSnapshot, "%d entries exceed capacity %d", len(snap), l.capacity)
	}

	items := make([]*Item, 0, len(snap))
	for i, d := range snap {
		it, err := d.restore(reg)
		if err != nil {
			return errors.Wrapf(err, "entry %d", i)
		}
		items = append(items, it)
	}

	l.items = items
	l.notify()
	return nil
}
