package model

import (
	"github.com/cockroachdb/errors"
)

var _ Container = (*GridInventory)(nil)

// GridInventory 格子背包，固定数量槽位，可扩容
type GridInventory struct {
	observers
	slots []*Slot
}

// NewGridInventory 创建 capacity 个空槽位的格子背包
func NewGridInventory(capacity int) *GridInventory {
	g := &GridInventory{}
	g.grow(capacity)
	return g
}

func (g *GridInventory) grow(n int) {
	for i := 0; i < n; i++ {
		g.slots = append(g.slots, &Slot{index: len(g.slots), grid: g})
	}
}

// ===== 槽位查询 =====

// Slot 返回指定槽位，越界返回 nil
func (g *GridInventory) Slot(index int) *Slot {
	if index < 0 || index >= len(g.slots) {
		return nil
	}
	return g.slots[index]
}

func (g *GridInventory) Slots() []*Slot {
	out := make([]*Slot, len(g.slots))
	copy(out, g.slots)
	return out
}

// FindEmptySlot 返回第一个空槽位索引，无空位返回 -1
func (g *GridInventory) FindEmptySlot() int {
	for i, s := range g.slots {
		if s.IsEmpty() {
			return i
		}
	}
	return -1
}

func (g *GridInventory) IsFull() bool {
	return g.FindEmptySlot() < 0
}

func (g *GridInventory) Capacity() int { return len(g.slots) }

func (g *GridInventory) Len() int {
	n := 0
	for _, s := range g.slots {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}

func (g *GridInventory) Items() []*Item {
	out := make([]*Item, 0, len(g.slots))
	for _, s := range g.slots {
		if it := s.Item(); it != nil {
			out = append(out, it)
		}
	}
	return out
}

func (g *GridInventory) Contains(item *Item) bool {
	return item != nil && item.slot != nil && item.slot.grid == g
}

// ===== 添加/移除 =====

func (g *GridInventory) AddItem(item *Item) bool {
	if item == nil || g.Contains(item) {
		return false
	}
	idx := g.FindEmptySlot()
	if idx < 0 {
		return false
	}
	g.slots[idx].SetItem(item)
	return true
}

func (g *GridInventory) RemoveItem(item *Item) bool {
	if !g.Contains(item) {
		return false
	}
	item.slot.Clear()
	return true
}

// ===== 整理 =====

func (g *GridInventory) checkIndex(i int) error {
	if i < 0 || i >= len(g.slots) {
		return errors.Wrapf(ErrSlotOutOfRange, "index %d, capacity %d", i, len(g.slots))
	}
	return nil
}

// Move 把 from 的物品移到空槽位 to
func (g *GridInventory) Move(from, to int) error {
	if err := g.checkIndex(from); err != nil {
		return err
	}
	if err := g.checkIndex(to); err != nil {
		return err
	}
	if g.slots[from].IsEmpty() {
		return errors.Wrapf(ErrSlotEmpty, "from %d", from)
	}
	if from == to {
		return nil
	}
	if !g.slots[to].IsEmpty() {
		return errors.Wrapf(ErrSlotOccupied, "to %d", to)
	}

	g.batch(func() { g.slots[to].SetItem(g.slots[from].Item()) })
	return nil
}

// Swap 交换两个槽位，任一方可为空
func (g *GridInventory) Swap(a, b int) error {
	if err := g.checkIndex(a); err != nil {
		return err
	}
	if err := g.checkIndex(b); err != nil {
		return err
	}
	g.batch(func() { SwapSlots(g.slots[a], g.slots[b]) })
	return nil
}

// Expand 增加 n 个空槽位
func (g *GridInventory) Expand(n int) {
	if n <= 0 {
		return
	}
	g.grow(n)
	g.notify()
}

// ===== 快照 =====

func (g *GridInventory) ExportSnapshot() Snapshot {
	snap := make(Snapshot, 0, len(g.slots))
	for _, s := range g.slots {
		if it := s.Item(); it != nil {
			snap = append(snap, describe(it, s.index))
		}
	}
	return snap
}

func (g *GridInventory) ImportSnapshot(snap Snapshot, reg *Registry) error {
	placed := make(map[int]*Item, len(snap))
	for i, d := range snap {
		if err := g.checkIndex(d.SlotIndex); err != nil {
			return errors.Wrapf(ErrInvalidSnapshot, "entry %d: slot %d out of range", i, d.SlotIndex)
		}
		if _, dup := placed[d.SlotIndex]; dup {
			return errors.Wrapf(ErrInvalidSnapshot, "entry %d: duplicate slot %d", i, d.SlotIndex)
		}
		it, err := d.restore(reg)
		if err != nil {
			return errors.Wrapf(err, "entry %d", i)
		}
		placed[d.SlotIndex] = it
	}

	g.batch(func() {
		for _, s := range g.slots {
			s.Clear()
		}
		for idx, it := range placed {
			g.slots[idx].SetItem(it)
		}
	})
	return nil
}
